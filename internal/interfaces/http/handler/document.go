package handler

import (
	"net/http"
	"strings"

	appworkorder "github.com/carpentry/backend/internal/application/workorder"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/carpentry/backend/internal/interfaces/http/dto"
	"github.com/carpentry/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// DocumentHandler handles presigned uploads and downloads of order documents
type DocumentHandler struct {
	BaseHandler
	documents *appworkorder.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documents *appworkorder.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	router.NewDomainGroup("documents", "/work-orders/:id/documents").
		POST("/upload", h.RequestUpload).
		POST("", h.Attach).
		GET("/:kind", h.Download).
		RegisterRoutes(rg)
}

// RequestUpload issues a presigned upload URL
func (h *DocumentHandler) RequestUpload(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appworkorder.UploadDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.documents.RequestUpload(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Attach links an uploaded file to the order
func (h *DocumentHandler) Attach(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appworkorder.AttachDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.documents.AttachDocument(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Download returns a presigned download link
func (h *DocumentHandler) Download(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	kind := workorder.DocumentKind(strings.ToUpper(c.Param("kind")))
	if !kind.IsValid() {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Unknown document kind")
		return
	}
	resp, err := h.documents.DownloadURL(c.Request.Context(), tenantID, id, kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
