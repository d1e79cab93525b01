package handler

import (
	appworkorder "github.com/carpentry/backend/internal/application/workorder"
	"github.com/carpentry/backend/internal/interfaces/http/dto"
	"github.com/carpentry/backend/internal/interfaces/http/middleware"
	"github.com/carpentry/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// RequestHandler serves client intake requests
type RequestHandler struct {
	BaseHandler
	requests *appworkorder.RequestService
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(requests *appworkorder.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	router.NewDomainGroup("requests", "/requests").
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.Get).
		POST("/:id/review", h.Review).
		POST("/:id/quote", h.Quote).
		POST("/:id/cancel", h.Cancel).
		RegisterRoutes(rg)
}

// Create registers a new request in PENDING
func (h *RequestHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appworkorder.CreateRequestRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.CreatedBy = middleware.GetUserID(c)

	resp, err := h.requests.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns requests, newest first
func (h *RequestHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	resp, err := h.requests.List(c.Request.Context(), tenantID, q.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resp, len(resp), q)
}

// Get returns one request
func (h *RequestHandler) Get(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	resp, err := h.requests.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Review moves a pending request to IN_REVIEW
func (h *RequestHandler) Review(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	resp, err := h.requests.Review(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel closes an open request
func (h *RequestHandler) Cancel(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	resp, err := h.requests.Cancel(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Quote prices a request and creates its work order
func (h *RequestHandler) Quote(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appworkorder.QuoteRequestRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.requests.Quote(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
