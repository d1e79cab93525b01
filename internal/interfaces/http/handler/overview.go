package handler

import (
	appreport "github.com/carpentry/backend/internal/application/report"
	"github.com/carpentry/backend/internal/interfaces/http/dto"
	"github.com/carpentry/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// OverviewHandler serves the landing dashboard
type OverviewHandler struct {
	BaseHandler
	overview *appreport.OverviewService
}

// NewOverviewHandler creates a new OverviewHandler
func NewOverviewHandler(overview *appreport.OverviewService) *OverviewHandler {
	return &OverviewHandler{overview: overview}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *OverviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	router.NewDomainGroup("dashboard", "/dashboard").
		GET("", h.Dashboard).
		GET("/quoted", h.SearchQuoted).
		GET("/archived", h.SearchArchived).
		RegisterRoutes(rg)
}

// Dashboard returns per-stage counts and the billed total
func (h *OverviewHandler) Dashboard(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	resp, err := h.overview.Dashboard(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SearchQuoted searches quoted orders
func (h *OverviewHandler) SearchQuoted(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	resp, err := h.overview.SearchQuoted(c.Request.Context(), tenantID, c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resp, len(resp), dto.ListQuery{})
}

// SearchArchived searches the archive
func (h *OverviewHandler) SearchArchived(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	resp, err := h.overview.SearchArchived(c.Request.Context(), tenantID, c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resp, len(resp), dto.ListQuery{})
}
