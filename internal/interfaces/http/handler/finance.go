package handler

import (
	appfinance "github.com/carpentry/backend/internal/application/finance"
	"github.com/carpentry/backend/internal/interfaces/http/dto"
	"github.com/carpentry/backend/internal/interfaces/http/middleware"
	"github.com/carpentry/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// FinanceHandler handles supplier obligations, the manual ledger and the
// reconciliation views
type FinanceHandler struct {
	BaseHandler
	suppliers      *appfinance.SupplierService
	ledger         *appfinance.LedgerService
	reconciliation *appfinance.ReconciliationService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	suppliers *appfinance.SupplierService,
	ledger *appfinance.LedgerService,
	reconciliation *appfinance.ReconciliationService,
) *FinanceHandler {
	return &FinanceHandler{suppliers: suppliers, ledger: ledger, reconciliation: reconciliation}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	fin := router.NewDomainGroup("finance", "/finance").
		GET("/summary", h.Summary).
		GET("/feed", h.Feed)

	fin.Group("suppliers", "/suppliers").
		POST("", h.CreateObligation).
		GET("", h.ListObligations).
		GET("/:id", h.GetObligation).
		POST("/:id/payments", h.RecordSupplierPayment).
		POST("/:id/settle", h.SettleObligation).
		DELETE("/:id", h.DeleteObligation)

	fin.Group("ledger", "/ledger").
		POST("", h.CreateEntry).
		GET("", h.ListEntries).
		DELETE("/:id", h.DeleteEntry)

	fin.RegisterRoutes(rg)
}

// CreateObligation records a new supplier debt
func (h *FinanceHandler) CreateObligation(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appfinance.CreateSupplierObligationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.CreatedBy = middleware.GetUserID(c)

	resp, err := h.suppliers.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListObligations lists supplier debts
func (h *FinanceHandler) ListObligations(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	resp, err := h.suppliers.List(c.Request.Context(), tenantID, q.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resp, len(resp), q)
}

// GetObligation returns one supplier debt
func (h *FinanceHandler) GetObligation(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	resp, err := h.suppliers.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordSupplierPayment sets the amount paid so far
func (h *FinanceHandler) RecordSupplierPayment(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appfinance.RecordSupplierPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.suppliers.RecordPayment(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SettleObligation marks a supplier debt as fully paid
func (h *FinanceHandler) SettleObligation(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	resp, err := h.suppliers.SettleInFull(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteObligation removes a supplier debt
func (h *FinanceHandler) DeleteObligation(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	if err := h.suppliers.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateEntry books a manual income or expense
func (h *FinanceHandler) CreateEntry(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appfinance.CreateLedgerEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.ledger.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListEntries lists manual ledger entries
func (h *FinanceHandler) ListEntries(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	resp, err := h.ledger.List(c.Request.Context(), tenantID, q.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resp, len(resp), q)
}

// DeleteEntry removes a ledger entry
func (h *FinanceHandler) DeleteEntry(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	if err := h.ledger.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Summary returns income, expenses, receivables and payables
func (h *FinanceHandler) Summary(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	resp, err := h.reconciliation.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Feed returns the movement feed
func (h *FinanceHandler) Feed(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	resp, err := h.reconciliation.Feed(c.Request.Context(), tenantID, c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
