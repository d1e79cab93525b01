package handler

import (
	"context"
	"net/http"

	appworkorder "github.com/carpentry/backend/internal/application/workorder"
	"github.com/carpentry/backend/internal/infrastructure/archive"
	"github.com/carpentry/backend/internal/interfaces/http/dto"
	"github.com/carpentry/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ArchiveReader looks up the archived copy of a finished order
type ArchiveReader interface {
	Get(ctx context.Context, tenantID, orderID uuid.UUID) (*archive.Record, error)
}

// WorkOrderHandler serves the work order lifecycle and its payment terms
type WorkOrderHandler struct {
	BaseHandler
	lifecycle *appworkorder.LifecycleService
	payments  *appworkorder.PaymentService
	archive   ArchiveReader
}

// NewWorkOrderHandler creates a new WorkOrderHandler. archive may be nil
// when the archive projection is disabled.
func NewWorkOrderHandler(lifecycle *appworkorder.LifecycleService, payments *appworkorder.PaymentService, archive ArchiveReader) *WorkOrderHandler {
	return &WorkOrderHandler{lifecycle: lifecycle, payments: payments, archive: archive}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *WorkOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := router.NewDomainGroup("work-orders", "/work-orders").
		GET("", h.List).
		GET("/archived", h.ListArchived).
		GET("/:id", h.Get).
		POST("/:id/production", h.BeginProduction).
		PUT("/:id/specs", h.UpdateSpecs).
		PUT("/:id/production-status", h.SetProductionStatus).
		POST("/:id/tasks/:taskId/toggle", h.ToggleTask).
		PUT("/:id/tasks/:taskId/note", h.UpdateTaskNote).
		POST("/:id/logs", h.AppendLog).
		POST("/:id/installation", h.ScheduleInstallation).
		PUT("/:id/installation", h.UpdateInstallation).
		POST("/:id/archive", h.Archive).
		GET("/:id/archive-record", h.ArchiveRecord)

	orders.Group("payment", "/:id/payment").
		GET("", h.GetPayment).
		PUT("/discount", h.SetDiscount).
		PUT("/deposit", h.RecordDeposit).
		POST("/final-toggle", h.ToggleFinalPayment).
		PUT("/total", h.CorrectTotal)

	orders.RegisterRoutes(rg)
}

// List returns orders filtered by status and search text
func (h *WorkOrderHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q appworkorder.ListWorkOrdersQuery
	if !h.BindQuery(c, &q) {
		return
	}
	resp, err := h.lifecycle.List(c.Request.Context(), tenantID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resp, len(resp), dto.ListQuery{Page: q.Page, PageSize: q.PageSize})
}

// ListArchived returns the archive, optionally filtered by search text
func (h *WorkOrderHandler) ListArchived(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	resp, err := h.lifecycle.ListArchived(c.Request.Context(), tenantID, c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resp, len(resp), dto.ListQuery{})
}

// Get returns one order
func (h *WorkOrderHandler) Get(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	h.respond(c)(h.lifecycle.GetByID(c.Request.Context(), tenantID, id))
}

// BeginProduction moves a quoted order into the workshop
func (h *WorkOrderHandler) BeginProduction(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var in appworkorder.SpecsInput
	if !h.BindJSON(c, &in) {
		return
	}
	h.respond(c)(h.lifecycle.BeginProduction(c.Request.Context(), tenantID, id, in))
}

// UpdateSpecs replaces the manufacturing specs
func (h *WorkOrderHandler) UpdateSpecs(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var in appworkorder.SpecsInput
	if !h.BindJSON(c, &in) {
		return
	}
	h.respond(c)(h.lifecycle.UpdateSpecs(c.Request.Context(), tenantID, id, in))
}

// SetProductionStatus changes the workshop sub-status
func (h *WorkOrderHandler) SetProductionStatus(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appworkorder.ProductionStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c)(h.lifecycle.SetProductionStatus(c.Request.Context(), tenantID, id, req))
}

// ToggleTask flips a checklist task
func (h *WorkOrderHandler) ToggleTask(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	h.respond(c)(h.lifecycle.ToggleTask(c.Request.Context(), tenantID, id, c.Param("taskId")))
}

// UpdateTaskNote replaces a checklist task note
func (h *WorkOrderHandler) UpdateTaskNote(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appworkorder.TaskNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c)(h.lifecycle.UpdateTaskNote(c.Request.Context(), tenantID, id, c.Param("taskId"), req))
}

// AppendLog adds a workshop note
func (h *WorkOrderHandler) AppendLog(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appworkorder.AppendLogRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c)(h.lifecycle.AppendLog(c.Request.Context(), tenantID, id, req))
}

// ScheduleInstallation moves an order out of the workshop
func (h *WorkOrderHandler) ScheduleInstallation(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appworkorder.ScheduleInstallationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c)(h.lifecycle.ScheduleInstallation(c.Request.Context(), tenantID, id, req))
}

// UpdateInstallation edits a pending installation
func (h *WorkOrderHandler) UpdateInstallation(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appworkorder.UpdateInstallationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c)(h.lifecycle.UpdateInstallation(c.Request.Context(), tenantID, id, req))
}

// Archive completes the installation and closes the order
func (h *WorkOrderHandler) Archive(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	h.respond(c)(h.lifecycle.Archive(c.Request.Context(), tenantID, id))
}

// ArchiveRecord returns the projected archive copy of an order
func (h *WorkOrderHandler) ArchiveRecord(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	if h.archive == nil {
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "Order archive is not enabled")
		return
	}
	record, err := h.archive.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// GetPayment returns the payment view with derived amounts
func (h *WorkOrderHandler) GetPayment(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	h.respondPayment(c)(h.payments.GetPayment(c.Request.Context(), tenantID, id))
}

// SetDiscount sets the discount percentage
func (h *WorkOrderHandler) SetDiscount(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appworkorder.DiscountRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respondPayment(c)(h.payments.SetDiscount(c.Request.Context(), tenantID, id, req))
}

// RecordDeposit sets the deposit amount
func (h *WorkOrderHandler) RecordDeposit(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appworkorder.AmountRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respondPayment(c)(h.payments.RecordDeposit(c.Request.Context(), tenantID, id, req))
}

// ToggleFinalPayment flips the final payment flag
func (h *WorkOrderHandler) ToggleFinalPayment(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	h.respondPayment(c)(h.payments.ToggleFinalPayment(c.Request.Context(), tenantID, id))
}

// CorrectTotal replaces the base total
func (h *WorkOrderHandler) CorrectTotal(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req appworkorder.AmountRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respondPayment(c)(h.payments.CorrectTotal(c.Request.Context(), tenantID, id, req))
}

func (h *WorkOrderHandler) respond(c *gin.Context) func(*appworkorder.WorkOrderResponse, error) {
	return func(resp *appworkorder.WorkOrderResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
	}
}

func (h *WorkOrderHandler) respondPayment(c *gin.Context) func(*appworkorder.PaymentResponse, error) {
	return func(resp *appworkorder.PaymentResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
	}
}
