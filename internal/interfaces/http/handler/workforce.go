package handler

import (
	appworkforce "github.com/carpentry/backend/internal/application/workforce"
	"github.com/carpentry/backend/internal/interfaces/http/dto"
	"github.com/carpentry/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// WorkforceHandler handles employees and the attendance kiosk
type WorkforceHandler struct {
	BaseHandler
	attendance *appworkforce.AttendanceService
}

// NewWorkforceHandler creates a new WorkforceHandler
func NewWorkforceHandler(attendance *appworkforce.AttendanceService) *WorkforceHandler {
	return &WorkforceHandler{attendance: attendance}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *WorkforceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	router.NewDomainGroup("employees", "/employees").
		POST("", h.CreateEmployee).
		GET("", h.ListEmployees).
		GET("/:id/attendance", h.Attendance).
		GET("/:id/salary", h.Salary).
		RegisterRoutes(rg)

	router.NewDomainGroup("attendance", "/attendance").
		POST("/actions", h.Clock).
		RegisterRoutes(rg)
}

// CreateEmployee registers a worker
func (h *WorkforceHandler) CreateEmployee(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appworkforce.CreateEmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.attendance.CreateEmployee(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListEmployees lists workers
func (h *WorkforceHandler) ListEmployees(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	resp, err := h.attendance.ListEmployees(c.Request.Context(), tenantID, q.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resp, len(resp), q)
}

// Clock applies a kiosk action to today's record
func (h *WorkforceHandler) Clock(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appworkforce.ClockRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.attendance.Clock(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Attendance lists an employee's working days
func (h *WorkforceHandler) Attendance(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	resp, err := h.attendance.Attendance(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resp, len(resp), dto.ListQuery{})
}

// Salary returns the pay accrued by an employee
func (h *WorkforceHandler) Salary(c *gin.Context) {
	tenantID, id, ok := h.scope(c)
	if !ok {
		return
	}
	resp, err := h.attendance.Salary(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
