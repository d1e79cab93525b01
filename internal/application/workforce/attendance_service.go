package workforce

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AttendanceService manages employees, the clock-in kiosk and salaries
type AttendanceService struct {
	employees  workforce.EmployeeRepository
	attendance workforce.AttendanceRepository
	locker     shared.Locker
	logger     *zap.Logger
	now        func() time.Time
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	employees workforce.EmployeeRepository,
	attendance workforce.AttendanceRepository,
	locker shared.Locker,
	logger *zap.Logger,
) *AttendanceService {
	if locker == nil {
		locker = shared.NoopLocker{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		employees:  employees,
		attendance: attendance,
		locker:     locker,
		logger:     logger,
		now:        time.Now,
	}
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	DNI        string            `json:"dni"`
	HourlyRate valueobject.Money `json:"hourly_rate"`
	Role       string            `json:"role"`
	CreatedAt  time.Time         `json:"created_at"`
}

// CreateEmployeeRequest registers a worker
type CreateEmployeeRequest struct {
	Name       string            `json:"name" binding:"required,max=200"`
	DNI        string            `json:"dni" binding:"required,max=20"`
	HourlyRate valueobject.Money `json:"hourly_rate" binding:"money_non_negative"`
	Role       string            `json:"role" binding:"max=100"`
}

// ClockRequest is a kiosk action; the employee is identified by id or DNI
type ClockRequest struct {
	EmployeeID *uuid.UUID `json:"employee_id"`
	DNI        string     `json:"dni" binding:"max=20"`
	Action     string     `json:"action" binding:"required,oneof=START BREAK_START BREAK_END END"`
}

// AttendanceResponse represents one working day
type AttendanceResponse struct {
	ID         uuid.UUID       `json:"id"`
	EmployeeID uuid.UUID       `json:"employee_id"`
	Day        time.Time       `json:"day"`
	Start      *time.Time      `json:"start,omitempty"`
	BreakStart *time.Time      `json:"break_start,omitempty"`
	BreakEnd   *time.Time      `json:"break_end,omitempty"`
	End        *time.Time      `json:"end,omitempty"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

// SalaryResponse is the pay accrued from recorded hours
type SalaryResponse struct {
	EmployeeID uuid.UUID         `json:"employee_id"`
	Name       string            `json:"name"`
	HourlyRate valueobject.Money `json:"hourly_rate"`
	Days       int               `json:"days"`
	TotalHours decimal.Decimal   `json:"total_hours"`
	Salary     valueobject.Money `json:"salary"`
}

func toEmployeeResponse(e *workforce.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		DNI:        e.DNI,
		HourlyRate: e.HourlyRate,
		Role:       e.Role,
		CreatedAt:  e.CreatedAt,
	}
}

func toAttendanceResponse(r *workforce.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Day:        r.Day,
		Start:      r.Start,
		BreakStart: r.BreakStart,
		BreakEnd:   r.BreakEnd,
		End:        r.End,
		TotalHours: r.TotalHours,
	}
}

// CreateEmployee registers a worker; the DNI must be unique within the tenant
func (s *AttendanceService) CreateEmployee(ctx context.Context, tenantID uuid.UUID, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	e, err := workforce.NewEmployee(tenantID, req.Name, req.DNI, req.HourlyRate, req.Role)
	if err != nil {
		return nil, err
	}

	existing, err := s.employees.FindByDNI(ctx, tenantID, e.DNI)
	switch {
	case err == nil && existing != nil:
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Employee with DNI %s already exists", e.DNI))
	case err != nil && !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	if err := s.employees.Save(ctx, e); err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(e)
	return &resp, nil
}

// ListEmployees returns the workers of a tenant
func (s *AttendanceService) ListEmployees(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]EmployeeResponse, error) {
	employees, err := s.employees.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeResponse, len(employees))
	for i := range employees {
		out[i] = toEmployeeResponse(&employees[i])
	}
	return out, nil
}

// Clock applies a kiosk action to today's record. Only START may open a day.
func (s *AttendanceService) Clock(ctx context.Context, tenantID uuid.UUID, req ClockRequest) (*AttendanceResponse, error) {
	action := workforce.Action(req.Action)
	if !action.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown attendance action %q", req.Action))
	}
	e, err := s.resolveEmployee(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, fmt.Sprintf("attendance:%s:%s", tenantID, e.ID))
	if err != nil {
		return nil, fmt.Errorf("lock attendance %s: %w", e.ID, err)
	}
	defer unlock()

	now := s.now()
	record, err := s.attendance.FindByEmployeeAndDay(ctx, tenantID, e.ID, workforce.DayOf(now))
	switch {
	case errors.Is(err, shared.ErrNotFound):
		if action != workforce.ActionStart {
			return nil, workforce.ErrNoAttendanceRecord
		}
		record = workforce.StartDay(tenantID, e.ID, now)
	case err != nil:
		return nil, err
	default:
		if err := record.Apply(action, now); err != nil {
			return nil, err
		}
	}

	if err := s.attendance.Save(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info("attendance recorded",
		zap.String("employee_id", e.ID.String()),
		zap.String("action", string(action)),
		zap.String("total_hours", record.TotalHours.StringFixed(2)),
	)
	resp := toAttendanceResponse(record)
	return &resp, nil
}

// Attendance lists the recorded days of an employee
func (s *AttendanceService) Attendance(ctx context.Context, tenantID, employeeID uuid.UUID) ([]AttendanceResponse, error) {
	if _, err := s.employees.FindByIDForTenant(ctx, tenantID, employeeID); err != nil {
		return nil, err
	}
	records, err := s.attendance.FindByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]AttendanceResponse, len(records))
	for i := range records {
		out[i] = toAttendanceResponse(&records[i])
	}
	return out, nil
}

// Salary computes total hours times hourly rate over all recorded days
func (s *AttendanceService) Salary(ctx context.Context, tenantID, employeeID uuid.UUID) (*SalaryResponse, error) {
	e, err := s.employees.FindByIDForTenant(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	records, err := s.attendance.FindByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	return &SalaryResponse{
		EmployeeID: e.ID,
		Name:       e.Name,
		HourlyRate: e.HourlyRate,
		Days:       len(records),
		TotalHours: workforce.TotalHours(records),
		Salary:     workforce.Salary(e, records),
	}, nil
}

func (s *AttendanceService) resolveEmployee(ctx context.Context, tenantID uuid.UUID, req ClockRequest) (*workforce.Employee, error) {
	if req.EmployeeID != nil {
		return s.employees.FindByIDForTenant(ctx, tenantID, *req.EmployeeID)
	}
	dni := strings.TrimSpace(req.DNI)
	if dni == "" {
		return nil, shared.NewDomainError(shared.CodeMissingRequiredField, "Employee id or DNI is required")
	}
	return s.employees.FindByDNI(ctx, tenantID, dni)
}
