package models

import (
	"time"

	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DayKeyLayout formats the calendar day an attendance row belongs to
const DayKeyLayout = "2006-01-02"

// EmployeeModel is the persistence model for employees. The aggregate
// header is spelled out so the DNI index can be scoped to the tenant.
type EmployeeModel struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_employee_tenant_dni,priority:1"`
	CreatedBy  *uuid.UUID        `gorm:"type:uuid"`
	Version    int               `gorm:"not null;default:1"`
	CreatedAt  time.Time         `gorm:"not null"`
	UpdatedAt  time.Time         `gorm:"not null"`
	Name       string            `gorm:"type:varchar(200);not null"`
	DNI        string            `gorm:"type:varchar(20);not null;uniqueIndex:idx_employee_tenant_dni,priority:2"`
	HourlyRate valueobject.Money `gorm:"type:decimal(18,2);not null"`
	Role       string            `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the model to a domain employee
func (m *EmployeeModel) ToDomain() *workforce.Employee {
	e := &workforce.Employee{
		Name:       m.Name,
		DNI:        m.DNI,
		HourlyRate: m.HourlyRate,
		Role:       m.Role,
	}
	e.ID = m.ID
	e.TenantID = m.TenantID
	e.CreatedBy = m.CreatedBy
	e.Version = m.Version
	e.CreatedAt = m.CreatedAt
	e.UpdatedAt = m.UpdatedAt
	return e
}

// EmployeeModelFromDomain converts a domain employee to the model
func EmployeeModelFromDomain(e *workforce.Employee) *EmployeeModel {
	return &EmployeeModel{
		ID:         e.ID,
		TenantID:   e.TenantID,
		CreatedBy:  e.CreatedBy,
		Version:    e.Version,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		Name:       e.Name,
		DNI:        e.DNI,
		HourlyRate: e.HourlyRate,
		Role:       e.Role,
	}
}

// AttendanceModel is the persistence model for one working day
type AttendanceModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_day,priority:1"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_day,priority:2"`
	DayKey     string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_attendance_day,priority:3"`
	Day        time.Time `gorm:"not null"`
	Start      *time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time
	End        *time.Time      `gorm:"column:end_at"`
	TotalHours decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (AttendanceModel) TableName() string {
	return "attendance_records"
}

// ToDomain converts the model to a domain record
func (m *AttendanceModel) ToDomain() *workforce.AttendanceRecord {
	return &workforce.AttendanceRecord{
		ID:         m.ID,
		TenantID:   m.TenantID,
		EmployeeID: m.EmployeeID,
		Day:        m.Day,
		Start:      m.Start,
		BreakStart: m.BreakStart,
		BreakEnd:   m.BreakEnd,
		End:        m.End,
		TotalHours: m.TotalHours,
	}
}

// AttendanceModelFromDomain converts a domain record to the model
func AttendanceModelFromDomain(r *workforce.AttendanceRecord) *AttendanceModel {
	return &AttendanceModel{
		ID:         r.ID,
		TenantID:   r.TenantID,
		EmployeeID: r.EmployeeID,
		DayKey:     r.Day.Format(DayKeyLayout),
		Day:        r.Day,
		Start:      r.Start,
		BreakStart: r.BreakStart,
		BreakEnd:   r.BreakEnd,
		End:        r.End,
		TotalHours: r.TotalHours,
	}
}
