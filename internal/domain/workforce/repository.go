package workforce

import (
	"context"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeRepository persists employees
type EmployeeRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Employee, error)
	FindByDNI(ctx context.Context, tenantID uuid.UUID, dni string) (*Employee, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Employee, error)
	Save(ctx context.Context, employee *Employee) error
}

// AttendanceRepository persists attendance records
type AttendanceRepository interface {
	FindByEmployeeAndDay(ctx context.Context, tenantID, employeeID uuid.UUID, day time.Time) (*AttendanceRecord, error)
	FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) ([]AttendanceRecord, error)
	Save(ctx context.Context, record *AttendanceRecord) error
}
