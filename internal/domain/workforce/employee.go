package workforce

import (
	"strings"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// DefaultRole is assigned to employees created without one
const DefaultRole = "Operario"

// Employee is a paid-by-the-hour workshop worker
type Employee struct {
	shared.TenantAggregateRoot
	Name       string
	DNI        string
	HourlyRate valueobject.Money
	Role       string
}

// NewEmployee validates and creates an employee
func NewEmployee(tenantID uuid.UUID, name, dni string, hourlyRate valueobject.Money, role string) (*Employee, error) {
	name = strings.TrimSpace(name)
	dni = strings.TrimSpace(dni)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeMissingRequiredField, "Employee name is required")
	}
	if dni == "" {
		return nil, shared.NewDomainError(shared.CodeMissingRequiredField, "Employee DNI is required")
	}
	if hourlyRate.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Hourly rate cannot be negative")
	}
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultRole
	}

	return &Employee{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		DNI:                 dni,
		HourlyRate:          hourlyRate,
		Role:                role,
	}, nil
}
