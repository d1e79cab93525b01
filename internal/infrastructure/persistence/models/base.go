package models

import (
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantAggregateModel carries the persistence fields shared by every
// tenant-scoped aggregate: identity, timestamps, version and owner.
type TenantAggregateModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	Version   int        `gorm:"not null;default:1"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// FromDomainTenantAggregateRoot copies the aggregate header into the model
func (m *TenantAggregateModel) FromDomainTenantAggregateRoot(a shared.TenantAggregateRoot) {
	m.ID = a.ID
	m.TenantID = a.TenantID
	m.CreatedBy = a.CreatedBy
	m.Version = a.Version
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
}

// PopulateTenantAggregateRoot copies the model header back into an aggregate
func (m *TenantAggregateModel) PopulateTenantAggregateRoot(a *shared.TenantAggregateRoot) {
	a.ID = m.ID
	a.TenantID = m.TenantID
	a.CreatedBy = m.CreatedBy
	a.Version = m.Version
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
}

// All returns every model managed by the schema, in dependency order
func All() []any {
	return []any{
		&RequestModel{},
		&WorkOrderModel{},
		&SupplierObligationModel{},
		&LedgerEntryModel{},
		&EmployeeModel{},
		&AttendanceModel{},
	}
}
