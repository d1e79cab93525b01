package models

import (
	"time"

	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// SupplierObligationModel is the persistence model for supplier obligations
type SupplierObligationModel struct {
	TenantAggregateModel
	SupplierName string            `gorm:"type:varchar(200);not null;index"`
	Concept      string            `gorm:"type:varchar(500)"`
	TotalAmount  valueobject.Money `gorm:"type:decimal(18,2);not null"`
	PaidAmount   valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	DueDate      *time.Time
}

// TableName returns the table name for GORM
func (SupplierObligationModel) TableName() string {
	return "supplier_obligations"
}

// ToDomain converts the model to a domain obligation
func (m *SupplierObligationModel) ToDomain() *finance.SupplierObligation {
	o := &finance.SupplierObligation{
		SupplierName: m.SupplierName,
		Concept:      m.Concept,
		TotalAmount:  m.TotalAmount,
		PaidAmount:   m.PaidAmount,
		DueDate:      m.DueDate,
	}
	m.PopulateTenantAggregateRoot(&o.TenantAggregateRoot)
	return o
}

// SupplierObligationModelFromDomain converts a domain obligation to the model
func SupplierObligationModelFromDomain(o *finance.SupplierObligation) *SupplierObligationModel {
	m := &SupplierObligationModel{
		SupplierName: o.SupplierName,
		Concept:      o.Concept,
		TotalAmount:  o.TotalAmount,
		PaidAmount:   o.PaidAmount,
		DueDate:      o.DueDate,
	}
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	return m
}

// LedgerEntryModel is the persistence model for manual ledger entries
type LedgerEntryModel struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Date        time.Time         `gorm:"not null;index"`
	Description string            `gorm:"type:varchar(500);not null"`
	Category    string            `gorm:"type:varchar(100)"`
	Amount      valueobject.Money `gorm:"type:decimal(18,2);not null"`
	Direction   string            `gorm:"type:varchar(10);not null"`
	ReferenceID *uuid.UUID        `gorm:"type:uuid"`
	CreatedAt   time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the model to a domain entry
func (m *LedgerEntryModel) ToDomain() *finance.LedgerEntry {
	return &finance.LedgerEntry{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Date:        m.Date,
		Description: m.Description,
		Category:    m.Category,
		Amount:      m.Amount,
		Direction:   finance.Direction(m.Direction),
		ReferenceID: m.ReferenceID,
		CreatedAt:   m.CreatedAt,
	}
}

// LedgerEntryModelFromDomain converts a domain entry to the model
func LedgerEntryModelFromDomain(e *finance.LedgerEntry) *LedgerEntryModel {
	return &LedgerEntryModel{
		ID:          e.ID,
		TenantID:    e.TenantID,
		Date:        e.Date,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		Direction:   e.Direction.String(),
		ReferenceID: e.ReferenceID,
		CreatedAt:   e.CreatedAt,
	}
}
