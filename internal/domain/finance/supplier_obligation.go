package finance

import (
	"strings"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// SupplierObligation is money owed to a materials or service supplier.
// PaidAmount always stays within [0, TotalAmount].
type SupplierObligation struct {
	shared.TenantAggregateRoot
	SupplierName string
	Concept      string
	TotalAmount  valueobject.Money
	PaidAmount   valueobject.Money
	DueDate      *time.Time
}

// NewSupplierObligation records a new payable; the initial paid amount is clamped like any payment
func NewSupplierObligation(tenantID uuid.UUID, supplierName, concept string, total, initialPaid valueobject.Money, dueDate *time.Time) (*SupplierObligation, error) {
	supplierName = strings.TrimSpace(supplierName)
	if supplierName == "" {
		return nil, shared.NewDomainError(shared.CodeMissingRequiredField, "Supplier name is required")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Total owed cannot be negative")
	}

	o := &SupplierObligation{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SupplierName:        supplierName,
		Concept:             concept,
		TotalAmount:         total,
		PaidAmount:          initialPaid.Clamp(valueobject.Zero(), total),
		DueDate:             dueDate,
	}
	return o, nil
}

// IsPaid reports whether the obligation is fully settled
func (o *SupplierObligation) IsPaid() bool {
	return o.PaidAmount.GreaterThanOrEqual(o.TotalAmount)
}

// Outstanding is what is still owed
func (o *SupplierObligation) Outstanding() valueobject.Money {
	return o.TotalAmount.Subtract(o.PaidAmount)
}

// RecordPayment sets the amount paid to date, clamped to [0, total].
// It never fails; the return value reports whether the request was clamped.
func (o *SupplierObligation) RecordPayment(paidToDate valueobject.Money) (clamped bool) {
	paid := paidToDate.Clamp(valueobject.Zero(), o.TotalAmount)
	clamped = !paid.Equals(paidToDate)

	o.PaidAmount = paid
	o.IncrementVersion()
	o.AddDomainEvent(NewSupplierPaymentRecordedEvent(o, paidToDate, clamped))
	return clamped
}

// SettleInFull pays the whole total
func (o *SupplierObligation) SettleInFull() {
	o.RecordPayment(o.TotalAmount)
}
