package finance

import (
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// EventTypeSupplierPaymentRecorded is raised on every supplier payment update
const EventTypeSupplierPaymentRecorded = "SupplierPaymentRecorded"

// SupplierPaymentRecordedEvent carries the requested and applied amounts
type SupplierPaymentRecordedEvent struct {
	shared.BaseDomainEvent
	ObligationID uuid.UUID         `json:"obligation_id"`
	SupplierName string            `json:"supplier_name"`
	Requested    valueobject.Money `json:"requested"`
	PaidAmount   valueobject.Money `json:"paid_amount"`
	Clamped      bool              `json:"clamped"`
	IsPaid       bool              `json:"is_paid"`
}

// NewSupplierPaymentRecordedEvent creates a new SupplierPaymentRecordedEvent
func NewSupplierPaymentRecordedEvent(o *SupplierObligation, requested valueobject.Money, clamped bool) *SupplierPaymentRecordedEvent {
	return &SupplierPaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierPaymentRecorded, "SupplierObligation", o.ID, o.TenantID),
		ObligationID:    o.ID,
		SupplierName:    o.SupplierName,
		Requested:       requested,
		PaidAmount:      o.PaidAmount,
		Clamped:         clamped,
		IsPaid:          o.IsPaid(),
	}
}
