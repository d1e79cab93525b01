package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplierService manages what the workshop owes its suppliers
type SupplierService struct {
	repo      finance.SupplierObligationRepository
	locker    shared.Locker
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(repo finance.SupplierObligationRepository, locker shared.Locker, logger *zap.Logger) *SupplierService {
	if locker == nil {
		locker = shared.NoopLocker{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{repo: repo, locker: locker, logger: logger}
}

// SetEventPublisher sets the event publisher for domain events
func (s *SupplierService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// SupplierObligationResponse represents an obligation in API responses
type SupplierObligationResponse struct {
	ID           uuid.UUID         `json:"id"`
	TenantID     uuid.UUID         `json:"tenant_id"`
	SupplierName string            `json:"supplier_name"`
	Concept      string            `json:"concept"`
	TotalAmount  valueobject.Money `json:"total_amount"`
	PaidAmount   valueobject.Money `json:"paid_amount"`
	Outstanding  valueobject.Money `json:"outstanding"`
	IsPaid       bool              `json:"is_paid"`
	DueDate      *time.Time        `json:"due_date,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Version      int               `json:"version"`
}

// CreateSupplierObligationRequest represents a new payable
type CreateSupplierObligationRequest struct {
	SupplierName string            `json:"supplier_name" binding:"required,max=200"`
	Concept      string            `json:"concept" binding:"max=500"`
	TotalAmount  valueobject.Money `json:"total_amount" binding:"money_non_negative"`
	PaidAmount   valueobject.Money `json:"paid_amount"`
	DueDate      *time.Time        `json:"due_date"`
	CreatedBy    uuid.UUID         `json:"-"`
}

// RecordSupplierPaymentRequest sets the amount paid to date
type RecordSupplierPaymentRequest struct {
	PaidAmount valueobject.Money `json:"paid_amount"`
}

// ToSupplierObligationResponse converts a domain obligation
func ToSupplierObligationResponse(o *finance.SupplierObligation) SupplierObligationResponse {
	return SupplierObligationResponse{
		ID:           o.ID,
		TenantID:     o.TenantID,
		SupplierName: o.SupplierName,
		Concept:      o.Concept,
		TotalAmount:  o.TotalAmount,
		PaidAmount:   o.PaidAmount,
		Outstanding:  o.Outstanding(),
		IsPaid:       o.IsPaid(),
		DueDate:      o.DueDate,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Version:      o.Version,
	}
}

// Create records a new obligation
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSupplierObligationRequest) (*SupplierObligationResponse, error) {
	o, err := finance.NewSupplierObligation(tenantID, req.SupplierName, req.Concept, req.TotalAmount, req.PaidAmount, req.DueDate)
	if err != nil {
		return nil, err
	}
	o.SetCreatedBy(req.CreatedBy)

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	resp := ToSupplierObligationResponse(o)
	return &resp, nil
}

// GetByID returns one obligation
func (s *SupplierService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SupplierObligationResponse, error) {
	o, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierObligationResponse(o)
	return &resp, nil
}

// List returns obligations of a tenant
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SupplierObligationResponse, error) {
	obligations, err := s.repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]SupplierObligationResponse, len(obligations))
	for i := range obligations {
		out[i] = ToSupplierObligationResponse(&obligations[i])
	}
	return out, nil
}

// RecordPayment sets the paid-to-date amount. Out of range amounts are
// clamped and logged, never rejected.
func (s *SupplierService) RecordPayment(ctx context.Context, tenantID, id uuid.UUID, req RecordSupplierPaymentRequest) (*SupplierObligationResponse, error) {
	return s.mutate(ctx, tenantID, id, func(o *finance.SupplierObligation) {
		if o.RecordPayment(req.PaidAmount) {
			s.logger.Warn("supplier payment clamped",
				zap.String("obligation_id", o.ID.String()),
				zap.String("requested", req.PaidAmount.StringFixed(2)),
				zap.String("applied", o.PaidAmount.StringFixed(2)),
			)
		}
	})
}

// SettleInFull marks the obligation as fully paid
func (s *SupplierService) SettleInFull(ctx context.Context, tenantID, id uuid.UUID) (*SupplierObligationResponse, error) {
	return s.mutate(ctx, tenantID, id, (*finance.SupplierObligation).SettleInFull)
}

// Delete removes an obligation
func (s *SupplierService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	unlock, err := s.locker.Lock(ctx, obligationLockKey(tenantID, id))
	if err != nil {
		return fmt.Errorf("lock supplier obligation %s: %w", id, err)
	}
	defer unlock()
	return s.repo.DeleteForTenant(ctx, tenantID, id)
}

func (s *SupplierService) mutate(ctx context.Context, tenantID, id uuid.UUID, fn func(*finance.SupplierObligation)) (*SupplierObligationResponse, error) {
	unlock, err := s.locker.Lock(ctx, obligationLockKey(tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("lock supplier obligation %s: %w", id, err)
	}
	defer unlock()

	o, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	fn(o)
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
			s.logger.Warn("failed to publish domain events",
				zap.String("obligation_id", o.ID.String()),
				zap.Error(err),
			)
		}
	}
	o.ClearDomainEvents()

	resp := ToSupplierObligationResponse(o)
	return &resp, nil
}

func obligationLockKey(tenantID, id uuid.UUID) string {
	return fmt.Sprintf("supplier:%s:%s", tenantID, id)
}
