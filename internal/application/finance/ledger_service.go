package finance

import (
	"context"
	"time"

	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerService books manual income and expenses
type LedgerService struct {
	repo   finance.LedgerRepository
	logger *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(repo finance.LedgerRepository, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{repo: repo, logger: logger}
}

// LedgerEntryResponse represents a ledger entry in API responses
type LedgerEntryResponse struct {
	ID          uuid.UUID         `json:"id"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Amount      valueobject.Money `json:"amount"`
	Direction   string            `json:"direction"`
	ReferenceID *uuid.UUID        `json:"reference_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CreateLedgerEntryRequest books a new entry
type CreateLedgerEntryRequest struct {
	Date        time.Time         `json:"date"`
	Description string            `json:"description" binding:"required,max=500"`
	Category    string            `json:"category" binding:"max=100"`
	Amount      valueobject.Money `json:"amount"`
	Direction   string            `json:"direction" binding:"required,oneof=INCOME EXPENSE"`
	ReferenceID *uuid.UUID        `json:"reference_id"`
}

// ToLedgerEntryResponse converts a domain entry
func ToLedgerEntryResponse(e *finance.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		Direction:   e.Direction.String(),
		ReferenceID: e.ReferenceID,
		CreatedAt:   e.CreatedAt,
	}
}

// Create books an entry
func (s *LedgerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateLedgerEntryRequest) (*LedgerEntryResponse, error) {
	entry, err := finance.NewLedgerEntry(tenantID, req.Date, req.Description, req.Category, req.Amount, finance.Direction(req.Direction))
	if err != nil {
		return nil, err
	}
	if req.ReferenceID != nil {
		entry.WithReference(*req.ReferenceID)
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("ledger entry booked",
		zap.String("entry_id", entry.ID.String()),
		zap.String("direction", entry.Direction.String()),
		zap.String("amount", entry.Amount.StringFixed(2)),
	)
	resp := ToLedgerEntryResponse(entry)
	return &resp, nil
}

// List returns the entries of a tenant, newest first
func (s *LedgerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]LedgerEntryResponse, error) {
	entries, err := s.repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return out, nil
}

// Delete removes an entry
func (s *LedgerService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.repo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("ledger entry deleted", zap.String("entry_id", id.String()))
	return nil
}
