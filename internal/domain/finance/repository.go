package finance

import (
	"context"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierObligationRepository persists supplier obligations
type SupplierObligationRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*SupplierObligation, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SupplierObligation, error)
	Save(ctx context.Context, obligation *SupplierObligation) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// LedgerRepository persists manual ledger entries. There is no update.
type LedgerRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*LedgerEntry, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]LedgerEntry, error)
	Create(ctx context.Context, entry *LedgerEntry) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// SnapshotReader loads orders, obligations and entries as one consistent read
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, tenantID uuid.UUID) (Snapshot, error)
}
