package finance

import (
	"context"

	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSupplierObligationRepository is a mock implementation of SupplierObligationRepository
type MockSupplierObligationRepository struct {
	mock.Mock
}

func (m *MockSupplierObligationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.SupplierObligation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.SupplierObligation), args.Error(1)
}

func (m *MockSupplierObligationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.SupplierObligation, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.SupplierObligation), args.Error(1)
}

func (m *MockSupplierObligationRepository) Save(ctx context.Context, o *finance.SupplierObligation) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSupplierObligationRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Create(ctx context.Context, e *finance.LedgerEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockSnapshotReader is a mock implementation of SnapshotReader
type MockSnapshotReader struct {
	mock.Mock
}

func (m *MockSnapshotReader) ReadSnapshot(ctx context.Context, tenantID uuid.UUID) (finance.Snapshot, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(finance.Snapshot), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
