package workorder

import (
	"context"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockWorkOrderRepository is a mock implementation of WorkOrderRepository
type MockWorkOrderRepository struct {
	mock.Mock
}

func (m *MockWorkOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}

func (m *MockWorkOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter workorder.ListFilter) ([]workorder.WorkOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]workorder.WorkOrder), args.Error(1)
}

func (m *MockWorkOrderRepository) Save(ctx context.Context, order *workorder.WorkOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) SaveWithLock(ctx context.Context, order *workorder.WorkOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) CreateFromRequest(ctx context.Context, req *workorder.Request, order *workorder.WorkOrder) error {
	args := m.Called(ctx, req, order)
	return args.Error(0)
}

// MockRequestRepository is a mock implementation of RequestRepository
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workorder.Request, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.Request), args.Error(1)
}

func (m *MockRequestRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workorder.Request, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]workorder.Request), args.Error(1)
}

func (m *MockRequestRepository) Save(ctx context.Context, req *workorder.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockDocumentStorage is a mock implementation of DocumentStorage
type MockDocumentStorage struct {
	mock.Mock
}

func (m *MockDocumentStorage) GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockDocumentStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockDocumentStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
