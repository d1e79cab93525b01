package workorder

import (
	"context"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ListFilter narrows work order listings
type ListFilter struct {
	shared.Filter
	Statuses []Status
	// NameOrCode narrows the search to the client name and client code
	NameOrCode bool
}

// WorkOrderRepository persists work orders
type WorkOrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*WorkOrder, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]WorkOrder, error)
	// Save inserts a new order (version 1) or overwrites an existing one
	Save(ctx context.Context, order *WorkOrder) error
	// SaveWithLock persists only if the stored version equals order.Version-1,
	// returning shared.ErrConcurrencyConflict otherwise.
	SaveWithLock(ctx context.Context, order *WorkOrder) error
	// CreateFromRequest stores the consumed request and the new order atomically
	CreateFromRequest(ctx context.Context, req *Request, order *WorkOrder) error
}

// RequestRepository persists intake requests
type RequestRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Request, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Request, error)
	Save(ctx context.Context, req *Request) error
}
