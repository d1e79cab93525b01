package memory

import (
	"context"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
)

// WorkOrderRepository implements workorder.WorkOrderRepository over a Store
type WorkOrderRepository struct {
	s *Store
}

// FindByIDForTenant finds a work order by ID within a tenant
func (r *WorkOrderRepository) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*workorder.WorkOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[key{tenantID, id}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneWorkOrder(o), nil
}

// FindAllForTenant lists work orders, newest first
func (r *WorkOrderRepository) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter workorder.ListFilter) ([]workorder.WorkOrder, error) {
	r.s.mu.RLock()
	out := r.s.ordersOf(tenantID)
	r.s.mu.RUnlock()

	kept := out[:0]
	for i := range out {
		if !statusIn(out[i].Status, filter.Statuses) {
			continue
		}
		matches := out[i].MatchesSearch
		if filter.NameOrCode {
			matches = out[i].MatchesNameOrCode
		}
		if !matches(filter.Search) {
			continue
		}
		kept = append(kept, out[i])
	}
	return page(kept, filter.Filter), nil
}

func statusIn(s workorder.Status, statuses []workorder.Status) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, want := range statuses {
		if s == want {
			return true
		}
	}
	return false
}

// ordersOf copies a tenant's orders, newest first. Caller holds the lock.
func (s *Store) ordersOf(tenantID uuid.UUID) []workorder.WorkOrder {
	out := make([]workorder.WorkOrder, 0)
	for k, o := range s.orders {
		if k.tenant == tenantID {
			out = append(out, *cloneWorkOrder(o))
		}
	}
	sortNewestFirst(out, func(o *workorder.WorkOrder) int64 { return o.CreatedAt.UnixNano() })
	return out
}

// Save creates or overwrites a work order
func (r *WorkOrderRepository) Save(_ context.Context, order *workorder.WorkOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[key{order.TenantID, order.ID}] = cloneWorkOrder(order)
	return nil
}

// SaveWithLock overwrites the order only if the stored version is order.Version-1
func (r *WorkOrderRepository) SaveWithLock(_ context.Context, order *workorder.WorkOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{order.TenantID, order.ID}
	current, ok := r.s.orders[k]
	if !ok || current.Version != order.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.s.orders[k] = cloneWorkOrder(order)
	return nil
}

// CreateFromRequest stores the consumed request and the new order atomically
func (r *WorkOrderRepository) CreateFromRequest(_ context.Context, req *workorder.Request, order *workorder.WorkOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rk := key{req.TenantID, req.ID}
	current, ok := r.s.requests[rk]
	if !ok || current.Version != req.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	for _, o := range r.s.orders {
		if o.TenantID == req.TenantID && o.Request.RequestID == req.ID {
			return shared.ErrAlreadyExists
		}
	}
	r.s.requests[rk] = cloneRequest(req)
	r.s.orders[key{order.TenantID, order.ID}] = cloneWorkOrder(order)
	return nil
}

// RequestRepository implements workorder.RequestRepository over a Store
type RequestRepository struct {
	s *Store
}

// FindByIDForTenant finds a request by ID within a tenant
func (r *RequestRepository) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*workorder.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	req, ok := r.s.requests[key{tenantID, id}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneRequest(req), nil
}

// FindAllForTenant lists requests, newest first
func (r *RequestRepository) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workorder.Request, error) {
	status := stringFilter(filter, "status")

	r.s.mu.RLock()
	out := make([]workorder.Request, 0)
	for k, req := range r.s.requests {
		if k.tenant != tenantID {
			continue
		}
		if status != "" && req.Status.String() != status {
			continue
		}
		if !matches(filter.Search, req.Client.Name, req.Description) {
			continue
		}
		out = append(out, *cloneRequest(req))
	}
	r.s.mu.RUnlock()

	sortNewestFirst(out, func(req *workorder.Request) int64 { return req.CreatedAt.UnixNano() })
	return page(out, filter), nil
}

// Save creates or updates a request
func (r *RequestRepository) Save(_ context.Context, req *workorder.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.requests[key{req.TenantID, req.ID}] = cloneRequest(req)
	return nil
}
