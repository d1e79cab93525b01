package memory

import (
	"context"
	"sort"

	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierObligationRepository implements finance.SupplierObligationRepository over a Store
type SupplierObligationRepository struct {
	s *Store
}

// FindByIDForTenant finds an obligation by ID within a tenant
func (r *SupplierObligationRepository) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.SupplierObligation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.obligations[key{tenantID, id}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneObligation(o), nil
}

// FindAllForTenant lists obligations by due date, undated last
func (r *SupplierObligationRepository) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.SupplierObligation, error) {
	r.s.mu.RLock()
	out := make([]finance.SupplierObligation, 0)
	for _, o := range r.s.obligationsOf(tenantID) {
		if matches(filter.Search, o.SupplierName, o.Concept) {
			out = append(out, o)
		}
	}
	r.s.mu.RUnlock()
	return page(out, filter), nil
}

// obligationsOf copies a tenant's obligations in listing order. Caller holds the lock.
func (s *Store) obligationsOf(tenantID uuid.UUID) []finance.SupplierObligation {
	out := make([]finance.SupplierObligation, 0)
	for k, o := range s.obligations {
		if k.tenant == tenantID {
			out = append(out, *cloneObligation(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a == nil && b == nil:
			return out[i].CreatedAt.After(out[j].CreatedAt)
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Save creates or updates an obligation
func (r *SupplierObligationRepository) Save(_ context.Context, o *finance.SupplierObligation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.obligations[key{o.TenantID, o.ID}] = cloneObligation(o)
	return nil
}

// DeleteForTenant deletes an obligation within a tenant
func (r *SupplierObligationRepository) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{tenantID, id}
	if _, ok := r.s.obligations[k]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.obligations, k)
	return nil
}

// LedgerRepository implements finance.LedgerRepository over a Store
type LedgerRepository struct {
	s *Store
}

// FindByIDForTenant finds an entry by ID within a tenant
func (r *LedgerRepository) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.LedgerEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.entries[key{tenantID, id}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneEntry(e), nil
}

// FindAllForTenant lists entries, most recent first
func (r *LedgerRepository) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.LedgerEntry, error) {
	direction := stringFilter(filter, "direction")

	r.s.mu.RLock()
	out := make([]finance.LedgerEntry, 0)
	for _, e := range r.s.entriesOf(tenantID) {
		if direction != "" && e.Direction.String() != direction {
			continue
		}
		if matches(filter.Search, e.Description, e.Category) {
			out = append(out, e)
		}
	}
	r.s.mu.RUnlock()
	return page(out, filter), nil
}

// entriesOf copies a tenant's ledger entries, most recent first. Caller holds the lock.
func (s *Store) entriesOf(tenantID uuid.UUID) []finance.LedgerEntry {
	out := make([]finance.LedgerEntry, 0)
	for k, e := range s.entries {
		if k.tenant == tenantID {
			out = append(out, *cloneEntry(e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Create inserts a new entry
func (r *LedgerRepository) Create(_ context.Context, e *finance.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{e.TenantID, e.ID}
	if _, ok := r.s.entries[k]; ok {
		return shared.ErrAlreadyExists
	}
	r.s.entries[k] = cloneEntry(e)
	return nil
}

// DeleteForTenant deletes an entry within a tenant
func (r *LedgerRepository) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{tenantID, id}
	if _, ok := r.s.entries[k]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.entries, k)
	return nil
}

// ReadSnapshot copies the three money sources under a single read lock
func (s *Store) ReadSnapshot(_ context.Context, tenantID uuid.UUID) (finance.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return finance.Snapshot{
		Orders:      s.ordersOf(tenantID),
		Obligations: s.obligationsOf(tenantID),
		Entries:     s.entriesOf(tenantID),
	}, nil
}
