// Package memory keeps every aggregate in process memory. It backs the
// default "memory" database driver and is safe for concurrent use; values
// are deep-copied on the way in and out so callers never share state with
// the store.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workforce"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
)

type key struct {
	tenant uuid.UUID
	id     uuid.UUID
}

type dayKey struct {
	tenant   uuid.UUID
	employee uuid.UUID
	day      string
}

// Store holds all tables behind one lock so multi-table reads are consistent
type Store struct {
	mu          sync.RWMutex
	requests    map[key]*workorder.Request
	orders      map[key]*workorder.WorkOrder
	obligations map[key]*finance.SupplierObligation
	entries     map[key]*finance.LedgerEntry
	employees   map[key]*workforce.Employee
	attendance  map[dayKey]*workforce.AttendanceRecord
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		requests:    make(map[key]*workorder.Request),
		orders:      make(map[key]*workorder.WorkOrder),
		obligations: make(map[key]*finance.SupplierObligation),
		entries:     make(map[key]*finance.LedgerEntry),
		employees:   make(map[key]*workforce.Employee),
		attendance:  make(map[dayKey]*workforce.AttendanceRecord),
	}
}

// Requests returns the request repository view of the store
func (s *Store) Requests() *RequestRepository { return &RequestRepository{s} }

// WorkOrders returns the work order repository view of the store
func (s *Store) WorkOrders() *WorkOrderRepository { return &WorkOrderRepository{s} }

// SupplierObligations returns the obligation repository view of the store
func (s *Store) SupplierObligations() *SupplierObligationRepository {
	return &SupplierObligationRepository{s}
}

// Ledger returns the ledger repository view of the store
func (s *Store) Ledger() *LedgerRepository { return &LedgerRepository{s} }

// Employees returns the employee repository view of the store
func (s *Store) Employees() *EmployeeRepository { return &EmployeeRepository{s} }

// Attendance returns the attendance repository view of the store
func (s *Store) Attendance() *AttendanceRepository { return &AttendanceRepository{s} }

func matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func page[T any](items []T, filter shared.Filter) []T {
	if filter.PageSize <= 0 {
		return items
	}
	start := filter.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + filter.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func stringFilter(filter shared.Filter, name string) string {
	if v, ok := filter.Filters[name].(string); ok {
		return v
	}
	return ""
}

func sortNewestFirst[T any](items []T, created func(*T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(&items[i]) > created(&items[j])
	})
}
