package memory

import (
	"context"
	"sort"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workforce"
	"github.com/google/uuid"
)

const dayLayout = "2006-01-02"

// EmployeeRepository implements workforce.EmployeeRepository over a Store
type EmployeeRepository struct {
	s *Store
}

// FindByIDForTenant finds an employee by ID within a tenant
func (r *EmployeeRepository) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*workforce.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.employees[key{tenantID, id}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneEmployee(e), nil
}

// FindByDNI finds an employee by national ID within a tenant
func (r *EmployeeRepository) FindByDNI(_ context.Context, tenantID uuid.UUID, dni string) (*workforce.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if e := r.s.employeeByDNI(tenantID, dni); e != nil {
		return cloneEmployee(e), nil
	}
	return nil, shared.ErrNotFound
}

func (s *Store) employeeByDNI(tenantID uuid.UUID, dni string) *workforce.Employee {
	for k, e := range s.employees {
		if k.tenant == tenantID && e.DNI == dni {
			return e
		}
	}
	return nil
}

// FindAllForTenant lists employees by name
func (r *EmployeeRepository) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workforce.Employee, error) {
	r.s.mu.RLock()
	out := make([]workforce.Employee, 0)
	for k, e := range r.s.employees {
		if k.tenant == tenantID && matches(filter.Search, e.Name, e.DNI) {
			out = append(out, *cloneEmployee(e))
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, filter), nil
}

// Save creates or updates an employee; DNIs are unique per tenant
func (r *EmployeeRepository) Save(_ context.Context, e *workforce.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing := r.s.employeeByDNI(e.TenantID, e.DNI); existing != nil && existing.ID != e.ID {
		return shared.ErrAlreadyExists
	}
	r.s.employees[key{e.TenantID, e.ID}] = cloneEmployee(e)
	return nil
}

// AttendanceRepository implements workforce.AttendanceRepository over a Store
type AttendanceRepository struct {
	s *Store
}

func attendanceKey(tenantID, employeeID uuid.UUID, day time.Time) dayKey {
	return dayKey{tenantID, employeeID, workforce.DayOf(day).Format(dayLayout)}
}

// FindByEmployeeAndDay finds the record of the calendar day containing day
func (r *AttendanceRepository) FindByEmployeeAndDay(_ context.Context, tenantID, employeeID uuid.UUID, day time.Time) (*workforce.AttendanceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.attendance[attendanceKey(tenantID, employeeID, day)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneAttendance(rec), nil
}

// FindByEmployee lists an employee's records, most recent day first
func (r *AttendanceRepository) FindByEmployee(_ context.Context, tenantID, employeeID uuid.UUID) ([]workforce.AttendanceRecord, error) {
	r.s.mu.RLock()
	out := make([]workforce.AttendanceRecord, 0)
	for k, rec := range r.s.attendance {
		if k.tenant == tenantID && k.employee == employeeID {
			out = append(out, *cloneAttendance(rec))
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Day.After(out[j].Day) })
	return out, nil
}

// Save creates or updates a record. A different record for a day that
// already has one is rejected with ErrAlreadyStarted.
func (r *AttendanceRepository) Save(_ context.Context, rec *workforce.AttendanceRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := attendanceKey(rec.TenantID, rec.EmployeeID, rec.Day)
	if existing, ok := r.s.attendance[k]; ok && existing.ID != rec.ID {
		return workforce.ErrAlreadyStarted
	}
	r.s.attendance[k] = cloneAttendance(rec)
	return nil
}
