package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workforce"
	"github.com/carpentry/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements workforce.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByIDForTenant finds an employee by ID within a tenant
func (r *GormEmployeeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workforce.Employee, error) {
	return r.findOne(ctx, "tenant_id = ? AND id = ?", tenantID, id)
}

// FindByDNI finds an employee by national ID within a tenant
func (r *GormEmployeeRepository) FindByDNI(ctx context.Context, tenantID uuid.UUID, dni string) (*workforce.Employee, error) {
	return r.findOne(ctx, "tenant_id = ? AND dni = ?", tenantID, dni)
}

func (r *GormEmployeeRepository) findOne(ctx context.Context, query string, args ...any) (*workforce.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists employees by name
func (r *GormEmployeeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workforce.Employee, error) {
	var employeeModels []models.EmployeeModel
	if err := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			searchScope(filter.Search, "name", "dni"),
			paginate(filter),
		).
		Order("name ASC").
		Find(&employeeModels).Error; err != nil {
		return nil, err
	}

	employees := make([]workforce.Employee, len(employeeModels))
	for i := range employeeModels {
		employees[i] = *employeeModels[i].ToDomain()
	}
	return employees, nil
}

// Save creates or updates an employee; a second employee with the same DNI
// in the tenant is rejected with shared.ErrAlreadyExists.
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *workforce.Employee) error {
	if err := r.db.WithContext(ctx).Save(models.EmployeeModelFromDomain(employee)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GormAttendanceRepository implements workforce.AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// FindByEmployeeAndDay finds the record of the calendar day containing day
func (r *GormAttendanceRepository) FindByEmployeeAndDay(ctx context.Context, tenantID, employeeID uuid.UUID, day time.Time) (*workforce.AttendanceRecord, error) {
	var model models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND employee_id = ? AND day_key = ?", tenantID, employeeID, workforce.DayOf(day).Format(models.DayKeyLayout)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmployee lists an employee's records, most recent day first
func (r *GormAttendanceRepository) FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) ([]workforce.AttendanceRecord, error) {
	var recordModels []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND employee_id = ?", tenantID, employeeID).
		Order("day_key DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]workforce.AttendanceRecord, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records, nil
}

// Save creates or updates a record. Two START clocks racing for the same
// day collide on the unique day index and the loser gets ErrAlreadyStarted.
func (r *GormAttendanceRepository) Save(ctx context.Context, record *workforce.AttendanceRecord) error {
	if err := r.db.WithContext(ctx).Save(models.AttendanceModelFromDomain(record)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return workforce.ErrAlreadyStarted
		}
		return err
	}
	return nil
}
