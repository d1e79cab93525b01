package persistence

import (
	"context"
	"errors"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/carpentry/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWorkOrderRepository implements workorder.WorkOrderRepository using GORM
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GormWorkOrderRepository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// FindByIDForTenant finds a work order by ID within a tenant
func (r *GormWorkOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workorder.WorkOrder, error) {
	var model models.WorkOrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists work orders, newest first. Search matches the
// client name, code, email and phone, or only name and code when
// filter.NameOrCode is set.
func (r *GormWorkOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter workorder.ListFilter) ([]workorder.WorkOrder, error) {
	searchColumns := []string{"client_name", "client_code", "client_email", "client_phone"}
	if filter.NameOrCode {
		searchColumns = searchColumns[:2]
	}
	query := r.db.WithContext(ctx).Model(&models.WorkOrderModel{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			searchScope(filter.Search, searchColumns...),
			paginate(filter.Filter),
		)
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where("status IN ?", statuses)
	}

	var orderModels []models.WorkOrderModel
	if err := query.Order("created_at DESC").Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return workOrdersToDomain(orderModels), nil
}

// Save creates or fully overwrites a work order
func (r *GormWorkOrderRepository) Save(ctx context.Context, order *workorder.WorkOrder) error {
	return r.db.WithContext(ctx).Save(models.WorkOrderModelFromDomain(order)).Error
}

// SaveWithLock saves a work order with optimistic locking (version check).
// Every column is written so cleared fields (final_paid=false, nil
// installation) are persisted too.
func (r *GormWorkOrderRepository) SaveWithLock(ctx context.Context, order *workorder.WorkOrder) error {
	model := models.WorkOrderModelFromDomain(order)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("tenant_id = ? AND version = ?", order.TenantID, order.Version-1).
		Select("*").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CreateFromRequest marks the request quoted and inserts the order in one
// transaction. A request already consumed by another quote loses the
// version check and nothing is written.
func (r *GormWorkOrderRepository) CreateFromRequest(ctx context.Context, req *workorder.Request, order *workorder.WorkOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reqModel := models.RequestModelFromDomain(req)
		result := tx.Model(reqModel).
			Where("tenant_id = ? AND version = ?", req.TenantID, req.Version-1).
			Select("*").
			Updates(reqModel)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := tx.Create(models.WorkOrderModelFromDomain(order)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrAlreadyExists
			}
			return err
		}
		return nil
	})
}

func workOrdersToDomain(orderModels []models.WorkOrderModel) []workorder.WorkOrder {
	orders := make([]workorder.WorkOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders
}

// GormRequestRepository implements workorder.RequestRepository using GORM
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// FindByIDForTenant finds a request by ID within a tenant
func (r *GormRequestRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workorder.Request, error) {
	var model models.RequestModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists requests, newest first. Filters["status"] narrows by status.
func (r *GormRequestRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workorder.Request, error) {
	var requestModels []models.RequestModel
	if err := r.db.WithContext(ctx).Model(&models.RequestModel{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			equalFilter(filter, "status", "status"),
			searchScope(filter.Search, "client_name", "description"),
			paginate(filter),
		).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]workorder.Request, len(requestModels))
	for i := range requestModels {
		requests[i] = *requestModels[i].ToDomain()
	}
	return requests, nil
}

// Save creates or updates a request
func (r *GormRequestRepository) Save(ctx context.Context, req *workorder.Request) error {
	return r.db.WithContext(ctx).Save(models.RequestModelFromDomain(req)).Error
}
