package persistence

import (
	"context"
	"errors"

	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierObligationRepository implements finance.SupplierObligationRepository using GORM
type GormSupplierObligationRepository struct {
	db *gorm.DB
}

// NewGormSupplierObligationRepository creates a new GormSupplierObligationRepository
func NewGormSupplierObligationRepository(db *gorm.DB) *GormSupplierObligationRepository {
	return &GormSupplierObligationRepository{db: db}
}

// FindByIDForTenant finds an obligation by ID within a tenant
func (r *GormSupplierObligationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.SupplierObligation, error) {
	var model models.SupplierObligationModel
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

// FindAllForTenant lists obligations by due date, undated last
func (r *GormSupplierObligationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.SupplierObligation, error) {
	var obligationModels []models.SupplierObligationModel
	if err := r.db.WithContext(ctx).Model(&models.SupplierObligationModel{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			searchScope(filter.Search, "supplier_name", "concept"),
			paginate(filter),
		).
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, created_at DESC").
		Find(&obligationModels).Error; err != nil {
		return nil, err
	}
	return obligationsToDomain(obligationModels), nil
}

// Save creates or updates an obligation
func (r *GormSupplierObligationRepository) Save(ctx context.Context, obligation *finance.SupplierObligation) error {
	return r.db.WithContext(ctx).Save(models.SupplierObligationModelFromDomain(obligation)).Error
}

// DeleteForTenant deletes an obligation within a tenant
func (r *GormSupplierObligationRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.SupplierObligationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func obligationsToDomain(obligationModels []models.SupplierObligationModel) []finance.SupplierObligation {
	out := make([]finance.SupplierObligation, len(obligationModels))
	for i := range obligationModels {
		out[i] = *obligationModels[i].ToDomain()
	}
	return out
}

// GormLedgerRepository implements finance.LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// FindByIDForTenant finds an entry by ID within a tenant
func (r *GormLedgerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.LedgerEntry, error) {
	var model models.LedgerEntryModel
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

// FindAllForTenant lists entries, most recent first. Filters["direction"]
// narrows to INCOME or EXPENSE.
func (r *GormLedgerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			equalFilter(filter, "direction", "direction"),
			searchScope(filter.Search, "description", "category"),
			paginate(filter),
		).
		Order("date DESC, created_at DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return entriesToDomain(entryModels), nil
}

// Create inserts a new entry
func (r *GormLedgerRepository) Create(ctx context.Context, entry *finance.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(models.LedgerEntryModelFromDomain(entry)).Error
}

// DeleteForTenant deletes an entry within a tenant
func (r *GormLedgerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.LedgerEntryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func entriesToDomain(entryModels []models.LedgerEntryModel) []finance.LedgerEntry {
	out := make([]finance.LedgerEntry, len(entryModels))
	for i := range entryModels {
		out[i] = *entryModels[i].ToDomain()
	}
	return out
}

// GormSnapshotReader reads the three money sources for reconciliation
type GormSnapshotReader struct {
	db *gorm.DB
}

// NewGormSnapshotReader creates a new GormSnapshotReader
func NewGormSnapshotReader(db *gorm.DB) *GormSnapshotReader {
	return &GormSnapshotReader{db: db}
}

// ReadSnapshot loads orders, obligations and ledger entries in one read
// transaction so the totals never mix states from different moments.
func (r *GormSnapshotReader) ReadSnapshot(ctx context.Context, tenantID uuid.UUID) (finance.Snapshot, error) {
	var snap finance.Snapshot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderModels []models.WorkOrderModel
		if err := tx.Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&orderModels).Error; err != nil {
			return err
		}
		var obligationModels []models.SupplierObligationModel
		if err := tx.Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&obligationModels).Error; err != nil {
			return err
		}
		var entryModels []models.LedgerEntryModel
		if err := tx.Where("tenant_id = ?", tenantID).Order("date DESC, created_at DESC").Find(&entryModels).Error; err != nil {
			return err
		}
		snap = finance.Snapshot{
			Orders:      workOrdersToDomain(orderModels),
			Obligations: obligationsToDomain(obligationModels),
			Entries:     entriesToDomain(entryModels),
		}
		return nil
	}, readSnapshotOptions(r.db))
	if err != nil {
		return finance.Snapshot{}, err
	}
	return snap, nil
}
