package persistence

import (
	"context"

	"github.com/carpentry/backend/internal/domain/report"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/carpentry/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOverviewRepository answers dashboard aggregates with GROUP BY queries
type GormOverviewRepository struct {
	db *gorm.DB
}

// NewGormOverviewRepository creates a new GormOverviewRepository
func NewGormOverviewRepository(db *gorm.DB) *GormOverviewRepository {
	return &GormOverviewRepository{db: db}
}

type statusCountRow struct {
	Status string
	Count  int64
	Total  decimal.Decimal
}

// WorkOrderStats counts orders per status and sums their base totals
func (r *GormOverviewRepository) WorkOrderStats(ctx context.Context, tenantID uuid.UUID) (report.WorkOrderStats, error) {
	var rows []statusCountRow
	if err := r.db.WithContext(ctx).Model(&models.WorkOrderModel{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(base_total), 0) AS total").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return report.WorkOrderStats{}, err
	}

	stats := report.WorkOrderStats{
		ByStatus:    make(map[workorder.Status]int64, len(rows)),
		BilledTotal: valueobject.Zero(),
	}
	for _, row := range rows {
		stats.ByStatus[workorder.Status(row.Status)] = row.Count
		stats.BilledTotal = stats.BilledTotal.Add(valueobject.NewMoney(row.Total))
	}
	return stats, nil
}

// CountOpenRequests counts requests still waiting for a quote
func (r *GormOverviewRepository) CountOpenRequests(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.RequestModel{}).
		Where("tenant_id = ? AND status IN ?", tenantID, []string{
			workorder.RequestPending.String(),
			workorder.RequestInReview.String(),
		}).
		Count(&n).Error
	return n, err
}
