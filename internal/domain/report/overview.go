package report

import (
	"context"

	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
)

// WorkOrderStats aggregates work orders of a tenant
type WorkOrderStats struct {
	ByStatus    map[workorder.Status]int64
	BilledTotal valueobject.Money
}

// Count returns the number of orders in the given statuses
func (s WorkOrderStats) Count(statuses ...workorder.Status) int64 {
	var n int64
	for _, st := range statuses {
		n += s.ByStatus[st]
	}
	return n
}

// OverviewRepository answers the dashboard queries
type OverviewRepository interface {
	// WorkOrderStats counts orders per status and sums base totals
	WorkOrderStats(ctx context.Context, tenantID uuid.UUID) (WorkOrderStats, error)
	// CountOpenRequests counts requests that are pending or in review
	CountOpenRequests(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
