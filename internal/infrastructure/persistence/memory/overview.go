package memory

import (
	"context"

	"github.com/carpentry/backend/internal/domain/report"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
)

// WorkOrderStats counts orders per status and sums their base totals
func (s *Store) WorkOrderStats(_ context.Context, tenantID uuid.UUID) (report.WorkOrderStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := report.WorkOrderStats{
		ByStatus:    make(map[workorder.Status]int64),
		BilledTotal: valueobject.Zero(),
	}
	for k, o := range s.orders {
		if k.tenant != tenantID {
			continue
		}
		stats.ByStatus[o.Status]++
		stats.BilledTotal = stats.BilledTotal.Add(o.BaseTotal)
	}
	return stats, nil
}

// CountOpenRequests counts requests still waiting for a quote
func (s *Store) CountOpenRequests(_ context.Context, tenantID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for k, r := range s.requests {
		if k.tenant == tenantID && (r.Status == workorder.RequestPending || r.Status == workorder.RequestInReview) {
			n++
		}
	}
	return n, nil
}
