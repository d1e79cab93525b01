package report

import (
	"context"
	"fmt"

	appworkorder "github.com/carpentry/backend/internal/application/workorder"
	"github.com/carpentry/backend/internal/domain/report"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
)

// OverviewService provides the dashboard and the cross-stage searches
type OverviewService struct {
	overviewRepo report.OverviewRepository
	lifecycle    *appworkorder.LifecycleService
}

// NewOverviewService creates a new OverviewService
func NewOverviewService(overviewRepo report.OverviewRepository, lifecycle *appworkorder.LifecycleService) *OverviewService {
	return &OverviewService{overviewRepo: overviewRepo, lifecycle: lifecycle}
}

// DashboardResponse is the landing page summary
type DashboardResponse struct {
	ActiveOrders   int64             `json:"active_orders"`
	InProduction   int64             `json:"in_production"`
	InInstallation int64             `json:"in_installation"`
	PendingQuotes  int64             `json:"pending_quotes"`
	OpenRequests   int64             `json:"open_requests"`
	QuotedOrders   int64             `json:"quoted_orders"`
	ArchivedOrders int64             `json:"archived_orders"`
	BilledTotal    valueobject.Money `json:"billed_total"`
}

// Dashboard counts orders per stage and sums what has been billed
func (s *OverviewService) Dashboard(ctx context.Context, tenantID uuid.UUID) (*DashboardResponse, error) {
	stats, err := s.overviewRepo.WorkOrderStats(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("work order stats: %w", err)
	}
	openRequests, err := s.overviewRepo.CountOpenRequests(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("count open requests: %w", err)
	}

	quoted := stats.Count(workorder.StatusQuoted)
	return &DashboardResponse{
		ActiveOrders:   stats.Count(workorder.StatusInProduction, workorder.StatusInInstallation),
		InProduction:   stats.Count(workorder.StatusInProduction),
		InInstallation: stats.Count(workorder.StatusInInstallation),
		PendingQuotes:  openRequests + quoted,
		OpenRequests:   openRequests,
		QuotedOrders:   quoted,
		ArchivedOrders: stats.Count(workorder.StatusArchived),
		BilledTotal:    stats.BilledTotal,
	}, nil
}

// SearchArchived finds finished orders by client name or code
func (s *OverviewService) SearchArchived(ctx context.Context, tenantID uuid.UUID, search string) ([]appworkorder.WorkOrderResponse, error) {
	return s.lifecycle.ListArchived(ctx, tenantID, search)
}

// SearchQuoted finds quoted orders by client name, email, code or phone
func (s *OverviewService) SearchQuoted(ctx context.Context, tenantID uuid.UUID, search string) ([]appworkorder.WorkOrderResponse, error) {
	return s.lifecycle.List(ctx, tenantID, appworkorder.ListWorkOrdersQuery{
		Status: workorder.StatusQuoted.String(),
		Search: search,
	})
}
