package report

import (
	"context"
	"errors"
	"testing"

	"github.com/carpentry/backend/internal/domain/report"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOverviewRepository struct {
	mock.Mock
}

func (m *MockOverviewRepository) WorkOrderStats(ctx context.Context, tenantID uuid.UUID) (report.WorkOrderStats, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(report.WorkOrderStats), args.Error(1)
}

func (m *MockOverviewRepository) CountOpenRequests(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func TestOverviewService_Dashboard(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("combines counts", func(t *testing.T) {
		repo := new(MockOverviewRepository)
		svc := NewOverviewService(repo, nil)
		repo.On("WorkOrderStats", ctx, tenantID).Return(report.WorkOrderStats{
			ByStatus: map[workorder.Status]int64{
				workorder.StatusQuoted:         2,
				workorder.StatusInProduction:   3,
				workorder.StatusInInstallation: 1,
				workorder.StatusArchived:       7,
			},
			BilledTotal: valueobject.NewMoneyFromInt(1250000),
		}, nil)
		repo.On("CountOpenRequests", ctx, tenantID).Return(int64(4), nil)

		resp, err := svc.Dashboard(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.ActiveOrders)
		assert.Equal(t, int64(6), resp.PendingQuotes)
		assert.Equal(t, int64(7), resp.ArchivedOrders)
		assert.True(t, resp.BilledTotal.Equals(valueobject.NewMoneyFromInt(1250000)))
	})

	t.Run("empty tenant yields zeros", func(t *testing.T) {
		repo := new(MockOverviewRepository)
		svc := NewOverviewService(repo, nil)
		repo.On("WorkOrderStats", ctx, tenantID).Return(report.WorkOrderStats{BilledTotal: valueobject.Zero()}, nil)
		repo.On("CountOpenRequests", ctx, tenantID).Return(int64(0), nil)

		resp, err := svc.Dashboard(ctx, tenantID)
		require.NoError(t, err)
		assert.Zero(t, resp.ActiveOrders)
		assert.True(t, resp.BilledTotal.IsZero())
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		repo := new(MockOverviewRepository)
		svc := NewOverviewService(repo, nil)
		repo.On("WorkOrderStats", ctx, tenantID).Return(report.WorkOrderStats{}, errors.New("boom"))

		_, err := svc.Dashboard(ctx, tenantID)
		assert.ErrorContains(t, err, "work order stats: boom")
	})
}
