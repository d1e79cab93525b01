package persistence

import (
	"context"
	"testing"

	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOverviewRepository(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	tenantID := uuid.New()
	repo := NewGormOverviewRepository(db)

	seedQuotedOrder(t, db, tenantID, "Acme", "OBRA-001", 1000)
	inProd := seedQuotedOrder(t, db, tenantID, "Beta", "OBRA-002", 2500)
	require.NoError(t, inProd.BeginProduction(workorder.Specs{}))
	require.NoError(t, NewGormWorkOrderRepository(db).SaveWithLock(ctx, inProd))
	seedQuotedOrder(t, db, uuid.New(), "Other", "OBRA-003", 7000)

	open, err := workorder.NewRequest(tenantID, workorder.ClientContact{Name: "Gamma"}, "")
	require.NoError(t, err)
	require.NoError(t, NewGormRequestRepository(db).Save(ctx, open))

	stats, err := repo.WorkOrderStats(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Count(workorder.StatusQuoted))
	assert.Equal(t, int64(1), stats.Count(workorder.StatusInProduction))
	assert.Equal(t, int64(2), stats.Count(workorder.StatusQuoted, workorder.StatusInProduction, workorder.StatusArchived))
	assert.True(t, stats.BilledTotal.Equals(valueobject.NewMoneyFromInt(3500)))

	// two requests were consumed by quotes; only the new one is open
	n, err := repo.CountOpenRequests(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
