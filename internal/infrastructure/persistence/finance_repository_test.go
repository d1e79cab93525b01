package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newObligation(t *testing.T, tenantID uuid.UUID, supplier string, total, paid int64, due *time.Time) *finance.SupplierObligation {
	t.Helper()
	o, err := finance.NewSupplierObligation(tenantID, supplier, "Placas MDF",
		valueobject.NewMoneyFromInt(total), valueobject.NewMoneyFromInt(paid), due)
	require.NoError(t, err)
	return o
}

func TestGormSupplierObligationRepository(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormSupplierObligationRepository(db)
	tenantID := uuid.New()

	soon := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	undated := newObligation(t, tenantID, "Herrajes Norte", 500, 0, nil)
	second := newObligation(t, tenantID, "Maderera Sur", 1000, 200, &later)
	first := newObligation(t, tenantID, "Maderera Centro", 800, 0, &soon)
	for _, o := range []*finance.SupplierObligation{undated, second, first} {
		require.NoError(t, repo.Save(ctx, o))
	}

	t.Run("lists by due date with undated last", func(t *testing.T) {
		list, err := repo.FindAllForTenant(ctx, tenantID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, second.ID, list[1].ID)
		assert.Equal(t, undated.ID, list[2].ID)
	})

	t.Run("search on supplier name", func(t *testing.T) {
		list, err := repo.FindAllForTenant(ctx, tenantID, shared.Filter{Search: "maderera"})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("payment round trip", func(t *testing.T) {
		second.RecordPayment(valueobject.NewMoneyFromInt(5000))
		require.NoError(t, repo.Save(ctx, second))

		found, err := repo.FindByIDForTenant(ctx, tenantID, second.ID)
		require.NoError(t, err)
		assert.True(t, found.IsPaid())
		assert.True(t, found.PaidAmount.Equals(valueobject.NewMoneyFromInt(1000)))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteForTenant(ctx, tenantID, undated.ID))
		assert.ErrorIs(t, repo.DeleteForTenant(ctx, tenantID, undated.ID), shared.ErrNotFound)
		assert.ErrorIs(t, repo.DeleteForTenant(ctx, uuid.New(), first.ID), shared.ErrNotFound)
	})
}

func TestGormLedgerRepository(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormLedgerRepository(db)
	tenantID := uuid.New()

	income, err := finance.NewLedgerEntry(tenantID, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		"Venta de retazos", "Varios", valueobject.NewMoneyFromInt(300), finance.DirectionIncome)
	require.NoError(t, err)
	expense, err := finance.NewLedgerEntry(tenantID, time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		"Luz del taller", "Servicios", valueobject.NewMoneyFromInt(120), finance.DirectionExpense)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, income))
	require.NoError(t, repo.Create(ctx, expense))

	list, err := repo.FindAllForTenant(ctx, tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, expense.ID, list[0].ID)

	filter := shared.DefaultFilter()
	filter.Filters["direction"] = finance.DirectionIncome.String()
	incomes, err := repo.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "Venta de retazos", incomes[0].Description)

	byCategory, err := repo.FindAllForTenant(ctx, tenantID, shared.Filter{Search: "servicios"})
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	require.NoError(t, repo.DeleteForTenant(ctx, tenantID, income.ID))
	_, err = repo.FindByIDForTenant(ctx, tenantID, income.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSnapshotReader(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	tenantID := uuid.New()

	order := seedQuotedOrder(t, db, tenantID, "Acme", "OBRA-001", 1000)
	require.NoError(t, order.RecordDeposit(valueobject.NewMoneyFromInt(400)))
	require.NoError(t, NewGormWorkOrderRepository(db).SaveWithLock(ctx, order))
	seedQuotedOrder(t, db, uuid.New(), "Other", "OBRA-X", 9999)

	require.NoError(t, NewGormSupplierObligationRepository(db).Save(ctx, newObligation(t, tenantID, "Maderera", 500, 100, nil)))
	entry, err := finance.NewLedgerEntry(tenantID, time.Now(), "Alquiler", "Fijos", valueobject.NewMoneyFromInt(50), finance.DirectionExpense)
	require.NoError(t, err)
	require.NoError(t, NewGormLedgerRepository(db).Create(ctx, entry))

	snap, err := NewGormSnapshotReader(db).ReadSnapshot(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, snap.Orders, 1)
	require.Len(t, snap.Obligations, 1)
	require.Len(t, snap.Entries, 1)

	totals := finance.Reconcile(snap)
	assert.True(t, totals.ProjectIncome.Equals(valueobject.NewMoneyFromInt(400)))
	assert.True(t, totals.SupplierExpense.Equals(valueobject.NewMoneyFromInt(100)))
	assert.True(t, totals.OutstandingPayable.Equals(valueobject.NewMoneyFromInt(400)))
	assert.True(t, totals.NetBalance.Equals(valueobject.NewMoneyFromInt(250)))
}
