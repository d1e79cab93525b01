package finance

import (
	"context"
	"testing"
	"time"

	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("books entry with reference", func(t *testing.T) {
		repo := new(MockLedgerRepository)
		svc := NewLedgerService(repo, nil)
		ref := uuid.New()
		repo.On("Create", ctx, mock.MatchedBy(func(e *finance.LedgerEntry) bool {
			return e.TenantID == tenantID && e.ReferenceID != nil && *e.ReferenceID == ref
		})).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateLedgerEntryRequest{
			Date:        time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			Description: "Alquiler taller",
			Category:    "Gastos fijos",
			Amount:      valueobject.NewMoneyFromInt(20000),
			Direction:   "EXPENSE",
			ReferenceID: &ref,
		})
		require.NoError(t, err)
		assert.Equal(t, "EXPENSE", resp.Direction)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non positive amount", func(t *testing.T) {
		repo := new(MockLedgerRepository)
		svc := NewLedgerService(repo, nil)

		_, err := svc.Create(ctx, tenantID, CreateLedgerEntryRequest{
			Description: "Nada",
			Amount:      valueobject.Zero(),
			Direction:   "INCOME",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLedgerService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockLedgerRepository)
	svc := NewLedgerService(repo, nil)

	entry, err := finance.NewLedgerEntry(tenantID, time.Now(), "Venta retazos", "", valueobject.NewMoneyFromInt(5000), finance.DirectionIncome)
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	repo.On("FindAllForTenant", ctx, tenantID, filter).Return([]finance.LedgerEntry{*entry}, nil)
	repo.On("DeleteForTenant", ctx, tenantID, entry.ID).Return(nil)

	list, err := svc.List(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Venta retazos", list[0].Description)

	require.NoError(t, svc.Delete(ctx, tenantID, entry.ID))
}
