package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newSQLiteDB opens a migrated in-memory database
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	d, err := NewDatabase(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d.DB
}

// newMockDB creates a postgres-dialect GORM DB over sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

func seedQuotedOrder(t *testing.T, db *gorm.DB, tenantID uuid.UUID, client, code string, total int64) *workorder.WorkOrder {
	t.Helper()
	ctx := context.Background()
	req, err := workorder.NewRequest(tenantID, workorder.ClientContact{Name: client, Email: "obra@" + code + ".com"}, "Placard a medida")
	require.NoError(t, err)
	require.NoError(t, NewGormRequestRepository(db).Save(ctx, req))

	order, err := workorder.NewWorkOrder(req, code, valueobject.NewMoneyFromInt(total), nil)
	require.NoError(t, err)
	require.NoError(t, req.MarkQuoted())
	require.NoError(t, NewGormWorkOrderRepository(db).CreateFromRequest(ctx, req, order))
	return order
}
