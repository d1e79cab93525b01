package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/carpentry/backend/internal/application/workorder"
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/carpentry/backend/internal/infrastructure/lock"
	"github.com/carpentry/backend/internal/infrastructure/persistence/memory"
	"github.com/carpentry/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpenRepositories_Memory(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "memory"}}

	repos, err := OpenRepositories(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Nil(t, repos.DB)
	assert.IsType(t, &memory.WorkOrderRepository{}, repos.WorkOrders)
	assert.NoError(t, repos.Ping(context.Background()))
	assert.NoError(t, repos.Close())
}

func TestOpenRepositories_SQLite(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "carpentry.db")},
		Log:      config.LogConfig{Level: "warn"},
	}
	log := zaptest.NewLogger(t)

	repos, err := OpenRepositories(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	require.NotNil(t, repos.DB)
	require.NoError(t, repos.Ping(context.Background()))

	svc := NewServices(repos, lock.NewLocalLocker(), storage.NewStubDocumentStorage("http://files.local"), log)
	require.NotNil(t, svc.Documents)

	ctx := context.Background()
	tenantID := uuid.New()
	req, err := svc.Requests.Create(ctx, tenantID, workorder.CreateRequestRequest{ClientName: "Ana"})
	require.NoError(t, err)

	list, err := svc.Requests.List(ctx, tenantID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, req.ID, list[0].ID)

	dash, err := svc.Overview.Dashboard(ctx, tenantID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dash.OpenRequests)
}

func TestNewServices_WithoutStorage(t *testing.T) {
	repos, err := OpenRepositories(&config.Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	svc := NewServices(repos, nil, nil, nil)
	assert.Nil(t, svc.Documents)
	assert.NotPanics(t, func() { svc.SetEventPublisher(nil) })
}

func TestNewLocker_Local(t *testing.T) {
	locker, client, err := NewLocker(context.Background(), &config.Config{Lock: config.LockConfig{Driver: "local"}})
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.IsType(t, &lock.LocalLocker{}, locker)
}
