package seed

import (
	"context"
	"testing"

	appfinance "github.com/carpentry/backend/internal/application/finance"
	appworkforce "github.com/carpentry/backend/internal/application/workforce"
	appworkorder "github.com/carpentry/backend/internal/application/workorder"
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/carpentry/backend/internal/infrastructure/persistence/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newServices(store *memory.Store) Services {
	return Services{
		Requests:  appworkorder.NewRequestService(store.Requests(), store.WorkOrders(), nil, nil),
		Lifecycle: appworkorder.NewLifecycleService(store.WorkOrders(), nil, nil),
		Payments:  appworkorder.NewPaymentService(store.WorkOrders(), nil, nil),
		Suppliers: appfinance.NewSupplierService(store.SupplierObligations(), nil, nil),
		Ledger:    appfinance.NewLedgerService(store.Ledger(), nil),
		Workforce: appworkforce.NewAttendanceService(store.Employees(), store.Attendance(), nil, nil),
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown key", "requestz: []", "field requestz not found"},
		{"missing client name", "requests:\n  - description: x", "client.name is required"},
		{"cancelled and quoted", "requests:\n  - client: {name: A}\n    cancel: true\n    quote: {client_code: X, total: '1'}", "both cancelled and quoted"},
		{"archive without installation", "requests:\n  - client: {name: A}\n    quote: {client_code: X, total: '1', archive: true}", "archives without installation"},
		{"installation without production", "requests:\n  - client: {name: A}\n    quote: {client_code: X, total: '1', installation: {date: '2026-01-01', team: T}}", "installs without production"},
		{"bad install date", "requests:\n  - client: {name: A}\n    quote: {client_code: X, total: '1', production: {}, installation: {date: 'soon', team: T}}", "installation.date"},
		{"duplicated dni", "employees:\n  - {name: A, dni: '1'}\n  - {name: B, dni: '1'}", "duplicated"},
		{"attendance for unknown employee", "attendance:\n  - {dni: '9', actions: [START]}", "unknown dni"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoader_DemoFixture(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	store := memory.NewStore()

	fixture, err := LoadFile("../../../fixtures/demo.yaml")
	require.NoError(t, err)

	sum, err := NewLoader(newServices(store), zaptest.NewLogger(t)).Apply(ctx, tenantID, fixture)
	require.NoError(t, err)
	assert.Equal(t, Summary{Requests: 5, WorkOrders: 2, Suppliers: 2, Ledger: 2, Employees: 2, Clockings: 1}, sum)

	orders, err := store.WorkOrders().FindAllForTenant(ctx, tenantID, workorder.ListFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	byCode := map[string]*workorder.WorkOrder{}
	for i := range orders {
		byCode[orders[i].ClientCode] = &orders[i]
	}
	assert.Equal(t, workorder.StatusInProduction, byCode["OBRA-101"].Status)
	assert.Equal(t, "Roble claro", byCode["OBRA-101"].Checklist.Specs.Color)
	assert.Equal(t, workorder.StatusArchived, byCode["OBRA-087"].Status)
	assert.True(t, byCode["OBRA-087"].Balance().IsZero())

	requests, err := store.Requests().FindAllForTenant(ctx, tenantID, shared.Filter{})
	require.NoError(t, err)
	statuses := map[workorder.RequestStatus]int{}
	for _, r := range requests {
		statuses[r.Status]++
	}
	assert.Equal(t, map[workorder.RequestStatus]int{
		workorder.RequestPending:   1,
		workorder.RequestInReview:  1,
		workorder.RequestCancelled: 1,
		workorder.RequestQuoted:    2,
	}, statuses)
}

func TestLoader_StopsAtFirstError(t *testing.T) {
	store := memory.NewStore()
	fixture, err := Parse([]byte("suppliers:\n  - {name: A, total: 'abc'}"))
	require.NoError(t, err)

	_, err = NewLoader(newServices(store), nil).Apply(context.Background(), uuid.New(), fixture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suppliers[0].total")
}
