package workorder

import (
	"errors"
	"testing"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T, client string) *Request {
	t.Helper()
	req, err := NewRequest(uuid.New(), ClientContact{
		Name:  client,
		Phone: "1144556677",
		Email: "compras@acme.com",
	}, "Ventanas corredizas para frente")
	require.NoError(t, err)
	return req
}

func newTestOrder(t *testing.T, total int64) *WorkOrder {
	t.Helper()
	order, err := NewWorkOrder(newTestRequest(t, "Acme"), "OBRA-001", valueobject.NewMoneyFromInt(total), nil)
	require.NoError(t, err)
	return order
}

func money(v int64) valueobject.Money {
	return valueobject.NewMoneyFromInt(v)
}

func assertMoney(t *testing.T, want int64, got valueobject.Money) {
	t.Helper()
	assert.True(t, got.Equals(money(want)), "expected %d, got %s", want, got)
}

func TestNewWorkOrder(t *testing.T) {
	t.Run("creates quoted order from request", func(t *testing.T) {
		req := newTestRequest(t, "Acme")
		doc := &Document{Reference: "quotes/obra-001.pdf", Name: "obra-001.pdf"}

		order, err := NewWorkOrder(req, " OBRA-001 ", money(1500000), doc)
		require.NoError(t, err)

		assert.Equal(t, StatusQuoted, order.Status)
		assert.Equal(t, "OBRA-001", order.ClientCode)
		assert.Equal(t, req.TenantID, order.TenantID)
		assert.Equal(t, req.ID, order.Request.RequestID)
		assert.Equal(t, "Acme", order.ClientName())
		assert.Nil(t, order.Checklist)
		assert.Equal(t, 1, order.Version)
		require.Len(t, order.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeWorkOrderQuoted, order.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects negative total", func(t *testing.T) {
		_, err := NewWorkOrder(newTestRequest(t, "Acme"), "OBRA-001", money(-1), nil)
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
	})

	t.Run("requires client code", func(t *testing.T) {
		_, err := NewWorkOrder(newTestRequest(t, "Acme"), "  ", money(10), nil)
		assert.ErrorIs(t, err, shared.ErrMissingRequiredField)
	})
}

func TestWorkOrder_Lifecycle(t *testing.T) {
	order := newTestOrder(t, 1500000)
	assertMoney(t, 1500000, order.Balance())

	require.NoError(t, order.BeginProduction(Specs{Color: "Negro", Line: "Modena"}))
	assert.Equal(t, StatusInProduction, order.Status)
	require.NotNil(t, order.Checklist)
	assert.Len(t, order.Checklist.Tasks, 4)
	assertMoney(t, 1500000, order.Balance())

	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, order.ScheduleInstallation(date, "Team A"))
	assert.Equal(t, StatusInInstallation, order.Status)
	assert.Equal(t, "Team A", order.Installation.TeamName)
	assert.False(t, order.Installation.IsCompleted)

	require.NoError(t, order.Archive())
	assert.Equal(t, StatusArchived, order.Status)
	assert.True(t, order.Installation.IsCompleted)
	assert.NotNil(t, order.ArchivedAt)
	assertMoney(t, 1500000, order.Balance())
	assert.Equal(t, 4, order.Version)
}

func TestWorkOrder_ForwardOnly(t *testing.T) {
	t.Run("archive on quoted order fails and leaves it unchanged", func(t *testing.T) {
		order := newTestOrder(t, 1000)
		version := order.Version

		err := order.Archive()
		assert.ErrorIs(t, err, shared.ErrInvalidTransition)
		assert.Equal(t, StatusQuoted, order.Status)
		assert.Nil(t, order.Installation)
		assert.Equal(t, version, order.Version)
	})

	t.Run("begin production twice fails", func(t *testing.T) {
		order := newTestOrder(t, 1000)
		require.NoError(t, order.BeginProduction(Specs{}))
		assert.ErrorIs(t, order.BeginProduction(Specs{}), shared.ErrInvalidTransition)
		assert.Equal(t, StatusInProduction, order.Status)
	})

	t.Run("schedule installation from quoted fails", func(t *testing.T) {
		order := newTestOrder(t, 1000)
		err := order.ScheduleInstallation(time.Now(), "Team A")
		assert.ErrorIs(t, err, shared.ErrInvalidTransition)
		assert.Equal(t, StatusQuoted, order.Status)
	})

	t.Run("status table", func(t *testing.T) {
		all := []Status{StatusQuoted, StatusInProduction, StatusInInstallation, StatusArchived}
		for i, from := range all {
			for j, to := range all {
				assert.Equal(t, j == i+1, from.CanTransitionTo(to), "%s -> %s", from, to)
			}
		}
	})
}

func TestWorkOrder_ScheduleInstallationRequiresFields(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		team string
	}{
		{"missing team", time.Now(), "  "},
		{"missing date", time.Time{}, "Team A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := newTestOrder(t, 1000)
			require.NoError(t, order.BeginProduction(Specs{}))
			version := order.Version

			err := order.ScheduleInstallation(tt.date, tt.team)
			assert.ErrorIs(t, err, shared.ErrMissingRequiredField)
			assert.Equal(t, StatusInProduction, order.Status)
			assert.Nil(t, order.Installation)
			assert.Equal(t, version, order.Version)
		})
	}
}

func TestWorkOrder_Checklist(t *testing.T) {
	t.Run("canonical tasks start pending", func(t *testing.T) {
		c := NewChecklist(Specs{})
		ids := make([]string, 0, len(c.Tasks))
		for _, task := range c.Tasks {
			ids = append(ids, task.ID)
			assert.False(t, task.IsCompleted)
		}
		assert.Equal(t, []string{TaskMaterials, TaskGlass, TaskAluminum, TaskInstallation}, ids)
		assert.Equal(t, ProductionNotStarted, c.ProductionStatus)
	})

	t.Run("toggle twice restores state", func(t *testing.T) {
		order := newTestOrder(t, 1000)
		require.NoError(t, order.BeginProduction(Specs{}))

		require.NoError(t, order.ToggleTask(TaskGlass))
		task, _ := order.Checklist.Task(TaskGlass)
		assert.True(t, task.IsCompleted)
		assert.Equal(t, 1, order.Checklist.CompletedCount())

		require.NoError(t, order.ToggleTask(TaskGlass))
		task, _ = order.Checklist.Task(TaskGlass)
		assert.False(t, task.IsCompleted)
	})

	t.Run("unknown task", func(t *testing.T) {
		order := newTestOrder(t, 1000)
		assert.ErrorIs(t, order.ToggleTask(TaskGlass), shared.ErrTaskNotFound)

		require.NoError(t, order.BeginProduction(Specs{}))
		version := order.Version
		assert.ErrorIs(t, order.ToggleTask("task_paint"), shared.ErrTaskNotFound)
		assert.ErrorIs(t, order.UpdateTaskNote("task_paint", "x"), shared.ErrTaskNotFound)
		assert.Equal(t, version, order.Version)
	})

	t.Run("task note", func(t *testing.T) {
		order := newTestOrder(t, 1000)
		require.NoError(t, order.BeginProduction(Specs{}))
		require.NoError(t, order.UpdateTaskNote(TaskAluminum, "Falta perfil 20x20"))
		task, _ := order.Checklist.Task(TaskAluminum)
		assert.Equal(t, "Falta perfil 20x20", task.Note)
	})

	t.Run("archived checklist is frozen", func(t *testing.T) {
		order := newTestOrder(t, 1000)
		require.NoError(t, order.BeginProduction(Specs{}))
		require.NoError(t, order.ScheduleInstallation(time.Now(), "Team A"))
		require.NoError(t, order.Archive())

		assert.ErrorIs(t, order.ToggleTask(TaskGlass), shared.ErrInvalidTransition)
		_, err := order.AppendLog("late note", "")
		assert.ErrorIs(t, err, shared.ErrInvalidTransition)
	})
}

func TestWorkOrder_AppendLog(t *testing.T) {
	order := newTestOrder(t, 1000)
	version := order.Version
	_, err := order.AppendLog("Medidas tomadas", "")
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
	assert.Equal(t, version, order.Version)

	require.NoError(t, order.BeginProduction(Specs{}))

	first, err := order.AppendLog("Cortados los perfiles", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultLogAuthor, first.Author)

	second, err := order.AppendLog("Llegaron los vidrios", "Juan")
	require.NoError(t, err)

	require.Len(t, order.Checklist.Logs, 2)
	assert.Equal(t, second.ID, order.Checklist.Logs[0].ID)
	assert.Equal(t, first.ID, order.Checklist.Logs[1].ID)
	assert.False(t, order.Checklist.Logs[0].Date.Before(order.Checklist.Logs[1].Date))

	_, err = order.AppendLog("   ", "Juan")
	assert.ErrorIs(t, err, shared.ErrMissingRequiredField)
	assert.Len(t, order.Checklist.Logs, 2)
}

func TestWorkOrder_ProductionStatusAndInstallationEdits(t *testing.T) {
	order := newTestOrder(t, 1000)
	assert.ErrorIs(t, order.SetProductionStatus(ProductionInFabrication), shared.ErrInvalidTransition)

	require.NoError(t, order.BeginProduction(Specs{}))
	require.NoError(t, order.SetProductionStatus(ProductionInFabrication))
	assert.Equal(t, ProductionInFabrication, order.Checklist.ProductionStatus)
	assert.ErrorIs(t, order.SetProductionStatus("PAINTED"), shared.ErrInvalidInput)

	assert.ErrorIs(t, order.UpdateInstallation(time.Now(), "Team B", ""), shared.ErrInvalidTransition)

	require.NoError(t, order.ScheduleInstallation(time.Now(), "Team A"))
	newDate := time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, order.UpdateInstallation(newDate, "Team B", "Llevar escalera"))
	assert.Equal(t, "Team B", order.Installation.TeamName)
	assert.Equal(t, newDate, order.Installation.ScheduledDate)
	assert.ErrorIs(t, order.UpdateInstallation(newDate, "", ""), shared.ErrMissingRequiredField)
	assert.Equal(t, "Team B", order.Installation.TeamName)
}

func TestWorkOrder_PaymentMath(t *testing.T) {
	order := newTestOrder(t, 100000)

	require.NoError(t, order.SetDiscount(decimal.NewFromInt(10)))
	assertMoney(t, 90000, order.EffectiveTotal())

	require.NoError(t, order.RecordDeposit(money(30000)))
	assert.NotNil(t, order.Payment.DepositDate)
	assertMoney(t, 60000, order.Balance())

	require.NoError(t, order.ToggleFinalPayment())
	assert.True(t, order.Payment.FinalPaid)
	assert.NotNil(t, order.Payment.FinalPaymentDate)
	assertMoney(t, 0, order.Balance())

	require.NoError(t, order.ToggleFinalPayment())
	assert.False(t, order.Payment.FinalPaid)
	assert.Nil(t, order.Payment.FinalPaymentDate)
	assertMoney(t, 60000, order.Balance())
}

func TestWorkOrder_SetDiscountRange(t *testing.T) {
	for _, p := range []int64{-1, 101, 250} {
		order := newTestOrder(t, 100000)
		err := order.SetDiscount(decimal.NewFromInt(p))
		assert.ErrorIs(t, err, shared.ErrInvalidPercentage)
		assert.True(t, order.Payment.DiscountPercent.IsZero())
	}
	order := newTestOrder(t, 100000)
	require.NoError(t, order.SetDiscount(decimal.NewFromInt(100)))
	assertMoney(t, 0, order.EffectiveTotal())
}

func TestWorkOrder_BalanceNeverNegative(t *testing.T) {
	deposits := []int64{0, 50000, 90000, 90001, 1000000}
	for _, d := range deposits {
		order := newTestOrder(t, 100000)
		require.NoError(t, order.SetDiscount(decimal.NewFromInt(10)))
		require.NoError(t, order.RecordDeposit(money(d)))
		assert.False(t, order.Balance().IsNegative(), "deposit %d", d)
	}

	order := newTestOrder(t, 100000)
	assert.ErrorIs(t, order.RecordDeposit(money(-5)), shared.ErrInvalidAmount)
	assert.Nil(t, order.Payment.DepositDate)
}

func TestWorkOrder_PaymentsRejectedAfterArchive(t *testing.T) {
	order := newTestOrder(t, 1000)
	require.NoError(t, order.RecordDeposit(money(400)))
	require.NoError(t, order.BeginProduction(Specs{}))
	require.NoError(t, order.ScheduleInstallation(time.Now(), "Team A"))
	require.NoError(t, order.Archive())
	order.ClearDomainEvents()
	version := order.Version

	assert.ErrorIs(t, order.SetDiscount(decimal.NewFromInt(50)), shared.ErrInvalidTransition)
	assert.ErrorIs(t, order.RecordDeposit(money(999)), shared.ErrInvalidTransition)
	assert.ErrorIs(t, order.ToggleFinalPayment(), shared.ErrInvalidTransition)
	assert.ErrorIs(t, order.CorrectTotal(money(2000)), shared.ErrInvalidTransition)

	assert.Equal(t, version, order.Version)
	assert.Empty(t, order.GetDomainEvents())
	assert.True(t, order.Payment.DiscountPercent.IsZero())
	assertMoney(t, 400, order.Payment.Deposit)
	assert.False(t, order.Payment.FinalPaid)
	assertMoney(t, 1000, order.BaseTotal)
	assertMoney(t, 600, order.Balance())
}

func TestWorkOrder_CorrectTotal(t *testing.T) {
	order := newTestOrder(t, 1000)
	require.NoError(t, order.CorrectTotal(money(1200)))
	assertMoney(t, 1200, order.BaseTotal)

	err := order.CorrectTotal(money(-1))
	assert.True(t, errors.Is(err, shared.ErrInvalidAmount))
	assertMoney(t, 1200, order.BaseTotal)
}

func TestWorkOrder_MatchesSearch(t *testing.T) {
	order := newTestOrder(t, 1000)
	assert.True(t, order.MatchesSearch(""))
	assert.True(t, order.MatchesSearch("acme"))
	assert.True(t, order.MatchesSearch("obra-001"))
	assert.True(t, order.MatchesSearch("COMPRAS@"))
	assert.True(t, order.MatchesSearch("4455"))
	assert.False(t, order.MatchesSearch("globex"))

	assert.True(t, order.MatchesNameOrCode(""))
	assert.True(t, order.MatchesNameOrCode("ACME"))
	assert.True(t, order.MatchesNameOrCode("obra-001"))
	assert.False(t, order.MatchesNameOrCode("compras@"))
	assert.False(t, order.MatchesNameOrCode("4455"))
}

func TestWorkOrder_AttachDocument(t *testing.T) {
	order := newTestOrder(t, 1000)
	doc := Document{Reference: "orders/x/materials.pdf", Name: "materiales.pdf"}

	require.NoError(t, order.AttachDocument(DocumentQuote, Document{Reference: "q.pdf", Name: "q.pdf"}))
	assert.Equal(t, "q.pdf", order.Document(DocumentQuote).Reference)

	assert.ErrorIs(t, order.AttachDocument(DocumentMaterials, doc), shared.ErrInvalidTransition)
	assert.Nil(t, order.Document(DocumentMaterials))

	require.NoError(t, order.BeginProduction(Specs{}))
	require.NoError(t, order.AttachDocument(DocumentMaterials, doc))
	assert.Equal(t, doc, *order.Document(DocumentMaterials))
	assert.Nil(t, order.Document(DocumentOptimization))

	assert.ErrorIs(t, order.AttachDocument("INVOICE", doc), shared.ErrInvalidInput)
	assert.ErrorIs(t, order.AttachDocument(DocumentOptimization, Document{}), shared.ErrMissingRequiredField)
}
