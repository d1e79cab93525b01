package seed

import (
	"context"
	"fmt"
	"time"

	appfinance "github.com/carpentry/backend/internal/application/finance"
	appworkforce "github.com/carpentry/backend/internal/application/workforce"
	appworkorder "github.com/carpentry/backend/internal/application/workorder"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Services are the application services a fixture is replayed through
type Services struct {
	Requests  *appworkorder.RequestService
	Lifecycle *appworkorder.LifecycleService
	Payments  *appworkorder.PaymentService
	Suppliers *appfinance.SupplierService
	Ledger    *appfinance.LedgerService
	Workforce *appworkforce.AttendanceService
}

// Summary counts what a run created
type Summary struct {
	Requests   int
	WorkOrders int
	Suppliers  int
	Ledger     int
	Employees  int
	Clockings  int
}

// Loader replays fixtures for one tenant
type Loader struct {
	svc    Services
	logger *zap.Logger
}

// NewLoader creates a Loader
func NewLoader(svc Services, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{svc: svc, logger: logger}
}

// Apply creates everything in f for tenantID and stops at the first error
func (l *Loader) Apply(ctx context.Context, tenantID uuid.UUID, f *Fixture) (Summary, error) {
	var sum Summary

	for i, r := range f.Requests {
		quoted, err := l.applyRequest(ctx, tenantID, r)
		if err != nil {
			return sum, fmt.Errorf("requests[%d]: %w", i, err)
		}
		sum.Requests++
		if quoted {
			sum.WorkOrders++
		}
	}

	for i, s := range f.Suppliers {
		req := appfinance.CreateSupplierObligationRequest{SupplierName: s.Name, Concept: s.Concept}
		var err error
		if req.TotalAmount, err = money(s.Total); err != nil {
			return sum, fmt.Errorf("suppliers[%d].total: %w", i, err)
		}
		if req.PaidAmount, err = money(s.Paid); err != nil {
			return sum, fmt.Errorf("suppliers[%d].paid: %w", i, err)
		}
		if s.DueDate != "" {
			due, err := time.Parse(dateLayout, s.DueDate)
			if err != nil {
				return sum, fmt.Errorf("suppliers[%d].due_date: %w", i, err)
			}
			req.DueDate = &due
		}
		if _, err := l.svc.Suppliers.Create(ctx, tenantID, req); err != nil {
			return sum, fmt.Errorf("suppliers[%d]: %w", i, err)
		}
		sum.Suppliers++
	}

	for i, e := range f.Ledger {
		req := appfinance.CreateLedgerEntryRequest{Description: e.Description, Category: e.Category, Direction: e.Direction}
		var err error
		if req.Amount, err = money(e.Amount); err != nil {
			return sum, fmt.Errorf("ledger[%d].amount: %w", i, err)
		}
		if e.Date != "" {
			if req.Date, err = time.Parse(dateLayout, e.Date); err != nil {
				return sum, fmt.Errorf("ledger[%d].date: %w", i, err)
			}
		}
		if _, err := l.svc.Ledger.Create(ctx, tenantID, req); err != nil {
			return sum, fmt.Errorf("ledger[%d]: %w", i, err)
		}
		sum.Ledger++
	}

	for i, e := range f.Employees {
		rate, err := money(e.HourlyRate)
		if err != nil {
			return sum, fmt.Errorf("employees[%d].hourly_rate: %w", i, err)
		}
		req := appworkforce.CreateEmployeeRequest{Name: e.Name, DNI: e.DNI, HourlyRate: rate, Role: e.Role}
		if _, err := l.svc.Workforce.CreateEmployee(ctx, tenantID, req); err != nil {
			return sum, fmt.Errorf("employees[%d]: %w", i, err)
		}
		sum.Employees++
	}

	for i, a := range f.Attendance {
		for _, action := range a.Actions {
			if _, err := l.svc.Workforce.Clock(ctx, tenantID, appworkforce.ClockRequest{DNI: a.DNI, Action: action}); err != nil {
				return sum, fmt.Errorf("attendance[%d] %s: %w", i, action, err)
			}
			sum.Clockings++
		}
	}

	l.logger.Info("fixture applied",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("requests", sum.Requests),
		zap.Int("work_orders", sum.WorkOrders),
		zap.Int("suppliers", sum.Suppliers),
		zap.Int("ledger_entries", sum.Ledger),
		zap.Int("employees", sum.Employees),
	)
	return sum, nil
}

func (l *Loader) applyRequest(ctx context.Context, tenantID uuid.UUID, r RequestFixture) (bool, error) {
	created, err := l.svc.Requests.Create(ctx, tenantID, appworkorder.CreateRequestRequest{
		ClientName:  r.Client.Name,
		Phone:       r.Client.Phone,
		Email:       r.Client.Email,
		Address:     r.Client.Address,
		Description: r.Description,
	})
	if err != nil {
		return false, err
	}
	if r.Review {
		if _, err := l.svc.Requests.Review(ctx, tenantID, created.ID); err != nil {
			return false, err
		}
	}
	if r.Cancel {
		_, err := l.svc.Requests.Cancel(ctx, tenantID, created.ID)
		return false, err
	}
	if r.Quote == nil {
		return false, nil
	}
	return true, l.applyQuote(ctx, tenantID, created.ID, r.Quote)
}

func (l *Loader) applyQuote(ctx context.Context, tenantID, requestID uuid.UUID, q *QuoteFixture) error {
	total, err := money(q.Total)
	if err != nil {
		return fmt.Errorf("quote.total: %w", err)
	}
	order, err := l.svc.Requests.Quote(ctx, tenantID, requestID, appworkorder.QuoteRequestRequest{ClientCode: q.ClientCode, Total: total})
	if err != nil {
		return err
	}
	id := order.ID

	if q.Discount != "" {
		pct, err := decimal.NewFromString(q.Discount)
		if err != nil {
			return fmt.Errorf("quote.discount: %w", err)
		}
		if _, err := l.svc.Payments.SetDiscount(ctx, tenantID, id, appworkorder.DiscountRequest{Percent: pct}); err != nil {
			return err
		}
	}
	if q.Deposit != "" {
		deposit, err := money(q.Deposit)
		if err != nil {
			return fmt.Errorf("quote.deposit: %w", err)
		}
		if _, err := l.svc.Payments.RecordDeposit(ctx, tenantID, id, appworkorder.AmountRequest{Amount: deposit}); err != nil {
			return err
		}
	}
	if q.Production != nil {
		specs := appworkorder.SpecsInput{Color: q.Production.Color, Line: q.Production.Line, Details: q.Production.Details}
		if _, err := l.svc.Lifecycle.BeginProduction(ctx, tenantID, id, specs); err != nil {
			return err
		}
	}
	if q.Installation != nil {
		req := appworkorder.ScheduleInstallationRequest{ScheduledDate: q.Installation.Date, TeamName: q.Installation.Team}
		if _, err := l.svc.Lifecycle.ScheduleInstallation(ctx, tenantID, id, req); err != nil {
			return err
		}
	}
	if q.FinalPaid {
		if _, err := l.svc.Payments.ToggleFinalPayment(ctx, tenantID, id); err != nil {
			return err
		}
	}
	if q.Archive {
		if _, err := l.svc.Lifecycle.Archive(ctx, tenantID, id); err != nil {
			return err
		}
	}
	return nil
}

func money(s string) (valueobject.Money, error) {
	if s == "" {
		return valueobject.Zero(), nil
	}
	return valueobject.NewMoneyFromString(s)
}
