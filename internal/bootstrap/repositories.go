// Package bootstrap assembles the repositories and application services
// shared by the server and the command line tools.
package bootstrap

import (
	"context"

	appfinance "github.com/carpentry/backend/internal/application/finance"
	appreport "github.com/carpentry/backend/internal/application/report"
	appworkforce "github.com/carpentry/backend/internal/application/workforce"
	appworkorder "github.com/carpentry/backend/internal/application/workorder"
	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/domain/report"
	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workforce"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/carpentry/backend/internal/infrastructure/logger"
	"github.com/carpentry/backend/internal/infrastructure/persistence"
	"github.com/carpentry/backend/internal/infrastructure/persistence/memory"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories is one complete set of persistence ports
type Repositories struct {
	Requests    workorder.RequestRepository
	WorkOrders  workorder.WorkOrderRepository
	Obligations finance.SupplierObligationRepository
	Ledger      finance.LedgerRepository
	Snapshots   finance.SnapshotReader
	Employees   workforce.EmployeeRepository
	Attendance  workforce.AttendanceRepository
	Overview    report.OverviewRepository

	// DB is nil for the memory driver
	DB *persistence.Database
}

// Ping reports whether the backing store is reachable
func (r *Repositories) Ping(ctx context.Context) error {
	if r.DB == nil {
		return nil
	}
	return r.DB.Ping(ctx)
}

// Close releases the database connection, if any
func (r *Repositories) Close() error {
	if r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// OpenRepositories returns in-memory repositories for the "memory" driver
// and GORM repositories otherwise. plugins are registered on the GORM
// connection.
func OpenRepositories(cfg *config.Config, log *zap.Logger, plugins ...gorm.Plugin) (*Repositories, error) {
	if cfg.Database.Driver == "" || cfg.Database.Driver == "memory" {
		store := memory.NewStore()
		return &Repositories{
			Requests:    store.Requests(),
			WorkOrders:  store.WorkOrders(),
			Obligations: store.SupplierObligations(),
			Ledger:      store.Ledger(),
			Snapshots:   store,
			Employees:   store.Employees(),
			Attendance:  store.Attendance(),
			Overview:    store,
		}, nil
	}

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), 0)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog), persistence.WithPlugins(plugins...))
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Requests:    persistence.NewGormRequestRepository(db.DB),
		WorkOrders:  persistence.NewGormWorkOrderRepository(db.DB),
		Obligations: persistence.NewGormSupplierObligationRepository(db.DB),
		Ledger:      persistence.NewGormLedgerRepository(db.DB),
		Snapshots:   persistence.NewGormSnapshotReader(db.DB),
		Employees:   persistence.NewGormEmployeeRepository(db.DB),
		Attendance:  persistence.NewGormAttendanceRepository(db.DB),
		Overview:    persistence.NewGormOverviewRepository(db.DB),
		DB:          db,
	}, nil
}

// Services holds every application service
type Services struct {
	Requests       *appworkorder.RequestService
	Lifecycle      *appworkorder.LifecycleService
	Payments       *appworkorder.PaymentService
	Documents      *appworkorder.DocumentService
	Suppliers      *appfinance.SupplierService
	Ledger         *appfinance.LedgerService
	Reconciliation *appfinance.ReconciliationService
	Workforce      *appworkforce.AttendanceService
	Overview       *appreport.OverviewService
}

// NewServices wires the application services over repos. storage may be
// nil when documents are not served (seeding).
func NewServices(repos *Repositories, locker shared.Locker, storage appworkorder.DocumentStorage, log *zap.Logger) *Services {
	lifecycle := appworkorder.NewLifecycleService(repos.WorkOrders, locker, log)
	svc := &Services{
		Requests:       appworkorder.NewRequestService(repos.Requests, repos.WorkOrders, locker, log),
		Lifecycle:      lifecycle,
		Payments:       appworkorder.NewPaymentService(repos.WorkOrders, locker, log),
		Suppliers:      appfinance.NewSupplierService(repos.Obligations, locker, log),
		Ledger:         appfinance.NewLedgerService(repos.Ledger, log),
		Reconciliation: appfinance.NewReconciliationService(repos.Snapshots),
		Workforce:      appworkforce.NewAttendanceService(repos.Employees, repos.Attendance, locker, log),
		Overview:       appreport.NewOverviewService(repos.Overview, lifecycle),
	}
	if storage != nil {
		svc.Documents = appworkorder.NewDocumentService(repos.WorkOrders, storage, locker, log)
	}
	return svc
}

// SetEventPublisher attaches publisher to every service that emits events
func (s *Services) SetEventPublisher(publisher shared.EventPublisher) {
	s.Requests.SetEventPublisher(publisher)
	s.Lifecycle.SetEventPublisher(publisher)
	s.Payments.SetEventPublisher(publisher)
	if s.Documents != nil {
		s.Documents.SetEventPublisher(publisher)
	}
	s.Suppliers.SetEventPublisher(publisher)
}
