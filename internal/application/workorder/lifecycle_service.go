package workorder

import (
	"context"
	"fmt"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LifecycleService drives work orders through production, installation and archive
type LifecycleService struct {
	*orderMutator
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(orderRepo workorder.WorkOrderRepository, locker shared.Locker, logger *zap.Logger) *LifecycleService {
	return &LifecycleService{orderMutator: newOrderMutator(orderRepo, locker, logger)}
}

// SetEventPublisher sets the event publisher for domain events
func (s *LifecycleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// GetByID returns a single work order
func (s *LifecycleService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*WorkOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

// List returns work orders, optionally narrowed to one status and a search term
func (s *LifecycleService) List(ctx context.Context, tenantID uuid.UUID, q ListWorkOrdersQuery) ([]WorkOrderResponse, error) {
	return s.list(ctx, tenantID, q, false)
}

// ListArchived returns finished orders matching the search on client name or code
func (s *LifecycleService) ListArchived(ctx context.Context, tenantID uuid.UUID, search string) ([]WorkOrderResponse, error) {
	return s.list(ctx, tenantID, ListWorkOrdersQuery{Status: workorder.StatusArchived.String(), Search: search}, true)
}

func (s *LifecycleService) list(ctx context.Context, tenantID uuid.UUID, q ListWorkOrdersQuery, nameOrCode bool) ([]WorkOrderResponse, error) {
	filter := workorder.ListFilter{Filter: shared.DefaultFilter(), NameOrCode: nameOrCode}
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	filter.Search = q.Search
	if q.Status != "" {
		status := workorder.Status(q.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown status %q", q.Status))
		}
		filter.Statuses = []workorder.Status{status}
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	return ToWorkOrderResponses(orders), nil
}

// BeginProduction moves a quoted order into production
func (s *LifecycleService) BeginProduction(ctx context.Context, tenantID, orderID uuid.UUID, in SpecsInput) (*WorkOrderResponse, error) {
	return s.run(ctx, tenantID, orderID, "begin_production", func(o *workorder.WorkOrder) error {
		return o.BeginProduction(in.ToSpecs())
	})
}

// UpdateSpecs replaces the production specs
func (s *LifecycleService) UpdateSpecs(ctx context.Context, tenantID, orderID uuid.UUID, in SpecsInput) (*WorkOrderResponse, error) {
	return s.run(ctx, tenantID, orderID, "update_specs", func(o *workorder.WorkOrder) error {
		return o.UpdateSpecs(in.ToSpecs())
	})
}

// SetProductionStatus changes the workshop sub-status
func (s *LifecycleService) SetProductionStatus(ctx context.Context, tenantID, orderID uuid.UUID, req ProductionStatusRequest) (*WorkOrderResponse, error) {
	return s.run(ctx, tenantID, orderID, "set_production_status", func(o *workorder.WorkOrder) error {
		return o.SetProductionStatus(workorder.ProductionStatus(req.Status))
	})
}

// ToggleTask flips a checklist task
func (s *LifecycleService) ToggleTask(ctx context.Context, tenantID, orderID uuid.UUID, taskID string) (*WorkOrderResponse, error) {
	return s.run(ctx, tenantID, orderID, "toggle_task", func(o *workorder.WorkOrder) error {
		return o.ToggleTask(taskID)
	})
}

// UpdateTaskNote edits a checklist task note
func (s *LifecycleService) UpdateTaskNote(ctx context.Context, tenantID, orderID uuid.UUID, taskID string, req TaskNoteRequest) (*WorkOrderResponse, error) {
	return s.run(ctx, tenantID, orderID, "update_task_note", func(o *workorder.WorkOrder) error {
		return o.UpdateTaskNote(taskID, req.Note)
	})
}

// AppendLog prepends a workshop note
func (s *LifecycleService) AppendLog(ctx context.Context, tenantID, orderID uuid.UUID, req AppendLogRequest) (*WorkOrderResponse, error) {
	return s.run(ctx, tenantID, orderID, "append_log", func(o *workorder.WorkOrder) error {
		_, err := o.AppendLog(req.Text, req.Author)
		return err
	})
}

// ScheduleInstallation moves a produced order to installation
func (s *LifecycleService) ScheduleInstallation(ctx context.Context, tenantID, orderID uuid.UUID, req ScheduleInstallationRequest) (*WorkOrderResponse, error) {
	date, err := parseDate(req.ScheduledDate)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Scheduled date must be YYYY-MM-DD")
	}
	return s.run(ctx, tenantID, orderID, "schedule_installation", func(o *workorder.WorkOrder) error {
		return o.ScheduleInstallation(date, req.TeamName)
	})
}

// UpdateInstallation edits the pending installation
func (s *LifecycleService) UpdateInstallation(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateInstallationRequest) (*WorkOrderResponse, error) {
	date, err := parseDate(req.ScheduledDate)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Scheduled date must be YYYY-MM-DD")
	}
	return s.run(ctx, tenantID, orderID, "update_installation", func(o *workorder.WorkOrder) error {
		return o.UpdateInstallation(date, req.TeamName, req.Notes)
	})
}

// Archive finishes an installed order
func (s *LifecycleService) Archive(ctx context.Context, tenantID, orderID uuid.UUID) (*WorkOrderResponse, error) {
	return s.run(ctx, tenantID, orderID, "archive", func(o *workorder.WorkOrder) error {
		return o.Archive()
	})
}

func (s *LifecycleService) run(ctx context.Context, tenantID, orderID uuid.UUID, op string, fn func(*workorder.WorkOrder) error) (*WorkOrderResponse, error) {
	order, err := s.mutate(ctx, tenantID, orderID, op, fn)
	if err != nil {
		return nil, err
	}
	resp := ToWorkOrderResponse(order)
	return &resp, nil
}
