package archive

import (
	"context"
	"fmt"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workorder"
	"go.uber.org/zap"
)

// Writer stores archive records
type Writer interface {
	Put(ctx context.Context, rec Record) error
}

// Projection is the event handler that copies an order into the archive
// store once it is archived.
type Projection struct {
	orders workorder.WorkOrderRepository
	writer Writer
	logger *zap.Logger
}

// NewProjection creates the archive projection
func NewProjection(orders workorder.WorkOrderRepository, writer Writer, logger *zap.Logger) *Projection {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projection{orders: orders, writer: writer, logger: logger}
}

// EventTypes implements shared.EventHandler
func (p *Projection) EventTypes() []string {
	return []string{workorder.EventTypeWorkOrderArchived}
}

// Handle implements shared.EventHandler. The event only names the order, so
// the full state is reloaded from the repository.
func (p *Projection) Handle(ctx context.Context, event shared.DomainEvent) error {
	archived, ok := event.(*workorder.WorkOrderArchivedEvent)
	if !ok {
		return nil
	}
	order, err := p.orders.FindByIDForTenant(ctx, archived.TenantID(), archived.WorkOrderID)
	if err != nil {
		return fmt.Errorf("load archived order %s: %w", archived.WorkOrderID, err)
	}
	if order.Status != workorder.StatusArchived {
		return fmt.Errorf("order %s is %s, not archived", order.ID, order.Status)
	}

	if err := p.writer.Put(ctx, NewRecord(order)); err != nil {
		return err
	}
	p.logger.Info("work order projected to archive",
		zap.String("work_order_id", order.ID.String()),
		zap.String("client_code", order.ClientCode),
	)
	return nil
}
