package workorder

import (
	"context"
	"fmt"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/carpentry/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// orderMutator runs one mutation against a work order under the per-order
// lock, persists it with a version check and publishes its events.
type orderMutator struct {
	orderRepo workorder.WorkOrderRepository
	locker    shared.Locker
	publisher shared.EventPublisher
	logger    *zap.Logger
}

func newOrderMutator(repo workorder.WorkOrderRepository, locker shared.Locker, logger *zap.Logger) *orderMutator {
	if locker == nil {
		locker = shared.NoopLocker{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orderMutator{orderRepo: repo, locker: locker, logger: logger}
}

func lockKey(tenantID, orderID uuid.UUID) string {
	return fmt.Sprintf("workorder:%s:%s", tenantID, orderID)
}

func (m *orderMutator) mutate(ctx context.Context, tenantID, orderID uuid.UUID, op string, fn func(*workorder.WorkOrder) error) (_ *workorder.WorkOrder, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "work_order", op, attribute.String("work_order.id", orderID.String()))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	unlock, err := m.locker.Lock(ctx, lockKey(tenantID, orderID))
	if err != nil {
		return nil, fmt.Errorf("lock work order %s: %w", orderID, err)
	}
	defer unlock()

	order, err := m.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	from := order.Status

	if err := fn(order); err != nil {
		m.logger.Debug("work order operation rejected",
			zap.String("operation", op),
			zap.String("work_order_id", orderID.String()),
			zap.String("status", from.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if err := m.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	if from != order.Status {
		m.logger.Info("work order status changed",
			zap.String("operation", op),
			zap.String("work_order_id", orderID.String()),
			zap.String("from", from.String()),
			zap.String("to", order.Status.String()),
		)
	}

	m.publish(ctx, order)
	return order, nil
}

func (m *orderMutator) publish(ctx context.Context, agg shared.AggregateRoot) {
	if m.publisher == nil {
		agg.ClearDomainEvents()
		return
	}
	for _, event := range agg.GetDomainEvents() {
		if err := m.publisher.Publish(ctx, event); err != nil {
			m.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.String("aggregate_id", event.AggregateID().String()),
				zap.Error(err),
			)
		}
	}
	agg.ClearDomainEvents()
}
