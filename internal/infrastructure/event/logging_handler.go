package event

import (
	"context"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LoggingHandler writes one structured line per domain event
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a handler that logs every event it receives
func NewLoggingHandler(l *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: l}
}

// Handle logs the event with the request-scoped logger when one is in ctx
func (h *LoggingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	logger.FromContextOr(ctx, h.logger).Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("tenant_id", event.TenantID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes subscribes to every event
func (h *LoggingHandler) EventTypes() []string {
	return nil
}
