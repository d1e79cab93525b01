package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ReconciliationService derives the finance summary and the movement feed.
// Nothing is cached; each call reads a fresh snapshot.
type ReconciliationService struct {
	reader finance.SnapshotReader
	now    func() time.Time
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(reader finance.SnapshotReader) *ReconciliationService {
	return &ReconciliationService{reader: reader, now: time.Now}
}

// Summary returns the reconciled totals of a tenant
func (s *ReconciliationService) Summary(ctx context.Context, tenantID uuid.UUID) (*finance.Totals, error) {
	snapshot, err := s.snapshot(ctx, tenantID, "summary")
	if err != nil {
		return nil, err
	}
	totals := finance.Reconcile(snapshot)
	return &totals, nil
}

func (s *ReconciliationService) snapshot(ctx context.Context, tenantID uuid.UUID, method string) (finance.Snapshot, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", method)
	defer span.End()

	snapshot, err := s.reader.ReadSnapshot(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return finance.Snapshot{}, fmt.Errorf("read finance snapshot: %w", err)
	}
	span.SetAttributes(
		attribute.Int("reconciliation.orders", len(snapshot.Orders)),
		attribute.Int("reconciliation.obligations", len(snapshot.Obligations)),
		attribute.Int("reconciliation.entries", len(snapshot.Entries)),
	)
	return snapshot, nil
}

// FeedResponse is the movement feed with the totals it was built from
type FeedResponse struct {
	Totals finance.Totals    `json:"totals"`
	Rows   []finance.FeedRow `json:"rows"`
}

// Feed returns aggregate rows followed by manual entries, filtered by search
func (s *ReconciliationService) Feed(ctx context.Context, tenantID uuid.UUID, search string) (*FeedResponse, error) {
	snapshot, err := s.snapshot(ctx, tenantID, "feed")
	if err != nil {
		return nil, err
	}
	totals := finance.Reconcile(snapshot)
	return &FeedResponse{
		Totals: totals,
		Rows:   finance.Feed(totals, snapshot.Entries, s.now(), search),
	}, nil
}
