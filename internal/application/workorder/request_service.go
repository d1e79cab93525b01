package workorder

import (
	"context"
	"fmt"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestService handles client intake and quoting
type RequestService struct {
	requestRepo workorder.RequestRepository
	orderRepo   workorder.WorkOrderRepository
	locker      shared.Locker
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewRequestService creates a new RequestService
func NewRequestService(
	requestRepo workorder.RequestRepository,
	orderRepo workorder.WorkOrderRepository,
	locker shared.Locker,
	logger *zap.Logger,
) *RequestService {
	if locker == nil {
		locker = shared.NoopLocker{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		requestRepo: requestRepo,
		orderRepo:   orderRepo,
		locker:      locker,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *RequestService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create records a new client request
func (s *RequestService) Create(ctx context.Context, tenantID uuid.UUID, req CreateRequestRequest) (*RequestResponse, error) {
	r, err := workorder.NewRequest(tenantID, workorder.ClientContact{
		Name:    req.ClientName,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}, req.Description)
	if err != nil {
		return nil, err
	}
	r.SetCreatedBy(req.CreatedBy)
	for _, a := range req.Attachments {
		if err := r.AttachFile(workorder.Attachment{Name: a.Name, ContentType: a.ContentType, Reference: a.Reference}); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	s.publishAll(ctx, r)

	resp := ToRequestResponse(r)
	return &resp, nil
}

// GetByID returns a single request
func (s *RequestService) GetByID(ctx context.Context, tenantID, requestID uuid.UUID) (*RequestResponse, error) {
	r, err := s.requestRepo.FindByIDForTenant(ctx, tenantID, requestID)
	if err != nil {
		return nil, err
	}
	resp := ToRequestResponse(r)
	return &resp, nil
}

// List returns requests of a tenant
func (s *RequestService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]RequestResponse, error) {
	requests, err := s.requestRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]RequestResponse, len(requests))
	for i := range requests {
		out[i] = ToRequestResponse(&requests[i])
	}
	return out, nil
}

// Review marks a pending request as being reviewed
func (s *RequestService) Review(ctx context.Context, tenantID, requestID uuid.UUID) (*RequestResponse, error) {
	return s.transition(ctx, tenantID, requestID, (*workorder.Request).MarkInReview)
}

// Cancel discards an open request
func (s *RequestService) Cancel(ctx context.Context, tenantID, requestID uuid.UUID) (*RequestResponse, error) {
	return s.transition(ctx, tenantID, requestID, (*workorder.Request).Cancel)
}

// Quote consumes a request and creates the quoted work order.
// The request and the new order are stored together or not at all.
func (s *RequestService) Quote(ctx context.Context, tenantID, requestID uuid.UUID, req QuoteRequestRequest) (*WorkOrderResponse, error) {
	unlock, err := s.locker.Lock(ctx, requestLockKey(tenantID, requestID))
	if err != nil {
		return nil, fmt.Errorf("lock request %s: %w", requestID, err)
	}
	defer unlock()

	r, err := s.requestRepo.FindByIDForTenant(ctx, tenantID, requestID)
	if err != nil {
		return nil, err
	}

	var quoteDoc *workorder.Document
	if req.QuoteDocReference != "" {
		quoteDoc = &workorder.Document{Reference: req.QuoteDocReference, Name: req.QuoteDocName}
	}
	// Build the order before touching the request so a rejected quote leaves it open.
	order, err := workorder.NewWorkOrder(r, req.ClientCode, req.Total, quoteDoc)
	if err != nil {
		return nil, err
	}
	if err := r.MarkQuoted(); err != nil {
		return nil, err
	}
	if r.CreatedBy != nil {
		order.SetCreatedBy(*r.CreatedBy)
	}

	if err := s.orderRepo.CreateFromRequest(ctx, r, order); err != nil {
		return nil, err
	}

	s.logger.Info("request quoted",
		zap.String("request_id", requestID.String()),
		zap.String("work_order_id", order.ID.String()),
		zap.String("client_code", order.ClientCode),
		zap.String("total", order.BaseTotal.StringFixed(2)),
	)
	s.publishAll(ctx, r)
	s.publishAll(ctx, order)

	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

func (s *RequestService) transition(ctx context.Context, tenantID, requestID uuid.UUID, fn func(*workorder.Request) error) (*RequestResponse, error) {
	unlock, err := s.locker.Lock(ctx, requestLockKey(tenantID, requestID))
	if err != nil {
		return nil, fmt.Errorf("lock request %s: %w", requestID, err)
	}
	defer unlock()

	r, err := s.requestRepo.FindByIDForTenant(ctx, tenantID, requestID)
	if err != nil {
		return nil, err
	}
	if err := fn(r); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToRequestResponse(r)
	return &resp, nil
}

func (s *RequestService) publishAll(ctx context.Context, agg shared.AggregateRoot) {
	defer agg.ClearDomainEvents()
	if s.publisher == nil {
		return
	}
	for _, event := range agg.GetDomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
}

func requestLockKey(tenantID, requestID uuid.UUID) string {
	return fmt.Sprintf("request:%s:%s", tenantID, requestID)
}
