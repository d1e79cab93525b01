package workorder

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentStorage issues presigned URLs for work order documents
type DocumentStorage interface {
	// GenerateUploadURL returns a URL the client can PUT the file to
	GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// GenerateDownloadURL returns a URL the client can GET the file from
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	// ObjectExists reports whether the upload finished
	ObjectExists(ctx context.Context, key string) (bool, error)
}

const (
	// DefaultUploadExpiry is how long an upload URL stays valid
	DefaultUploadExpiry = 15 * time.Minute
	// DefaultDownloadExpiry is how long a download URL stays valid
	DefaultDownloadExpiry = time.Hour
)

// DocumentService handles the quote, materials and optimization documents.
// A document reference only lands on the order after its upload is
// confirmed present in storage.
type DocumentService struct {
	*orderMutator
	storage DocumentStorage
	now     func() time.Time
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(repo workorder.WorkOrderRepository, storage DocumentStorage, locker shared.Locker, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		orderMutator: newOrderMutator(repo, locker, logger),
		storage:      storage,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for the service
func (s *DocumentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// documentKey builds the storage key: tenant/order/kind/nanos-filename
func documentKey(tenantID, orderID uuid.UUID, kind workorder.DocumentKind, fileName string, at time.Time) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s/%s/%s/%d-%s", tenantID, orderID, strings.ToLower(string(kind)), at.UnixNano(), base)
}

// RequestUpload reserves a storage key and presigns an upload URL for it
func (s *DocumentService) RequestUpload(ctx context.Context, tenantID, orderID uuid.UUID, req UploadDocumentRequest) (*UploadDocumentResponse, error) {
	kind := workorder.DocumentKind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown document kind %q", req.Kind))
	}

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == workorder.StatusArchived {
		return nil, shared.NewDomainError(shared.CodeInvalidTransition, "Cannot attach documents to an archived work order")
	}

	key := documentKey(tenantID, orderID, kind, req.FileName, s.now())
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, DefaultUploadExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	s.logger.Debug("document upload requested",
		zap.String("work_order_id", orderID.String()),
		zap.String("kind", string(kind)),
		zap.String("key", key),
	)
	return &UploadDocumentResponse{Reference: key, UploadURL: url, ExpiresAt: expiresAt}, nil
}

// AttachDocument sets the document reference once the upload is complete
func (s *DocumentService) AttachDocument(ctx context.Context, tenantID, orderID uuid.UUID, req AttachDocumentRequest) (*WorkOrderResponse, error) {
	kind := workorder.DocumentKind(req.Kind)
	prefix := fmt.Sprintf("%s/%s/", tenantID, orderID)
	if !strings.HasPrefix(req.Reference, prefix) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Document reference does not belong to this work order")
	}

	exists, err := s.storage.ObjectExists(ctx, req.Reference)
	if err != nil {
		return nil, fmt.Errorf("check document upload: %w", err)
	}
	if !exists {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Document upload has not completed")
	}

	order, err := s.mutate(ctx, tenantID, orderID, "attach_document", func(o *workorder.WorkOrder) error {
		return o.AttachDocument(kind, workorder.Document{Reference: req.Reference, Name: req.Name})
	})
	if err != nil {
		return nil, err
	}
	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

// DownloadURL presigns a download link for an attached document
func (s *DocumentService) DownloadURL(ctx context.Context, tenantID, orderID uuid.UUID, kind workorder.DocumentKind) (*DownloadDocumentResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	doc := order.Document(kind)
	if doc == nil || !doc.IsSet() {
		return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Work order has no %s document", strings.ToLower(string(kind))))
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, doc.Reference, DefaultDownloadExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate download url: %w", err)
	}
	return &DownloadDocumentResponse{Document: *doc, URL: url, ExpiresAt: expiresAt}, nil
}
