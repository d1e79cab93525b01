// Package storage implements the document storage port on S3, MinIO or a
// local stub. Clients upload and download through presigned URLs; the API
// only ever checks that an object exists.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/carpentry/backend/internal/application/workorder"
	"github.com/carpentry/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var errKeyRequired = errors.New("storage key is required")

// New builds the document storage selected by cfg.Driver
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (workorder.DocumentStorage, error) {
	switch cfg.Driver {
	case "", "stub":
		return NewStubDocumentStorage(cfg.PublicURL), nil
	case "s3":
		return NewS3DocumentStorage(ctx, cfg, logger)
	case "minio":
		return NewMinioDocumentStorage(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
