package storage

import (
	"context"
	"net/url"
	"time"
)

// StubDocumentStorage issues fake URLs under a base URL and reports every
// key as present, so the upload-then-attach flow works without a bucket.
type StubDocumentStorage struct {
	baseURL string
}

// NewStubDocumentStorage creates a stub rooted at baseURL
func NewStubDocumentStorage(baseURL string) *StubDocumentStorage {
	if baseURL == "" {
		baseURL = "http://localhost:8080/files"
	}
	return &StubDocumentStorage{baseURL: baseURL}
}

// GenerateUploadURL returns a fake upload URL
func (s *StubDocumentStorage) GenerateUploadURL(_ context.Context, key, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return s.url("upload", key, expiresIn)
}

// GenerateDownloadURL returns a fake download URL
func (s *StubDocumentStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	return s.url("download", key, expiresIn)
}

// ObjectExists reports true for any non-empty key
func (s *StubDocumentStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errKeyRequired
	}
	return true, nil
}

func (s *StubDocumentStorage) url(action, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errKeyRequired
	}
	expiresAt := time.Now().Add(expiresIn)
	q := url.Values{"expires": {expiresAt.UTC().Format(time.RFC3339)}}
	return s.baseURL + "/" + action + "/" + key + "?" + q.Encode(), expiresAt, nil
}
