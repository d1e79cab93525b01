package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, *in.Key)
	out, _ := args.Get(0).(*s3.HeadObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, *in.Bucket)
	out, _ := args.Get(0).(*s3.HeadBucketOutput)
	return out, args.Error(1)
}

func (m *mockS3) CreateBucket(ctx context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	args := m.Called(ctx, *in.Bucket)
	out, _ := args.Get(0).(*s3.CreateBucketOutput)
	return out, args.Error(1)
}

type fakePresigner struct{}

func (fakePresigner) PresignPutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://bucket.s3/" + *in.Key + "?X-Amz-Signature=put", Method: http.MethodPut}, nil
}

func (fakePresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://bucket.s3/" + *in.Key + "?X-Amz-Signature=get", Method: http.MethodGet}, nil
}

func TestS3DocumentStorage_ObjectExists(t *testing.T) {
	ctx := context.Background()
	api := new(mockS3)
	s := newS3DocumentStorage(api, fakePresigner{}, "docs", zap.NewNop())

	api.On("HeadObject", ctx, "t/o/quote/present.pdf").Return(&s3.HeadObjectOutput{}, nil)
	api.On("HeadObject", ctx, "t/o/quote/missing.pdf").Return(nil, &types.NotFound{})
	api.On("HeadObject", ctx, "t/o/quote/denied.pdf").Return(nil, errors.New("access denied"))

	ok, err := s.ObjectExists(ctx, "t/o/quote/present.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ObjectExists(ctx, "t/o/quote/missing.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.ObjectExists(ctx, "t/o/quote/denied.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")

	_, err = s.ObjectExists(ctx, "")
	assert.ErrorIs(t, err, errKeyRequired)
	api.AssertExpectations(t)
}

func TestS3DocumentStorage_Presign(t *testing.T) {
	ctx := context.Background()
	s := newS3DocumentStorage(new(mockS3), fakePresigner{}, "docs", zap.NewNop())

	before := time.Now()
	upload, expires, err := s.GenerateUploadURL(ctx, "t/o/quote/a.pdf", "application/pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, upload, "t/o/quote/a.pdf")
	assert.WithinDuration(t, before.Add(15*time.Minute), expires, time.Second)

	download, _, err := s.GenerateDownloadURL(ctx, "t/o/quote/a.pdf", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, download, "Signature=get")
}

func TestS3DocumentStorage_EnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bucket", func(t *testing.T) {
		api := new(mockS3)
		api.On("HeadBucket", ctx, "docs").Return(&s3.HeadBucketOutput{}, nil)
		require.NoError(t, newS3DocumentStorage(api, fakePresigner{}, "docs", zap.NewNop()).EnsureBucket(ctx))
		api.AssertNotCalled(t, "CreateBucket", mock.Anything, mock.Anything)
	})

	t.Run("missing bucket is created", func(t *testing.T) {
		api := new(mockS3)
		api.On("HeadBucket", ctx, "docs").Return(nil, &types.NotFound{})
		api.On("CreateBucket", ctx, "docs").Return(&s3.CreateBucketOutput{}, nil)
		require.NoError(t, newS3DocumentStorage(api, fakePresigner{}, "docs", zap.NewNop()).EnsureBucket(ctx))
		api.AssertExpectations(t)
	})
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000", true))
	assert.Equal(t, "http://already:1", endpointURL("http://already:1", true))
}

func TestStubDocumentStorage(t *testing.T) {
	ctx := context.Background()
	s := NewStubDocumentStorage("https://files.test")

	u, expires, err := s.GenerateUploadURL(ctx, "t/o/quote/a.pdf", "application/pdf", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "https://files.test/upload/t/o/quote/a.pdf?expires="))
	assert.True(t, expires.After(time.Now()))

	ok, err := s.ObjectExists(ctx, "anything")
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = s.GenerateDownloadURL(ctx, "", time.Minute)
	assert.ErrorIs(t, err, errKeyRequired)
}

// newMinioTestServer answers the handful of S3 calls the MinIO client makes
func newMinioTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead && (r.URL.Path == "/docs/" || r.URL.Path == "/docs"):
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodHead && r.URL.Path == "/docs/present.pdf":
			w.Header().Set("Content-Length", "3")
			w.Header().Set("ETag", `"abc"`)
			w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
			w.Header().Set("Content-Type", "application/pdf")
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusNotImplemented)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMinioDocumentStorage(t *testing.T) {
	ctx := context.Background()
	srv := newMinioTestServer(t)

	s, err := NewMinioDocumentStorage(ctx, &config.StorageConfig{
		Driver:    "minio",
		Bucket:    "docs",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "minio",
		SecretKey: "minio123",
	}, zap.NewNop())
	require.NoError(t, err)

	ok, err := s.ObjectExists(ctx, "present.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ObjectExists(ctx, "missing.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	u, _, err := s.GenerateUploadURL(ctx, "t/o/quote/a.pdf", "application/pdf", 10*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, u, "/docs/t/o/quote/a.pdf")
	assert.Contains(t, u, "X-Amz-Signature=")
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, &config.StorageConfig{Driver: "stub"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &StubDocumentStorage{}, s)

	_, err = New(ctx, &config.StorageConfig{Driver: "gcs"}, zap.NewNop())
	assert.Error(t, err)

	_, err = New(ctx, &config.StorageConfig{Driver: "s3"}, zap.NewNop())
	assert.Error(t, err)
}
