package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workforce"
	"github.com/carpentry/backend/internal/interfaces/http/dto"
	"github.com/carpentry/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_Success(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", "")

	h.Success(c, map[string]string{"name": "Ana"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "Ana", resp.Data.(map[string]any)["name"])
}

func TestBaseHandler_SuccessList(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", "")

	h.SuccessList(c, []string{"a", "b"}, 2, dto.ListQuery{PageSize: 10})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Count)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.PageSize)
}

func TestBaseHandler_CreatedAndNoContent(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext(http.MethodPost, "/", "")
	h.Created(c, gin.H{"id": "1"})
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = newTestContext(http.MethodDelete, "/", "")
	h.NoContent(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandler_ErrorCarriesRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", "")
	c.Set(middleware.RequestIDKey, "req-42")

	h.NotFound(c, "Work order not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Work order not found", resp.Error.Message)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"task not found", shared.ErrTaskNotFound, http.StatusNotFound, dto.ErrCodeTaskNotFound},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"concurrency conflict", shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"invalid input", shared.ErrInvalidInput, http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"invalid transition", shared.ErrInvalidTransition, http.StatusUnprocessableEntity, dto.ErrCodeInvalidTransition},
		{"missing field", shared.ErrMissingRequiredField, http.StatusUnprocessableEntity, dto.ErrCodeMissingRequiredField},
		{"invalid percentage", shared.ErrInvalidPercentage, http.StatusUnprocessableEntity, dto.ErrCodeInvalidPercentage},
		{"invalid amount", shared.ErrInvalidAmount, http.StatusUnprocessableEntity, dto.ErrCodeInvalidAmount},
		{
			"no attendance record",
			shared.NewDomainError(workforce.CodeNoAttendanceRecord, "No record"),
			http.StatusUnprocessableEntity, dto.ErrCodeNoAttendanceRecord,
		},
		{
			"wrapped domain error",
			fmt.Errorf("save order: %w", shared.ErrConcurrencyConflict),
			http.StatusConflict, dto.ErrCodeConcurrencyConflict,
		},
		{"plain error", assert.AnError, http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(http.MethodGet, "/", "")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
		})
	}

	t.Run("internal errors hide the cause", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodGet, "/", "")

		h.HandleError(c, fmt.Errorf("dial tcp 10.0.0.1:5432: connection refused"))

		resp := decodeResponse(t, w)
		assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
		assert.Len(t, c.Errors, 1)
	})

	t.Run("nil is a no-op", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodGet, "/", "")
		h.HandleError(c, nil)
		assert.False(t, c.Writer.Written())
		assert.Empty(t, w.Body.String())
	})
}

func TestBaseHandler_BindJSON(t *testing.T) {
	require.NoError(t, middleware.SetupValidator())

	type payload struct {
		Name string `json:"name" binding:"required"`
	}

	t.Run("valid body", func(t *testing.T) {
		h := &BaseHandler{}
		c, _ := newTestContext(http.MethodPost, "/", `{"name":"Ana"}`)
		var p payload
		assert.True(t, h.BindJSON(c, &p))
		assert.Equal(t, "Ana", p.Name)
	})

	t.Run("missing field is a validation error", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodPost, "/", `{}`)
		var p payload
		assert.False(t, h.BindJSON(c, &p))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "name", resp.Error.Details[0].Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodPost, "/", `{"name":`)
		var p payload
		assert.False(t, h.BindJSON(c, &p))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong type", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodPost, "/", `{"name":12}`)
		var p payload
		assert.False(t, h.BindJSON(c, &p))
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	})
}

func TestBaseHandler_Scope(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()

	t.Run("resolves tenant and id", func(t *testing.T) {
		h := &BaseHandler{}
		c, _ := newTestContext(http.MethodGet, "/", "")
		c.Set(middleware.TenantIDKey, tenantID.String())
		c.Params = gin.Params{{Key: "id", Value: orderID.String()}}

		gotTenant, gotID, ok := h.scope(c)
		require.True(t, ok)
		assert.Equal(t, tenantID, gotTenant)
		assert.Equal(t, orderID, gotID)
	})

	t.Run("missing tenant", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodGet, "/", "")
		c.Params = gin.Params{{Key: "id", Value: orderID.String()}}

		_, _, ok := h.scope(c)
		assert.False(t, ok)
		assert.Equal(t, dto.ErrCodeInvalidTenant, decodeResponse(t, w).Error.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodGet, "/", "")
		c.Set(middleware.TenantIDKey, tenantID.String())
		c.Params = gin.Params{{Key: "id", Value: "OBRA-101"}}

		_, _, ok := h.scope(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
