package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentInput struct {
	Email  string            `json:"email" binding:"required,email"`
	Amount valueobject.Money `json:"amount" binding:"money_non_negative"`
	Note   string            `json:"note" binding:"max=5"`
}

func validationRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, SetupValidator())

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req paymentInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(req.Amount))
	})
	return router
}

func postJSON(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestValidation_FieldErrors(t *testing.T) {
	w := postJSON(validationRouter(t), `{"email": "invalid", "amount": 10, "note": "too long"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "Invalid email format", fields["email"])
	assert.Equal(t, "Must be at most 5 characters", fields["note"])
	assert.NotContains(t, fields, "amount")
}

func TestValidation_MoneyNonNegative(t *testing.T) {
	router := validationRouter(t)

	tests := []struct {
		name   string
		amount string
		status int
	}{
		{"positive", `1500.50`, http.StatusOK},
		{"zero", `0`, http.StatusOK},
		{"string amount", `"250"`, http.StatusOK},
		{"negative", `-1`, http.StatusBadRequest},
		{"negative cents", `"-0.01"`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, `{"email": "a@b.example", "amount": `+tt.amount+`}`)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status == http.StatusBadRequest {
				assert.Contains(t, w.Body.String(), "Amount cannot be negative")
			}
		})
	}
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Empty(t, resp.Error.Details)
}
