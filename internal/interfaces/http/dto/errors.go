package dto

import (
	"net/http"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/workforce"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized  = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired  = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid  = "ERR_TOKEN_INVALID"
	ErrCodeInvalidTenant = "ERR_INVALID_TENANT"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeTaskNotFound        = "ERR_TASK_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidTransition    = "ERR_INVALID_TRANSITION"
	ErrCodeMissingRequiredField = "ERR_MISSING_REQUIRED_FIELD"
	ErrCodeInvalidPercentage    = "ERR_INVALID_PERCENTAGE"
	ErrCodeInvalidAmount        = "ERR_INVALID_AMOUNT"
	ErrCodeNoAttendanceRecord   = "ERR_NO_ATTENDANCE_RECORD"
	ErrCodeAlreadyStarted       = "ERR_ALREADY_STARTED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeInvalidTenant:   http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeTaskNotFound:        http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidTransition:    http.StatusUnprocessableEntity,
	ErrCodeMissingRequiredField: http.StatusUnprocessableEntity,
	ErrCodeInvalidPercentage:    http.StatusUnprocessableEntity,
	ErrCodeInvalidAmount:        http.StatusUnprocessableEntity,
	ErrCodeNoAttendanceRecord:   http.StatusUnprocessableEntity,
	ErrCodeAlreadyStarted:       http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodes maps domain error codes to API codes
var domainErrorCodes = map[string]string{
	shared.CodeNotFound:              ErrCodeNotFound,
	shared.CodeAlreadyExists:         ErrCodeAlreadyExists,
	shared.CodeInvalidInput:          ErrCodeInvalidInput,
	shared.CodeConcurrencyConflict:   ErrCodeConcurrencyConflict,
	shared.CodeInvalidTransition:     ErrCodeInvalidTransition,
	shared.CodeMissingRequiredField:  ErrCodeMissingRequiredField,
	shared.CodeTaskNotFound:          ErrCodeTaskNotFound,
	shared.CodeInvalidPercentage:     ErrCodeInvalidPercentage,
	shared.CodeInvalidAmount:         ErrCodeInvalidAmount,
	workforce.CodeNoAttendanceRecord: ErrCodeNoAttendanceRecord,
	workforce.CodeAlreadyStarted:     ErrCodeAlreadyStarted,
}

// NormalizeErrorCode converts a domain error code to its API form.
// Unknown codes are returned as-is and answer 500.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodes[code]; ok {
		return apiCode
	}
	return code
}
