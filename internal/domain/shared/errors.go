package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so errors.Is works
// against the sentinels below even when the message was specialised.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeNotFound             = "NOT_FOUND"
	CodeAlreadyExists        = "ALREADY_EXISTS"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeConcurrencyConflict  = "CONCURRENCY_CONFLICT"
	CodeInvalidTransition    = "INVALID_TRANSITION"
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeTaskNotFound         = "TASK_NOT_FOUND"
	CodeInvalidPercentage    = "INVALID_PERCENTAGE"
	CodeInvalidAmount        = "INVALID_AMOUNT"
)

// Common domain errors
var (
	ErrNotFound             = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists        = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput         = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrConcurrencyConflict  = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrInvalidTransition    = NewDomainError(CodeInvalidTransition, "Operation not allowed in current status")
	ErrMissingRequiredField = NewDomainError(CodeMissingRequiredField, "A required field is missing")
	ErrTaskNotFound         = NewDomainError(CodeTaskNotFound, "Task not found in checklist")
	ErrInvalidPercentage    = NewDomainError(CodeInvalidPercentage, "Percentage must be between 0 and 100")
	ErrInvalidAmount        = NewDomainError(CodeInvalidAmount, "Amount is not valid")
)

// AsDomainError extracts a *DomainError from an error chain
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
