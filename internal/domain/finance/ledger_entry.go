package finance

import (
	"strings"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Direction tells whether a ledger entry brings money in or out
type Direction string

const (
	DirectionIncome  Direction = "INCOME"
	DirectionExpense Direction = "EXPENSE"
)

// IsValid checks if the direction is known
func (d Direction) IsValid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// LedgerEntry is a manually booked income or expense.
// Entries are immutable; they can only be created and deleted.
type LedgerEntry struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Date        time.Time
	Description string
	Category    string
	Amount      valueobject.Money
	Direction   Direction
	ReferenceID *uuid.UUID
	CreatedAt   time.Time
}

// NewLedgerEntry validates and creates an entry
func NewLedgerEntry(tenantID uuid.UUID, date time.Time, description, category string, amount valueobject.Money, direction Direction) (*LedgerEntry, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError(shared.CodeMissingRequiredField, "Description is required")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Direction must be INCOME or EXPENSE")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &LedgerEntry{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Date:        date,
		Description: description,
		Category:    strings.TrimSpace(category),
		Amount:      amount,
		Direction:   direction,
		CreatedAt:   time.Now(),
	}, nil
}

// WithReference links the entry to another record, such as a work order
func (e *LedgerEntry) WithReference(id uuid.UUID) *LedgerEntry {
	e.ReferenceID = &id
	return e
}
