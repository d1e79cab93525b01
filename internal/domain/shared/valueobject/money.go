package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is the ISO 4217 code every amount in the workshop is expressed in.
// The system books a single currency; it is only carried for presentation.
const Currency = "ARS"

// Money is an immutable signed decimal amount.
// All operations return new values; no float arithmetic is performed on amounts.
type Money struct {
	amount decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NewMoney wraps a decimal amount
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewMoneyFromInt creates Money from a whole amount
func NewMoneyFromInt(amount int64) Money {
	return Money{amount: decimal.NewFromInt(amount)}
}

// NewMoneyFromFloat creates Money from a float64 value.
// Only meant for values arriving from JSON numbers.
func NewMoneyFromFloat(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount)}
}

// NewMoneyFromString parses a decimal string such as "1500000.50"
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return Money{amount: d}, nil
}

// Zero returns a zero amount
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns the sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Subtract returns the difference of both amounts
func (m Money) Subtract(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Multiply returns the amount multiplied by factor
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// ApplyDiscount returns amount × (1 − percent/100).
// The percentage is not range checked here; callers own that rule.
func (m Money) ApplyDiscount(percent decimal.Decimal) Money {
	factor := decimal.NewFromInt(1).Sub(percent.Div(hundred))
	return m.Multiply(factor)
}

// Max returns the larger of the two amounts
func (m Money) Max(other Money) Money {
	if m.amount.GreaterThanOrEqual(other.amount) {
		return m
	}
	return other
}

// NonNegative floors the amount at zero
func (m Money) NonNegative() Money {
	return m.Max(Zero())
}

// Clamp limits the amount to [lo, hi]
func (m Money) Clamp(lo, hi Money) Money {
	if m.amount.LessThan(lo.amount) {
		return lo
	}
	if m.amount.GreaterThan(hi.amount) {
		return hi
	}
	return m
}

// Equals compares amounts ignoring trailing zeros
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether m < other
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan reports whether m > other
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// GreaterThanOrEqual reports whether m >= other
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// Round rounds half away from zero to the given decimal places
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places)}
}

// String returns the amount with two decimals and the currency code
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), Currency)
}

// StringFixed returns the amount with the given decimal places
func (m Money) StringFixed(places int32) string {
	return m.amount.StringFixed(places)
}

// Sum adds up a list of amounts; an empty list yields zero
func Sum(values ...Money) Money {
	total := Zero()
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// MarshalJSON encodes the amount as a decimal string
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount.String())
}

// UnmarshalJSON accepts both JSON numbers and decimal strings
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = d
	return nil
}

// Value implements driver.Valuer for database storage
func (m Money) Value() (driver.Value, error) {
	return m.amount.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (m *Money) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		m.amount = decimal.Zero
		return nil
	case string:
		return m.scanString(v)
	case []byte:
		return m.scanString(string(v))
	case float64:
		m.amount = decimal.NewFromFloat(v)
		return nil
	case int64:
		m.amount = decimal.NewFromInt(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}
}

func (m *Money) scanString(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	m.amount = d
	return nil
}
