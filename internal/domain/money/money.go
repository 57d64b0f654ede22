// Package money provides the fixed-point monetary amount used across the
// ledger core. Amounts are exact base-10 decimals normalized to two
// fractional digits; binary floating point is never used.
package money

import (
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount indicates an amount that is not parseable as a base-10
// number, or that violates a positivity requirement.
var ErrInvalidAmount = errors.New("amount must be a valid positive number")

// Money is an immutable monetary amount with scale 2.
// Normalization rounds half away from zero.
type Money struct {
	amount decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Money {
	return Money{amount: decimal.Zero.Round(2)}
}

// Parse converts a loosely-typed amount representation into Money.
// The input is trimmed and must parse as a base-10 number; the result is
// normalized to exactly two fractional digits.
func Parse(raw string) (Money, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Money{}, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}

	return Money{amount: d.Round(2)}, nil
}

// ParsePositive parses as Parse and additionally requires the normalized
// amount to be strictly greater than zero. Every business operation that
// moves money validates its input through this function.
func ParsePositive(raw string) (Money, error) {
	m, err := Parse(raw)
	if err != nil {
		return Money{}, err
	}
	if !m.IsPositive() {
		return Money{}, ErrInvalidAmount
	}
	return m, nil
}

// FromDecimal wraps an already-exact decimal, normalizing to scale 2.
func FromDecimal(d decimal.Decimal) Money {
	return Money{amount: d.Round(2)}
}

// MustParse parses a literal amount and panics on failure. Intended for
// constants and tests only.
func MustParse(raw string) Money {
	m, err := Parse(raw)
	if err != nil {
		panic("money: invalid literal " + raw)
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// Equal reports whether the two amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if other.LessThan(m) {
		return other
	}
	return m
}

// Decimal exposes the underlying exact decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON renders the amount as a JSON string, e.g. "250.00".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare number.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Scan implements sql.Scanner so NUMERIC columns scan directly into Money.
func (m *Money) Scan(src interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return err
	}
	m.amount = d.Round(2)
	return nil
}

// Value implements driver.Valuer for NUMERIC column writes.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}
