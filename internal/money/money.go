// Package money represents monetary amounts as integer minor units.
//
// All arithmetic in the split and balance engines happens on Money values,
// which are whole cents. Decimal strings and floats are only converted at the
// boundary (form input, persisted REAL columns, JSON) with Parse and FromFloat,
// and rendered back with String or Format.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CentsPerUnit is the number of minor units in one major unit.
const CentsPerUnit = 100

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNotFinite     = errors.New("amount is not a finite number")
	ErrOutOfRange    = errors.New("amount out of range")
)

// Money is an amount in cents.
type Money int64

var maxCents = decimal.NewFromInt(math.MaxInt64 / 2)

// Zero is the zero amount.
const Zero Money = 0

// Cents returns c cents as Money.
func Cents(c int64) Money {
	return Money(c)
}

// Parse converts a decimal string such as "12.34", "12,34" or "$12.3" to
// Money, rounding half away from zero to the nearest cent.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

// ParseOrZero is Parse with blank input treated as zero.
func ParseOrZero(s string) (Money, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return Parse(s)
}

// FromFloat converts a float amount (as stored in REAL columns) to Money.
// NaN and infinities are rejected.
func FromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotFinite
	}
	return FromDecimal(decimal.NewFromFloat(f))
}

// FromDecimal rounds d half away from zero to the cent. Amounts beyond the
// supported range are rejected with ErrOutOfRange.
func FromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Round(2).Shift(2)
	if cents.Abs().GreaterThan(maxCents) {
		return 0, ErrOutOfRange
	}
	return Money(cents.IntPart()), nil
}

// Decimal returns m as a shopspring decimal with two fractional digits.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Float64 returns the amount in major units. Use only for persistence and display.
func (m Money) Float64() float64 {
	return float64(m) / CentsPerUnit
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// String formats m with exactly two decimals, e.g. "-3.05".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Format renders m with the symbol of the given currency code. Unknown codes
// are rendered as "12.00 XYZ".
func (m Money) Format(currency string) string {
	code := strings.ToUpper(currency)
	if code == "" {
		code = DefaultCurrency
	}
	symbol, ok := symbols[code]
	if !ok {
		return fmt.Sprintf("%s %s", m.String(), code)
	}
	if m < 0 {
		return "-" + symbol + m.Abs().String()
	}
	return symbol + m.String()
}

// MarshalJSON encodes m as a decimal string so no precision is lost in transit.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a decimal string or a JSON number.
// An empty string decodes to zero.
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := ParseOrZero(s)
		if err != nil {
			return err
		}
		*m = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
	}
	v, err := FromFloat(f)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Sum adds all amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}
