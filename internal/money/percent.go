package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Percent is a percentage in hundredths of a percent: 33.33% is Percent(3333).
type Percent int64

// Hundred is 100%.
const Hundred Percent = 100 * 100

// ParsePercent converts "33.33" or "33.33%" to a Percent, rounding half away
// from zero to two decimals.
func ParsePercent(s string) (Percent, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	v := d.Round(2).Shift(2)
	if v.Abs().GreaterThan(maxCents) {
		return 0, ErrOutOfRange
	}
	return Percent(v.IntPart()), nil
}

// PercentFromFloat converts a float percentage such as 33.3 to a Percent.
func PercentFromFloat(f float64) (Percent, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotFinite
	}
	return Percent(decimal.NewFromFloat(f).Round(2).Shift(2).IntPart()), nil
}

// String formats p with two decimals and no percent sign.
func (p Percent) String() string {
	return decimal.New(int64(p), -2).StringFixed(2)
}

// Float64 returns p as a plain float percentage.
func (p Percent) Float64() float64 {
	return float64(p) / 100
}

// MarshalJSON encodes p as a decimal string.
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts a decimal string or a JSON number. Empty string is zero.
func (p *Percent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			*p = 0
			return nil
		}
		v, err := ParsePercent(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
	}
	v, err := PercentFromFloat(f)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MulPercent returns p percent of m, rounded half away from zero to the cent.
// The product is taken in decimal so it cannot overflow for any m when
// p is at most Hundred.
func MulPercent(m Money, p Percent) Money {
	v := decimal.NewFromInt(int64(m)).
		Mul(decimal.NewFromInt(int64(p))).
		Div(decimal.NewFromInt(int64(Hundred)))
	return Money(v.Round(0).IntPart())
}

// StringFixed formats p with the given number of decimals.
func (p Percent) StringFixed(places int32) string {
	return decimal.New(int64(p), -2).StringFixed(places)
}
