package estate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used to display money when none is given.
const DefaultCurrency = money.USD

// Money represents a monetary value in major units (dollars, not cents).
//
// Arithmetic is exact decimal arithmetic: there is no rounding inside the
// engine, rounding only happens when money is displayed or persisted.
type Money struct {
	value      decimal.Decimal
	fractional bool // true to persist in full digits
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// M creates Money from a numeric value in major units.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseAmount parses a user supplied amount like "1,250,000" or "$ 40,000.50".
// Thousands separators, spaces and a leading dollar sign are ignored.
func ParseAmount(text string) (Money, error) {
	cleaned := strings.NewReplacer(",", "", " ", "", "_", "").Replace(strings.TrimSpace(text))
	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "$")
	if cleaned == "" {
		return Money{}, fmt.Errorf("invalid amount %q: empty", text)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	if negative {
		d = d.Neg()
	}
	return Money{value: d}, nil
}

// MustParseAmount is like ParseAmount but panics on error.
func MustParseAmount(text string) Money {
	m, err := ParseAmount(text)
	if err != nil {
		panic(err.Error())
	}
	return m
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Times(n int) Money               { return Money{value: m.value.Mul(decimal.NewFromInt(int64(n)))} }
func (m Money) Div(n int) Money                 { return Money{value: m.value.Div(decimal.NewFromInt(int64(n)))} }
func (m Money) Decimal() decimal.Decimal        { return m.value }

// Pct returns p percent of m.
func (m Money) Pct(p Percent) Money { return Money{value: m.value.Mul(p.ratio())} }

// Ratio returns m as a percentage of n. A zero n gives a zero percent.
func (m Money) Ratio(n Money) Percent {
	if n.IsZero() {
		return 0
	}
	return Percent(m.value.Mul(decimal.NewFromInt(100)).Div(n.value).InexactFloat64())
}

// Floor rounds m down to whole units.
func (m Money) Floor() Money { return Money{value: m.value.Floor()} }

// Round rounds m to the given number of decimal places.
func (m Money) Round(places int32) Money { return Money{value: m.value.Round(places)} }

// Float returns the nearest float64. It is meant for charts, not for computation.
func (m Money) Float() float64 { return m.value.InexactFloat64() }

// MinMoney returns the smallest of a and b.
func MinMoney(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// MaxMoney returns the largest of a and b.
func MaxMoney(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Format returns the money formatted in the given currency, rounded to whole units.
func (m Money) Format(code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	f := money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(m.value.Round(0).IntPart())
}

// String returns the money formatted in the DefaultCurrency, e.g. "$1,250,000".
func (m Money) String() string { return m.Format(DefaultCurrency) }

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.Round(0).IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// exact return a copy of money that will be persisted with all the digits.
func (m Money) exact() Money {
	m.fractional = true
	return m
}

func (m Money) MarshalJSON() ([]byte, error) {
	rounded := m.value
	if !m.fractional {
		rounded = m.value.Round(2)
	}
	return rounded.MarshalJSON()
}

// UnmarshalJSON reads a json number, or a string accepted by ParseAmount.
func (m *Money) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, err := ParseAmount(str)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	return m.value.UnmarshalJSON(data)
}
