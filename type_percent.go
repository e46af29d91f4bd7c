package estate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Percent is a rate expressed in percent: 6.5 means 6.5%.
type Percent float64

// ParsePercent parses "6.5" or "6.5%".
func ParsePercent(text string) (Percent, error) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(text), "%")
	f, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percent %q: %w", text, err)
	}
	return Percent(f), nil
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// ratio returns p/100 as an exact decimal.
func (p Percent) ratio() decimal.Decimal {
	return decimal.NewFromFloat(float64(p)).Div(decimal.NewFromInt(100))
}
