package estate

import (
	"encoding/json"
	"fmt"

	"github.com/etnz/estate/calendar"
)

// Category distinguishes how a property earns its income.
type Category int

const (
	// ResidentialGrowth is a dwelling bought for capital growth. Its yield is
	// gross: a yearly expense of 2% of the value is deducted from the rent.
	ResidentialGrowth Category = iota
	// ResidentialCashflow follows the same rules as ResidentialGrowth, it is
	// usually bought for a higher yield and a lower growth.
	ResidentialCashflow
	// Commercial property has a net yield: expenses are already deducted.
	Commercial
)

// Categories lists all categories in display order.
var Categories = []Category{ResidentialGrowth, ResidentialCashflow, Commercial}

func (c Category) String() string {
	switch c {
	case ResidentialGrowth:
		return "residential-growth"
	case ResidentialCashflow:
		return "residential-cashflow"
	case Commercial:
		return "commercial"
	default:
		return "unknown"
	}
}

// ParseCategory parses a string into a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown property category: %q", s)
}

// IsResidential reports whether the category is one of the residential ones.
func (c Category) IsResidential() bool {
	return c == ResidentialGrowth || c == ResidentialCashflow
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid property category %s: %w", data, err)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Preset returns typical purchase parameters for the category.
// The name is left empty, see SuggestName.
func (c Category) Preset() Purchase {
	switch c {
	case ResidentialCashflow:
		return Purchase{
			PropertyParams: PropertyParams{Category: c, Price: M(400000), InterestRate: 6, GrowthRate: 3, YieldRate: 6.5},
			LVR:            88,
			OtherCosts:     M(32000),
		}
	case Commercial:
		return Purchase{
			PropertyParams: PropertyParams{Category: c, Price: M(1000000), InterestRate: 6, GrowthRate: 4, YieldRate: 7},
			LVR:            65,
			OtherCosts:     M(60000),
		}
	default:
		return Purchase{
			PropertyParams: PropertyParams{Category: ResidentialGrowth, Price: M(500000), InterestRate: 6, GrowthRate: 7, YieldRate: 3.5},
			LVR:            88,
			OtherCosts:     M(40000),
		}
	}
}

// PropertyParams are the attributes chosen by the buyer.
type PropertyParams struct {
	Name         string
	Category     Category
	Price        Money
	InterestRate Percent // annual
	GrowthRate   Percent // annual
	YieldRate    Percent // annual, gross for residential and net for commercial
}

// Property is an income producing asset held in a trust.
type Property struct {
	ID            string
	Name          string
	Category      Category
	Value         Money
	OriginalPrice Money // purchase price, never modified
	Loan          Money // interest only: principal only moves on pay down and refinance
	InterestRate  Percent
	GrowthRate    Percent
	YieldRate     Percent
	BoughtAt      calendar.Month
}

// Income is what a property earns and costs over a period.
type Income struct {
	Rent     Money
	Expenses Money
	Interest Money
}

// Net returns the cash contributed by the period: rent minus interest and expenses.
func (i Income) Net() Money { return i.Rent.Sub(i.Interest).Sub(i.Expenses) }

// Add sums two incomes.
func (i Income) Add(j Income) Income {
	return Income{Rent: i.Rent.Add(j.Rent), Expenses: i.Expenses.Add(j.Expenses), Interest: i.Interest.Add(j.Interest)}
}

// Income returns the income over a number of months at the current value and loan.
//
// It is the single rule used both to advance time and to report cashflow.
func (p Property) Income(months int) Income {
	monthlyRent := p.Value.Pct(p.YieldRate).Div(12)
	var monthlyExpenses Money
	switch p.Category {
	case ResidentialGrowth, ResidentialCashflow:
		monthlyExpenses = p.Value.Pct(ResidentialExpenseRate).Div(12)
	case Commercial:
		monthlyExpenses = M(0)
	}
	return Income{
		Rent:     monthlyRent.Times(months),
		Expenses: monthlyExpenses.Times(months),
		Interest: MonthlyInterest(p.Loan, p.InterestRate).Times(months),
	}
}

// grow returns the value after a number of months of linear growth.
// A value never falls below zero.
func (p Property) grow(months int) Money {
	return MaxMoney(M(0), p.Value.Add(p.Value.Pct(p.GrowthRate).Times(months).Div(12)))
}

// MinGrowthRate is the lowest yearly growth rate: a quarter of it wipes out the value.
const MinGrowthRate Percent = -400

// checkRates rejects rates a property cannot have.
func checkRates(interest, growth, yield *Percent) error {
	switch {
	case interest != nil && *interest < 0:
		return fmt.Errorf("%w: interest rate must not be negative, got %v", ErrInvalidAmount, *interest)
	case growth != nil && *growth < MinGrowthRate:
		return fmt.Errorf("%w: growth rate must be at least %v, got %v", ErrInvalidAmount, MinGrowthRate, *growth)
	case yield != nil && *yield < 0:
		return fmt.Errorf("%w: yield must not be negative, got %v", ErrInvalidAmount, *yield)
	}
	return nil
}

// Equity returns value minus loan.
func (p Property) Equity() Money { return p.Value.Sub(p.Loan) }

// UsableEquity returns how much could be borrowed against the property before reaching the 88% LVR cap.
func (p Property) UsableEquity() Money { return MaxMoney(M(0), MaxLoanByLVR(p.Value).Sub(p.Loan)) }

// LVR returns the loan to value ratio.
func (p Property) LVR() Percent { return p.Loan.Ratio(p.Value) }

// Profit returns the unrealized gain over the purchase price.
func (p Property) Profit() Money { return p.Value.Sub(p.OriginalPrice) }

// ProfitPercent returns the Profit relative to the purchase price.
func (p Property) ProfitPercent() Percent { return p.Profit().Ratio(p.OriginalPrice) }

// Held returns the number of months the property has been held at now.
func (p Property) Held(now calendar.Month) int { return now.Since(p.BoughtAt) }

// DiscountEligible reports whether a sale at now qualifies for the CGT
// discount by default: the property has been held for at least a year.
func (p Property) DiscountEligible(now calendar.Month) bool {
	return p.Held(now) >= DiscountHoldingMonths
}
