package renderer

import (
	"github.com/etnz/estate"
)

// Dashboard holds the figures displayed by the dashboard.
// Amounts are kept as estate.Money so that templates format them.
type Dashboard struct {
	Currency string
	Now      string
	Year     int
	Horizon  int
	Progress float64

	Cash           estate.Money
	NetWorth       estate.Money
	TotalValue     estate.Money
	TotalDebt      estate.Money
	TotalEquity    estate.Money
	AnnualCashflow estate.Money
	Savings        estate.Money // quarterly

	Trusts []DashboardTrust
}

// DashboardTrust is a trust and its properties.
type DashboardTrust struct {
	ID           string
	Name         string
	Value        estate.Money
	Debt         estate.Money
	MaxBorrowing estate.Money
	Headroom     estate.Money
	CapacityUsed estate.Percent
	Properties   []DashboardProperty
}

// DashboardProperty is a property line.
type DashboardProperty struct {
	ID        string
	Name      string
	Category  string
	Value     estate.Money
	Loan      estate.Money
	LVR       estate.Percent
	Equity    estate.Money
	Profit    estate.Money
	AnnualNet estate.Money
	Held      int // months
}

// NewDashboard gathers the dashboard figures of a State.
func NewDashboard(s estate.State, currency string) *Dashboard {
	sum := s.Summary()
	d := &Dashboard{
		Currency:       currency,
		Now:            sum.Now,
		Year:           s.Year(),
		Horizon:        s.Now.Horizon(),
		Progress:       s.Now.Progress(),
		Cash:           sum.Cash,
		NetWorth:       sum.NetWorth,
		TotalValue:     sum.TotalValue,
		TotalDebt:      sum.TotalDebt,
		TotalEquity:    sum.TotalEquity,
		AnnualCashflow: sum.AnnualCashflow,
		Savings:        sum.Savings,
		Trusts:         make([]DashboardTrust, 0, len(s.Trusts)),
	}
	for i, t := range s.Trusts {
		ts := sum.Trusts[i]
		dt := DashboardTrust{
			ID:           t.ID,
			Name:         t.Name,
			Value:        ts.Value,
			Debt:         ts.Debt,
			MaxBorrowing: ts.MaxBorrowing,
			Headroom:     ts.Headroom,
			CapacityUsed: ts.CapacityUsed,
		}
		for _, p := range t.Properties {
			dt.Properties = append(dt.Properties, DashboardProperty{
				ID:        p.ID,
				Name:      p.Name,
				Category:  p.Category.String(),
				Value:     p.Value,
				Loan:      p.Loan,
				LVR:       p.LVR(),
				Equity:    p.Equity(),
				Profit:    p.Profit(),
				AnnualNet: p.Income(12).Net(),
				Held:      p.Held(s.Now),
			})
		}
		d.Trusts = append(d.Trusts, dt)
	}
	return d
}
