package estate

// Views are computed on demand from a State and never stored.

// TotalValue returns the value of all properties.
func (s State) TotalValue() Money {
	total := M(0)
	for _, t := range s.Trusts {
		total = total.Add(t.Value())
	}
	return total
}

// TotalDebt returns the sum of all loans.
func (s State) TotalDebt() Money {
	total := M(0)
	for _, t := range s.Trusts {
		total = total.Add(t.Debt())
	}
	return total
}

// TotalEquity returns TotalValue minus TotalDebt.
func (s State) TotalEquity() Money { return s.TotalValue().Sub(s.TotalDebt()) }

// NetWorth returns TotalEquity plus cash.
func (s State) NetWorth() Money { return s.TotalEquity().Add(s.Cash) }

// Income returns the income of the whole portfolio over a number of months.
func (s State) Income(months int) Income {
	var total Income
	for _, t := range s.Trusts {
		for _, p := range t.Properties {
			total = total.Add(p.Income(months))
		}
	}
	return total
}

// AnnualCashflow returns the yearly rent minus interest and expenses of all
// properties, at their current values and loans. Savings are not included.
func (s State) AnnualCashflow() Money { return s.Income(12).Net() }

// PropertyCount returns the number of properties in all trusts.
func (s State) PropertyCount() int {
	count := 0
	for _, t := range s.Trusts {
		count += len(t.Properties)
	}
	return count
}

// TrustSummary is the dashboard line of a trust.
type TrustSummary struct {
	ID           string
	Name         string
	Properties   int
	Value        Money
	Debt         Money
	MaxBorrowing Money
	Headroom     Money
	CapacityUsed Percent
}

// Summary gathers the dashboard figures of a State.
type Summary struct {
	Now            string
	Cash           Money
	TotalValue     Money
	TotalDebt      Money
	TotalEquity    Money
	NetWorth       Money
	AnnualCashflow Money
	Savings        Money // quarterly
	Properties     int
	Trusts         []TrustSummary
}

// Summary computes the dashboard figures.
func (s State) Summary() Summary {
	sum := Summary{
		Now:            s.Now.String(),
		Cash:           s.Cash,
		TotalValue:     s.TotalValue(),
		TotalDebt:      s.TotalDebt(),
		TotalEquity:    s.TotalEquity(),
		NetWorth:       s.NetWorth(),
		AnnualCashflow: s.AnnualCashflow(),
		Savings:        s.QuarterlySavings(),
		Properties:     s.PropertyCount(),
	}
	for _, t := range s.Trusts {
		sum.Trusts = append(sum.Trusts, TrustSummary{
			ID:           t.ID,
			Name:         t.Name,
			Properties:   len(t.Properties),
			Value:        t.Value(),
			Debt:         t.Debt(),
			MaxBorrowing: t.MaxBorrowing,
			Headroom:     t.Headroom(),
			CapacityUsed: t.CapacityUsed(),
		})
	}
	return sum
}
