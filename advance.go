package estate

import "github.com/etnz/estate/calendar"

// QuarterlySavings returns the part of the salary saved each quarter.
func (s State) QuarterlySavings() Money {
	return s.Salary.Pct(s.SavingsRate).Div(4)
}

// AdvanceQuarter moves the simulation three months forward.
//
// Every property contributes its quarterly rent minus interest and expenses
// to cash, then grows linearly by a quarter of its yearly growth rate. The
// quarterly savings are added to cash, and a history entry records the new
// net worth. Loans are interest only: they are left unchanged.
func AdvanceQuarter(s State) State {
	next := s.clone()
	delta := s.QuarterlySavings()
	for i := range next.Trusts {
		for j := range next.Trusts[i].Properties {
			p := &next.Trusts[i].Properties[j]
			delta = delta.Add(p.Income(calendar.MonthsPerQuarter).Net())
			p.Value = p.grow(calendar.MonthsPerQuarter)
		}
	}
	next.Cash = next.Cash.Add(delta)
	next.Now = next.Now.AddQuarter()
	next.History = append(next.History, HistoryEntry{
		Label:    next.Now.Label(),
		NetWorth: next.NetWorth(),
		Cash:     next.Cash,
		Debt:     next.TotalDebt(),
	})
	return next
}
