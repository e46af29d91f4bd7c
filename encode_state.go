package estate

// States are not persisted, the scenario is. They are marshalled for the
// query command and for scripts consuming the simulation.

func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("label", e.Label)
	w.Append("netWorth", e.NetWorth)
	w.Append("cash", e.Cash)
	w.Append("debt", e.Debt)
	return w.MarshalJSON()
}

func (p Property) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Append("category", p.Category)
	w.Append("value", p.Value)
	w.Append("originalPrice", p.OriginalPrice)
	w.Append("loan", p.Loan)
	w.Append("lvr", p.LVR())
	w.Append("equity", p.Equity())
	w.Append("usableEquity", p.UsableEquity())
	w.Append("rate", p.InterestRate)
	w.Append("growth", p.GrowthRate)
	w.Append("yield", p.YieldRate)
	w.Append("boughtAt", p.BoughtAt.String())
	return w.MarshalJSON()
}

func (t Trust) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("name", t.Name)
	w.Append("maxBorrowing", t.MaxBorrowing)
	w.Append("debt", t.Debt())
	w.Append("headroom", t.Headroom())
	properties := t.Properties
	if properties == nil {
		properties = []Property{}
	}
	w.Append("properties", properties)
	return w.MarshalJSON()
}

func (s State) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("now", s.Now.String())
	w.Append("year", s.Year())
	w.Append("month", s.Month())
	w.Append("cash", s.Cash)
	w.Append("salary", s.Salary)
	w.Append("savingsRate", s.SavingsRate)
	w.Append("maxBorrowingPerTrust", s.MaxBorrowingPerTrust)
	w.Append("setupComplete", s.SetupComplete)
	trusts := s.Trusts
	if trusts == nil {
		trusts = []Trust{}
	}
	w.Append("trusts", trusts)
	w.Append("history", s.History)
	w.Append("summary", s.Summary())
	return w.MarshalJSON()
}

func (t TrustSummary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("name", t.Name)
	w.Append("properties", t.Properties)
	w.Append("value", t.Value)
	w.Append("debt", t.Debt)
	w.Append("maxBorrowing", t.MaxBorrowing)
	w.Append("headroom", t.Headroom)
	w.Append("capacityUsed", t.CapacityUsed)
	return w.MarshalJSON()
}

func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("now", s.Now)
	w.Append("cash", s.Cash)
	w.Append("totalValue", s.TotalValue)
	w.Append("totalDebt", s.TotalDebt)
	w.Append("totalEquity", s.TotalEquity)
	w.Append("netWorth", s.NetWorth)
	w.Append("annualCashflow", s.AnnualCashflow)
	w.Append("savings", s.Savings)
	w.Append("properties", s.Properties)
	w.Optional("trusts", s.Trusts)
	return w.MarshalJSON()
}
