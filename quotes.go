package estate

// A quote previews a transaction without executing it. The engine executes
// transactions from the very same quotes, so what the player is shown is
// exactly what happens.

// Purchase is a property acquisition request.
type Purchase struct {
	PropertyParams
	LVR        Percent // share of the price borrowed
	OtherCosts Money   // stamp duty, legal and agency fees, paid in cash
}

// PurchaseQuote details the financing of a Purchase.
type PurchaseQuote struct {
	Loan         Money // price × LVR
	LMI          Money // capitalized into the loan
	TotalLoan    Money
	Deposit      Money // price − loan
	CashRequired Money // deposit + other costs
	TrustDebt    Money // trust debt after the purchase
}

// QuotePurchase computes the financing of p in trust t.
//
// When the LVR is above the LMI ceiling the error wraps ErrExcessiveRisk and
// the quote has no LMI.
func QuotePurchase(t Trust, p Purchase) (PurchaseQuote, error) {
	q := PurchaseQuote{Loan: p.Price.Pct(p.LVR)}
	q.Deposit = p.Price.Sub(q.Loan)
	q.CashRequired = q.Deposit.Add(p.OtherCosts)

	lmi, err := LMI(q.Loan, p.Price)
	q.LMI = lmi
	q.TotalLoan = q.Loan.Add(lmi)
	q.TrustDebt = t.Debt().Add(q.TotalLoan)
	return q, err
}

// SaleQuote details the proceeds of selling a property.
type SaleQuote struct {
	SalePrice     Money
	SellingCosts  Money // agent fees
	GrossProfit   Money // value − original price
	CapitalGain   Money // value − selling costs − original price
	TaxableAmount Money
	Tax           Money
	LoanPayout    Money
	NetProceeds   Money // what lands in cash, can be negative
}

// QuoteSale computes the proceeds of selling p at its current value.
// taxRate is the seller's marginal rate; applyDiscount halves a positive
// capital gain before tax.
func QuoteSale(p Property, taxRate Percent, applyDiscount bool) SaleQuote {
	q := SaleQuote{
		SalePrice:    p.Value,
		SellingCosts: p.Value.Pct(SellingCostRate),
		GrossProfit:  p.Profit(),
		LoanPayout:   p.Loan,
	}
	q.CapitalGain = p.Value.Sub(q.SellingCosts).Sub(p.OriginalPrice)
	q.TaxableAmount = q.CapitalGain
	if applyDiscount && q.CapitalGain.IsPositive() {
		q.TaxableAmount = q.CapitalGain.Pct(100 - CGTDiscount)
	}
	q.Tax = MaxMoney(M(0), q.TaxableAmount).Pct(taxRate)
	q.NetProceeds = p.Value.Sub(p.Loan).Sub(q.SellingCosts).Sub(q.Tax)
	return q
}

// RefinanceQuote details an equity release on a property.
type RefinanceQuote struct {
	MaxLoan         Money // 88% of the value
	AvailableEquity Money // max loan − loan, never negative
	TrustHeadroom   Money // trust cap − trust debt, never negative
	MaxReleasable   Money // min(available equity, trust headroom)
	CashOut         Money
	LMI             Money // capitalized into the loan
	NewLoan         Money // loan + cash out + LMI
	NewLVR          Percent
}

// QuoteRefinance computes the release of cashOut from property p of trust t.
//
// The quote is computed even when cashOut is out of range; the error only
// reports an unavailable LMI (ErrExcessiveRisk).
func QuoteRefinance(t Trust, p Property, cashOut Money) (RefinanceQuote, error) {
	q := RefinanceQuote{
		MaxLoan:         MaxLoanByLVR(p.Value),
		AvailableEquity: p.UsableEquity(),
		TrustHeadroom:   t.Headroom(),
		CashOut:         cashOut,
	}
	q.MaxReleasable = MinMoney(q.AvailableEquity, q.TrustHeadroom)

	lmi, err := LMI(p.Loan.Add(cashOut), p.Value)
	q.LMI = lmi
	q.NewLoan = p.Loan.Add(cashOut).Add(lmi)
	q.NewLVR = q.NewLoan.Ratio(p.Value)
	return q, err
}

// ReleaseForTargetLVR returns the whole amount of cash to release from p so
// that its loan reaches target LVR, capped to what can be released. It is
// zero when the loan is already at or above the target.
func ReleaseForTargetLVR(t Trust, p Property, target Percent) Money {
	needed := p.Value.Pct(target).Sub(p.Loan)
	if !needed.IsPositive() {
		return M(0)
	}
	releasable := MinMoney(p.UsableEquity(), t.Headroom())
	return MinMoney(needed, releasable).Floor()
}
