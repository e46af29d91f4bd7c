package estate

import (
	"fmt"
	"slices"
)

// All transactions below take a State and return a new one. On a rejection
// they return the State they were given, untouched, and an error wrapping one
// of the Err* rejections.

// OpenTrust pays the TrustFee and opens a new trust capped at the global
// default borrowing capacity.
func OpenTrust(s State) (State, error) {
	if s.Cash.LessThan(TrustFee) {
		return s, fmt.Errorf("%w: opening a trust costs %v, cash is %v", ErrInsufficientFunds, TrustFee, s.Cash)
	}
	next := s.clone()
	next.Cash = next.Cash.Sub(TrustFee)
	next.Trusts = append(next.Trusts, Trust{
		ID:           next.newID(),
		Name:         fmt.Sprintf("Trust %d", len(s.Trusts)+1),
		MaxBorrowing: s.MaxBorrowingPerTrust,
	})
	return next, nil
}

// BuyProperty buys a property into a trust, borrowing lvr percent of the
// price. LMI is added to the loan, the deposit and otherCosts are paid in cash.
// An empty name is replaced by SuggestName.
func BuyProperty(s State, trustID string, params PropertyParams, lvr Percent, otherCosts Money) (State, error) {
	i := s.trustIndex(trustID)
	if i < 0 {
		return s, fmt.Errorf("%w: trust %q", ErrNotFound, trustID)
	}
	switch {
	case !params.Price.IsPositive():
		return s, fmt.Errorf("%w: price must be positive, got %v", ErrInvalidAmount, params.Price)
	case lvr < 0:
		return s, fmt.Errorf("%w: LVR must not be negative, got %v", ErrInvalidAmount, lvr)
	case otherCosts.IsNegative():
		return s, fmt.Errorf("%w: other costs must not be negative, got %v", ErrInvalidAmount, otherCosts)
	}
	if err := checkRates(&params.InterestRate, &params.GrowthRate, &params.YieldRate); err != nil {
		return s, err
	}

	trust := s.Trusts[i]
	q, err := QuotePurchase(trust, Purchase{PropertyParams: params, LVR: lvr, OtherCosts: otherCosts})
	if err != nil {
		return s, err
	}
	if q.CashRequired.GreaterThan(s.Cash) {
		return s, fmt.Errorf("%w: purchase requires %v in cash, cash is %v", ErrInsufficientFunds, q.CashRequired, s.Cash)
	}
	if q.TrustDebt.GreaterThan(trust.MaxBorrowing) {
		return s, fmt.Errorf("%w: %s debt would be %v, capacity is %v", ErrBorrowingCapacityExceeded, trust.Name, q.TrustDebt, trust.MaxBorrowing)
	}

	next := s.clone()
	name := params.Name
	if name == "" {
		name = s.SuggestName(params.Category)
	}
	next.Cash = next.Cash.Sub(q.CashRequired)
	next.Trusts[i].Properties = append(next.Trusts[i].Properties, Property{
		ID:            next.newID(),
		Name:          name,
		Category:      params.Category,
		Value:         params.Price,
		OriginalPrice: params.Price,
		Loan:          q.TotalLoan,
		InterestRate:  params.InterestRate,
		GrowthRate:    params.GrowthRate,
		YieldRate:     params.YieldRate,
		BoughtAt:      s.Now,
	})
	return next, nil
}

// SellProperty sells a property at its current value, repays its loan and
// credits the net proceeds (see QuoteSale) to cash.
//
// A sale whose loss cannot be covered by cash is rejected with ErrInsufficientFunds.
func SellProperty(s State, trustID, propertyID string, taxRate Percent, applyDiscount bool) (State, error) {
	i, j, err := s.locate(trustID, propertyID)
	if err != nil {
		return s, err
	}
	p := s.Trusts[i].Properties[j]
	q := QuoteSale(p, taxRate, applyDiscount)
	if cash := s.Cash.Add(q.NetProceeds); cash.IsNegative() {
		return s, fmt.Errorf("%w: selling %s leaves %v to repay, cash is %v", ErrInsufficientFunds, p.Name, q.NetProceeds.Neg(), s.Cash)
	}

	next := s.clone()
	next.Trusts[i].Properties = slices.Delete(next.Trusts[i].Properties, j, j+1)
	next.Cash = next.Cash.Add(q.NetProceeds)
	return next, nil
}

// PayDownLoan repays amount of a property loan from cash.
// amount must be positive and at most min(cash, loan).
func PayDownLoan(s State, trustID, propertyID string, amount Money) (State, error) {
	i, j, err := s.locate(trustID, propertyID)
	if err != nil {
		return s, err
	}
	p := s.Trusts[i].Properties[j]
	switch {
	case !amount.IsPositive():
		return s, fmt.Errorf("%w: pay down must be positive, got %v", ErrInvalidAmount, amount)
	case amount.GreaterThan(p.Loan):
		return s, fmt.Errorf("%w: pay down %v is more than the %v loan of %s", ErrInvalidAmount, amount, p.Loan, p.Name)
	case amount.GreaterThan(s.Cash):
		return s, fmt.Errorf("%w: %w: pay down %v is more than the %v cash", ErrInvalidAmount, ErrInsufficientFunds, amount, s.Cash)
	}

	next := s.clone()
	loan := &next.Trusts[i].Properties[j].Loan
	*loan = MaxMoney(M(0), loan.Sub(amount))
	next.Cash = next.Cash.Sub(amount)
	return next, nil
}

// Refinance releases cashOut of equity from a property: the loan grows by
// cashOut plus LMI, and cashOut is credited to cash.
func Refinance(s State, trustID, propertyID string, cashOut Money) (State, error) {
	i, j, err := s.locate(trustID, propertyID)
	if err != nil {
		return s, err
	}
	trust, p := s.Trusts[i], s.Trusts[i].Properties[j]
	if !cashOut.IsPositive() {
		return s, fmt.Errorf("%w: cash out must be positive, got %v", ErrInvalidAmount, cashOut)
	}
	q, err := QuoteRefinance(trust, p, cashOut)
	if cashOut.GreaterThan(q.MaxReleasable) {
		return s, fmt.Errorf("%w: at most %v can be released from %s (equity %v, trust headroom %v)", ErrCapacityExceeded, q.MaxReleasable, p.Name, q.AvailableEquity, q.TrustHeadroom)
	}
	if err != nil {
		return s, err
	}

	next := s.clone()
	next.Trusts[i].Properties[j].Loan = q.NewLoan
	next.Cash = next.Cash.Add(cashOut)
	return next, nil
}

// GlobalSettings are the player's knobs. Nil fields are left unchanged.
type GlobalSettings struct {
	Salary               *Money
	SavingsRate          *Percent
	MaxBorrowingPerTrust *Money // applies to trusts opened afterwards
}

// UpdateGlobalSettings replaces the non nil settings.
func UpdateGlobalSettings(s State, g GlobalSettings) State {
	next := s.clone()
	if g.Salary != nil {
		next.Salary = *g.Salary
	}
	if g.SavingsRate != nil {
		next.SavingsRate = *g.SavingsRate
	}
	if g.MaxBorrowingPerTrust != nil {
		next.MaxBorrowingPerTrust = *g.MaxBorrowingPerTrust
	}
	return next
}

// TrustSettings are a trust's knobs. Nil fields are left unchanged.
type TrustSettings struct {
	Name         *string
	MaxBorrowing *Money
}

// UpdateTrustSettings replaces the non nil settings of a trust.
// A lower cap is accepted even below the current debt.
func UpdateTrustSettings(s State, trustID string, ts TrustSettings) (State, error) {
	i := s.trustIndex(trustID)
	if i < 0 {
		return s, fmt.Errorf("%w: trust %q", ErrNotFound, trustID)
	}
	next := s.clone()
	t := &next.Trusts[i]
	if ts.Name != nil {
		t.Name = *ts.Name
	}
	if ts.MaxBorrowing != nil {
		t.MaxBorrowing = *ts.MaxBorrowing
	}
	return next, nil
}

// PropertySettings are a property's market assumptions. Nil fields are left unchanged.
type PropertySettings struct {
	Name         *string
	InterestRate *Percent
	GrowthRate   *Percent
	YieldRate    *Percent
}

// UpdatePropertySettings replaces the non nil settings of a property.
// Rates out of range are rejected with ErrInvalidAmount.
func UpdatePropertySettings(s State, trustID, propertyID string, ps PropertySettings) (State, error) {
	i, j, err := s.locate(trustID, propertyID)
	if err != nil {
		return s, err
	}
	if err := checkRates(ps.InterestRate, ps.GrowthRate, ps.YieldRate); err != nil {
		return s, err
	}
	next := s.clone()
	p := &next.Trusts[i].Properties[j]
	if ps.Name != nil {
		p.Name = *ps.Name
	}
	if ps.InterestRate != nil {
		p.InterestRate = *ps.InterestRate
	}
	if ps.GrowthRate != nil {
		p.GrowthRate = *ps.GrowthRate
	}
	if ps.YieldRate != nil {
		p.YieldRate = *ps.YieldRate
	}
	return next, nil
}

// locate returns the index of a trust and of one of its properties.
func (s State) locate(trustID, propertyID string) (int, int, error) {
	i := s.trustIndex(trustID)
	if i < 0 {
		return -1, -1, fmt.Errorf("%w: trust %q", ErrNotFound, trustID)
	}
	j := s.Trusts[i].propertyIndex(propertyID)
	if j < 0 {
		return -1, -1, fmt.Errorf("%w: property %q in %s", ErrNotFound, propertyID, s.Trusts[i].Name)
	}
	return i, j, nil
}
