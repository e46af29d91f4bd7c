package estate

import "fmt"

// Lending and selling policy. These are deliberately simplified approximations
// of real lending rules, not tax or credit advice.
const (
	// MaxRefinanceLVR caps the loan to value ratio reachable by releasing equity.
	MaxRefinanceLVR Percent = 88
	// LMIThreshold is the LVR above which Lenders Mortgage Insurance is charged.
	LMIThreshold Percent = 80
	// LMICeiling is the LVR above which no lender accepts the risk.
	LMICeiling Percent = 95
	// LMIRate is the LMI premium, as a share of the loan amount.
	LMIRate Percent = 1.5
	// SellingCostRate covers agent fees on a sale, as a share of the value.
	SellingCostRate Percent = 2
	// CGTDiscount is the share of a capital gain exempted from tax when the discount applies.
	CGTDiscount Percent = 50
	// ResidentialExpenseRate is the yearly operating expense of a residential
	// property, as a share of its value.
	ResidentialExpenseRate Percent = 2
	// DiscountHoldingMonths is the holding period making a sale eligible to the CGT discount.
	DiscountHoldingMonths = 12
)

// TrustFee is the cost of opening a trust.
var TrustFee = M(3000)

// MonthlyInterest returns one month of interest on loan at an annual rate.
// The result is not rounded.
func MonthlyInterest(loan Money, annualRate Percent) Money {
	return loan.Pct(annualRate).Div(12)
}

// MaxLoanByLVR returns the largest loan a property worth value can carry
// when releasing equity.
func MaxLoanByLVR(value Money) Money {
	return value.Pct(MaxRefinanceLVR)
}

// LMI returns the Lenders Mortgage Insurance premium for a loan against a
// property worth value.
//
// It is zero up to an 80% LVR, 1.5% of the loan up to 95%, and unavailable
// above, in which case the error wraps ErrExcessiveRisk.
func LMI(loan, value Money) (Money, error) {
	// compare loan against a share of value, so that no division is involved.
	switch {
	case loan.GreaterThan(value.Pct(LMICeiling)):
		return Money{}, fmt.Errorf("%w: loan %v is %v of value %v, above the %v ceiling", ErrExcessiveRisk, loan, loan.Ratio(value), value, LMICeiling)
	case loan.GreaterThan(value.Pct(LMIThreshold)):
		return loan.Pct(LMIRate), nil
	default:
		return M(0), nil
	}
}
