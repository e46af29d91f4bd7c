package estate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpenTrust(t *testing.T) {
	s := StartSimulation(M(100000), 10, M(10000), M(2000000))
	s, err := OpenTrust(s)
	if err != nil {
		t.Fatalf("OpenTrust() unexpected error: %v", err)
	}
	s, err = OpenTrust(s)
	if err != nil {
		t.Fatalf("OpenTrust() unexpected error: %v", err)
	}

	assertMoney(t, "Cash", s.Cash, M(4000))
	if got, want := len(s.Trusts), 2; got != want {
		t.Fatalf("len(Trusts) = %d, want %d", got, want)
	}
	if got, want := s.Trusts[1].Name, "Trust 2"; got != want {
		t.Errorf("Trusts[1].Name = %q, want %q", got, want)
	}
	assertMoney(t, "MaxBorrowing", s.Trusts[1].MaxBorrowing, M(2000000))
	if s.Trusts[0].ID == s.Trusts[1].ID {
		t.Errorf("trusts share the same id %q", s.Trusts[0].ID)
	}

	poor := StartSimulation(M(0), 0, M(2999), M(0))
	if next, err := OpenTrust(poor); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("OpenTrust() error = %v, want %v", err, ErrInsufficientFunds)
	} else if diff := cmp.Diff(poor, next, stateOptions); diff != "" {
		t.Errorf("OpenTrust() changed the state on rejection (-want +got):\n%s", diff)
	}
}

func TestBuyProperty(t *testing.T) {
	s, trust := newGame(t)
	before := s.NetWorth()

	p := ResidentialGrowth.Preset()
	s, err := BuyProperty(s, trust.ID, p.PropertyParams, p.LVR, p.OtherCosts)
	if err != nil {
		t.Fatalf("BuyProperty() unexpected error: %v", err)
	}

	got := s.Trusts[0].Properties[0]
	if got.Name != "IP 1" {
		t.Errorf("Name = %q, want %q", got.Name, "IP 1")
	}
	assertMoney(t, "Loan", got.Loan, M(446600)) // 440,000 + 1.5% LMI
	assertMoney(t, "Value", got.Value, M(500000))
	assertMoney(t, "OriginalPrice", got.OriginalPrice, M(500000))
	assertMoney(t, "Cash", s.Cash, M(897000))

	// Buying only loses the LMI and the other costs.
	assertMoney(t, "net worth loss", before.Sub(s.NetWorth()), M(46600))

	s, next := mustBuy(t, s, trust.ID, ResidentialCashflow, 400000)
	if next.Name != "IP 2" {
		t.Errorf("Name = %q, want %q", next.Name, "IP 2")
	}
	if next.ID == got.ID {
		t.Errorf("properties share the same id %q", got.ID)
	}
}

func TestBuyProperty_Rejections(t *testing.T) {
	game, trust := newGame(t)
	capped, err := UpdateTrustSettings(game, trust.ID, TrustSettings{MaxBorrowing: ptr(M(400000))})
	if err != nil {
		t.Fatalf("UpdateTrustSettings() unexpected error: %v", err)
	}
	poor := StartSimulation(M(0), 0, M(53000), M(1000000))
	poor, err = OpenTrust(poor)
	if err != nil {
		t.Fatalf("OpenTrust() unexpected error: %v", err)
	}

	preset := ResidentialGrowth.Preset()
	testCases := []struct {
		name    string
		state   State
		trust   string
		price   Money
		lvr     Percent
		wantErr error
	}{
		{name: "unknown trust", state: game, trust: "nope", price: preset.Price, lvr: 88, wantErr: ErrNotFound},
		{name: "zero price", state: game, trust: trust.ID, price: M(0), lvr: 88, wantErr: ErrInvalidAmount},
		{name: "negative LVR", state: game, trust: trust.ID, price: preset.Price, lvr: -1, wantErr: ErrInvalidAmount},
		{name: "above LMI ceiling", state: game, trust: trust.ID, price: preset.Price, lvr: 96, wantErr: ErrExcessiveRisk},
		{name: "not enough cash", state: poor, trust: poor.Trusts[0].ID, price: preset.Price, lvr: 88, wantErr: ErrInsufficientFunds},
		{name: "trust capacity", state: capped, trust: trust.ID, price: preset.Price, lvr: 88, wantErr: ErrBorrowingCapacityExceeded},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := preset.PropertyParams
			params.Price = tc.price
			next, err := BuyProperty(tc.state, tc.trust, params, tc.lvr, preset.OtherCosts)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("BuyProperty() error = %v, want %v", err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.state, next, stateOptions); diff != "" {
				t.Errorf("BuyProperty() changed the state on rejection (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuyProperty_CapacityBoundary(t *testing.T) {
	game, trust := newGame(t)
	// the loan including LMI exactly fills the trust
	s, err := UpdateTrustSettings(game, trust.ID, TrustSettings{MaxBorrowing: ptr(M(446600))})
	if err != nil {
		t.Fatalf("UpdateTrustSettings() unexpected error: %v", err)
	}
	s, _ = mustBuy(t, s, trust.ID, ResidentialGrowth, 500000)
	assertMoney(t, "Headroom", s.Trusts[0].Headroom(), M(0))
	if got, want := s.Trusts[0].CapacityUsed(), Percent(100); !got.Equal(want) {
		t.Errorf("CapacityUsed() = %v, want %v", got, want)
	}
}

func TestSellProperty(t *testing.T) {
	s, trust := newGame(t)
	s, p := mustBuy(t, s, trust.ID, ResidentialGrowth, 500000)

	sold, err := SellProperty(s, trust.ID, p.ID, 30, false)
	if err != nil {
		t.Fatalf("SellProperty() unexpected error: %v", err)
	}
	// price × 98% − loan, there is no gain to tax
	assertMoney(t, "Cash", sold.Cash, s.Cash.Add(M(43400)))
	if got := sold.PropertyCount(); got != 0 {
		t.Errorf("PropertyCount() = %d, want 0", got)
	}
	assertMoney(t, "TotalDebt", sold.TotalDebt(), M(0))

	if _, err := SellProperty(sold, trust.ID, p.ID, 30, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("SellProperty() twice error = %v, want %v", err, ErrNotFound)
	}
}

func TestSellProperty_UncoveredLoss(t *testing.T) {
	s, trust := newGame(t)
	s.Cash = M(10000)
	s.Trusts[0].Properties = []Property{{ID: "p", Name: "Underwater", Value: M(100000), OriginalPrice: M(150000), Loan: M(150000)}}

	next, err := SellProperty(s, trust.ID, "p", 30, false)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("SellProperty() error = %v, want %v", err, ErrInsufficientFunds)
	}
	if diff := cmp.Diff(s, next, stateOptions); diff != "" {
		t.Errorf("SellProperty() changed the state on rejection (-want +got):\n%s", diff)
	}

	s.Cash = M(52000)
	next, err = SellProperty(s, trust.ID, "p", 30, false)
	if err != nil {
		t.Fatalf("SellProperty() unexpected error: %v", err)
	}
	assertMoney(t, "Cash", next.Cash, M(0))
}

func TestQuoteSale(t *testing.T) {
	p := Property{Value: M(600000), OriginalPrice: M(500000), Loan: M(400000)}

	q := QuoteSale(p, 30, true)
	assertMoney(t, "SellingCosts", q.SellingCosts, M(12000))
	assertMoney(t, "CapitalGain", q.CapitalGain, M(88000))
	assertMoney(t, "TaxableAmount", q.TaxableAmount, M(44000))
	assertMoney(t, "Tax", q.Tax, M(13200))
	assertMoney(t, "NetProceeds", q.NetProceeds, M(174800))

	q = QuoteSale(p, 30, false)
	assertMoney(t, "Tax", q.Tax, M(26400))
	assertMoney(t, "NetProceeds", q.NetProceeds, M(161600))

	// a capital loss is never taxed
	p.Value = M(450000)
	q = QuoteSale(p, 30, true)
	assertMoney(t, "CapitalGain", q.CapitalGain, M(-59000))
	assertMoney(t, "Tax", q.Tax, M(0))
}

func TestPayDownLoan(t *testing.T) {
	s, trust := newGame(t)
	s, p := mustBuy(t, s, trust.ID, ResidentialGrowth, 500000)

	paid, err := PayDownLoan(s, trust.ID, p.ID, M(46600))
	if err != nil {
		t.Fatalf("PayDownLoan() unexpected error: %v", err)
	}
	assertMoney(t, "Loan", paid.Trusts[0].Properties[0].Loan, M(400000))
	assertMoney(t, "Cash", paid.Cash, M(850400))
	assertMoney(t, "NetWorth", paid.NetWorth(), s.NetWorth())

	for _, amount := range []Money{M(0), M(-1), M(446601)} {
		if _, err := PayDownLoan(s, trust.ID, p.ID, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("PayDownLoan(%v) error = %v, want %v", amount.Decimal(), err, ErrInvalidAmount)
		}
	}

	s.Cash = M(1000)
	_, err = PayDownLoan(s, trust.ID, p.ID, M(2000))
	if !errors.Is(err, ErrInsufficientFunds) || !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("PayDownLoan() above cash error = %v, want both %v and %v", err, ErrInsufficientFunds, ErrInvalidAmount)
	}
}

// refinanceGame returns a game with a $1M commercial property carrying a $500k loan.
func refinanceGame(t *testing.T) (State, Trust, Property) {
	t.Helper()
	s, trust := newGame(t)
	s, p := mustBuy(t, s, trust.ID, Commercial, 1000000)
	s, err := PayDownLoan(s, trust.ID, p.ID, M(150000))
	if err != nil {
		t.Fatalf("PayDownLoan() unexpected error: %v", err)
	}
	return s, s.Trusts[0], s.Trusts[0].Properties[0]
}

func TestRefinance(t *testing.T) {
	s, trust, p := refinanceGame(t)
	assertMoney(t, "Cash", s.Cash, M(437000))

	q, err := QuoteRefinance(trust, p, M(380000))
	if err != nil {
		t.Fatalf("QuoteRefinance() unexpected error: %v", err)
	}
	assertMoney(t, "MaxLoan", q.MaxLoan, M(880000))
	assertMoney(t, "MaxReleasable", q.MaxReleasable, M(380000))
	assertMoney(t, "LMI", q.LMI, M(13200))

	t.Run("up to the ceiling", func(t *testing.T) {
		next, err := Refinance(s, trust.ID, p.ID, M(380000))
		if err != nil {
			t.Fatalf("Refinance() unexpected error: %v", err)
		}
		assertMoney(t, "Loan", next.Trusts[0].Properties[0].Loan, M(893200))
		assertMoney(t, "Cash", next.Cash, M(817000))
	})
	t.Run("without LMI", func(t *testing.T) {
		next, err := Refinance(s, trust.ID, p.ID, M(300000))
		if err != nil {
			t.Fatalf("Refinance() unexpected error: %v", err)
		}
		assertMoney(t, "Loan", next.Trusts[0].Properties[0].Loan, M(800000))
		assertMoney(t, "NetWorth", next.NetWorth(), s.NetWorth())
	})
	t.Run("above the ceiling", func(t *testing.T) {
		next, err := Refinance(s, trust.ID, p.ID, M(380001))
		if !errors.Is(err, ErrCapacityExceeded) {
			t.Fatalf("Refinance() error = %v, want %v", err, ErrCapacityExceeded)
		}
		if diff := cmp.Diff(s, next, stateOptions); diff != "" {
			t.Errorf("Refinance() changed the state on rejection (-want +got):\n%s", diff)
		}
	})
	t.Run("trust headroom", func(t *testing.T) {
		capped, err := UpdateTrustSettings(s, trust.ID, TrustSettings{MaxBorrowing: ptr(M(600000))})
		if err != nil {
			t.Fatalf("UpdateTrustSettings() unexpected error: %v", err)
		}
		if _, err := Refinance(capped, trust.ID, p.ID, M(100001)); !errors.Is(err, ErrCapacityExceeded) {
			t.Errorf("Refinance() error = %v, want %v", err, ErrCapacityExceeded)
		}
		if _, err := Refinance(capped, trust.ID, p.ID, M(100000)); err != nil {
			t.Errorf("Refinance() unexpected error: %v", err)
		}
	})
	t.Run("not positive", func(t *testing.T) {
		if _, err := Refinance(s, trust.ID, p.ID, M(0)); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Refinance() error = %v, want %v", err, ErrInvalidAmount)
		}
	})
}

func TestReleaseForTargetLVR(t *testing.T) {
	_, trust, p := refinanceGame(t)
	assertMoney(t, "target 80", ReleaseForTargetLVR(trust, p, 80), M(300000))
	assertMoney(t, "target 88", ReleaseForTargetLVR(trust, p, 88), M(380000))
	assertMoney(t, "target 95 capped", ReleaseForTargetLVR(trust, p, 95), M(380000))
	assertMoney(t, "target 40", ReleaseForTargetLVR(trust, p, 40), M(0))
}

func TestSettings(t *testing.T) {
	s, trust := newGame(t)

	s = UpdateGlobalSettings(s, GlobalSettings{MaxBorrowingPerTrust: ptr(M(2000000)), SavingsRate: ptr(Percent(50))})
	assertMoney(t, "existing trust cap", s.Trusts[0].MaxBorrowing, M(1500000))
	assertMoney(t, "Salary", s.Salary, M(200000))
	assertMoney(t, "QuarterlySavings", s.QuarterlySavings(), M(25000))

	s, err := OpenTrust(s)
	if err != nil {
		t.Fatalf("OpenTrust() unexpected error: %v", err)
	}
	assertMoney(t, "new trust cap", s.Trusts[1].MaxBorrowing, M(2000000))

	s, err = UpdateTrustSettings(s, trust.ID, TrustSettings{Name: ptr("Growth")})
	if err != nil {
		t.Fatalf("UpdateTrustSettings() unexpected error: %v", err)
	}
	if got, want := s.Trusts[0].Name, "Growth"; got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}

	s, p := mustBuy(t, s, trust.ID, ResidentialGrowth, 500000)
	s, err = UpdatePropertySettings(s, trust.ID, p.ID, PropertySettings{GrowthRate: ptr(Percent(0))})
	if err != nil {
		t.Fatalf("UpdatePropertySettings() unexpected error: %v", err)
	}
	got, err := s.Property(trust.ID, p.ID)
	if err != nil {
		t.Fatalf("Property() unexpected error: %v", err)
	}
	if got.GrowthRate != 0 || got.YieldRate != p.YieldRate {
		t.Errorf("settings = growth %v yield %v, want growth 0 yield %v", got.GrowthRate, got.YieldRate, p.YieldRate)
	}

	if _, err := UpdateTrustSettings(s, "nope", TrustSettings{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateTrustSettings() error = %v, want %v", err, ErrNotFound)
	}
}

func TestPropertySettings_Rates(t *testing.T) {
	s, trust := newGame(t)
	s, p := mustBuy(t, s, trust.ID, Commercial, 1000000)

	testCases := []struct {
		name     string
		settings PropertySettings
	}{
		{name: "growth below the minimum", settings: PropertySettings{GrowthRate: ptr(Percent(-800))}},
		{name: "negative interest", settings: PropertySettings{InterestRate: ptr(Percent(-1))}},
		{name: "negative yield", settings: PropertySettings{YieldRate: ptr(Percent(-0.5))}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := UpdatePropertySettings(s, trust.ID, p.ID, tc.settings)
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("UpdatePropertySettings() error = %v, want %v", err, ErrInvalidAmount)
			}
			if diff := cmp.Diff(s, next, stateOptions); diff != "" {
				t.Errorf("UpdatePropertySettings() changed the state on rejection (-want +got):\n%s", diff)
			}
		})
	}

	params := Commercial.Preset().PropertyParams
	params.GrowthRate = -401
	if _, err := BuyProperty(s, trust.ID, params, 65, M(0)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("BuyProperty() error = %v, want %v", err, ErrInvalidAmount)
	}

	// the steepest accepted fall wipes the value out in a quarter, and no further
	s, err := UpdatePropertySettings(s, trust.ID, p.ID, PropertySettings{GrowthRate: ptr(MinGrowthRate)})
	if err != nil {
		t.Fatalf("UpdatePropertySettings() unexpected error: %v", err)
	}
	for range 2 {
		s = AdvanceQuarter(s)
		assertMoney(t, "Value", s.Trusts[0].Properties[0].Value, M(0))
	}
}

func TestPropertyGrow_NeverNegative(t *testing.T) {
	p := Property{Value: M(1000000), GrowthRate: -800}
	assertMoney(t, "grow()", p.grow(3), M(0))
}

func TestResolve(t *testing.T) {
	s, trust := newGame(t)
	s, p := mustBuy(t, s, trust.ID, ResidentialGrowth, 500000)

	if got, err := s.ResolveTrust("Trust 1"); err != nil || got.ID != trust.ID {
		t.Errorf("ResolveTrust(name) = %v, %v, want %v", got.ID, err, trust.ID)
	}
	if _, got, err := s.ResolveProperty("", "IP 1"); err != nil || got.ID != p.ID {
		t.Errorf("ResolveProperty(name) = %v, %v, want %v", got.ID, err, p.ID)
	}
	if _, got, err := s.ResolveProperty("Trust 1", p.ID); err != nil || got.ID != p.ID {
		t.Errorf("ResolveProperty(id) = %v, %v, want %v", got.ID, err, p.ID)
	}
	if _, _, err := s.ResolveProperty("", "IP 9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolveProperty(unknown) error = %v, want %v", err, ErrNotFound)
	}
}

func TestEngine_DoesNotModifyInput(t *testing.T) {
	s, trust := newGame(t)
	s, p := mustBuy(t, s, trust.ID, ResidentialGrowth, 500000)
	snapshot := s.clone()

	_, _ = PayDownLoan(s, trust.ID, p.ID, M(1000))
	_, _ = Refinance(s, trust.ID, p.ID, M(1000))
	_, _ = SellProperty(s, trust.ID, p.ID, 30, true)
	_ = AdvanceQuarter(s)

	if diff := cmp.Diff(snapshot, s, stateOptions); diff != "" {
		t.Errorf("input state was modified (-want +got):\n%s", diff)
	}
}

func ptr[T any](v T) *T { return &v }
