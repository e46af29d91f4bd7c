package estate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// moneyComparer compares Money by value, ignoring how it is persisted.
var moneyComparer = cmp.Comparer(func(a, b Money) bool { return a.Equal(b) })

// stateOptions are the cmp options to compare States.
var stateOptions = cmp.Options{cmp.AllowUnexported(State{}), moneyComparer}

// newGame returns a State after the usual first moves: $1M cash, $200k
// salary saving 20%, $1.5M borrowing per trust and one trust opened.
func newGame(t *testing.T) (State, Trust) {
	t.Helper()
	s := StartSimulation(M(200000), 20, M(1000000), M(1500000))
	s, err := OpenTrust(s)
	if err != nil {
		t.Fatalf("OpenTrust() unexpected error: %v", err)
	}
	return s, s.Trusts[0]
}

// mustBuy buys a property from its category preset, with the given price.
func mustBuy(t *testing.T, s State, trustID string, c Category, price int) (State, Property) {
	t.Helper()
	p := c.Preset()
	p.Price = M(price)
	next, err := BuyProperty(s, trustID, p.PropertyParams, p.LVR, p.OtherCosts)
	if err != nil {
		t.Fatalf("BuyProperty(%v) unexpected error: %v", price, err)
	}
	props := next.Trusts[next.trustIndex(trustID)].Properties
	return next, props[len(props)-1]
}

func assertMoney(t *testing.T, name string, got, want Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %v, want %v", name, got.Decimal(), want.Decimal())
	}
}
