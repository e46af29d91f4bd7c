package estate

import "slices"

// Trust is a borrowing container: it owns properties and caps their total debt.
type Trust struct {
	ID           string
	Name         string
	MaxBorrowing Money
	Properties   []Property // in purchase order
}

// Property returns the property with this id.
func (t Trust) Property(id string) (Property, bool) {
	i := t.propertyIndex(id)
	if i < 0 {
		return Property{}, false
	}
	return t.Properties[i], true
}

func (t Trust) propertyIndex(id string) int {
	return slices.IndexFunc(t.Properties, func(p Property) bool { return p.ID == id })
}

// Debt returns the sum of all loans in the trust.
func (t Trust) Debt() Money {
	total := M(0)
	for _, p := range t.Properties {
		total = total.Add(p.Loan)
	}
	return total
}

// Value returns the sum of all property values in the trust.
func (t Trust) Value() Money {
	total := M(0)
	for _, p := range t.Properties {
		total = total.Add(p.Value)
	}
	return total
}

// Headroom returns how much can still be borrowed before reaching MaxBorrowing, never negative.
func (t Trust) Headroom() Money { return MaxMoney(M(0), t.MaxBorrowing.Sub(t.Debt())) }

// CapacityUsed returns the trust debt as a percentage of its MaxBorrowing.
// A trust with no capacity is 100% used as soon as it has debt.
func (t Trust) CapacityUsed() Percent {
	debt := t.Debt()
	if t.MaxBorrowing.IsZero() {
		if debt.IsPositive() {
			return 100
		}
		return 0
	}
	return debt.Ratio(t.MaxBorrowing)
}

// clone returns a deep copy of the trust.
func (t Trust) clone() Trust {
	t.Properties = slices.Clone(t.Properties)
	return t
}
