package estate

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/etnz/estate/calendar"
	"github.com/google/uuid"
)

// HistoryEntry is a point of the net worth history.
type HistoryEntry struct {
	Label    string
	NetWorth Money
	Cash     Money
	Debt     Money
}

// State is the whole simulation at a point in time.
//
// A State is a value: engine functions never modify the State they receive,
// they return a new one. Holding on to an old State is safe, which gives undo
// and replay for free.
type State struct {
	Now                  calendar.Month
	Cash                 Money
	Salary               Money   // yearly, drives savings
	SavingsRate          Percent // share of the salary saved
	MaxBorrowingPerTrust Money   // default cap given to new trusts
	Trusts               []Trust
	History              []HistoryEntry // one entry per quarter, append only
	SetupComplete        bool

	seq uint64 // last issued identifier
}

// StartSimulation creates the initial State of a game.
func StartSimulation(salary Money, savingsRate Percent, cash, maxBorrowingPerTrust Money) State {
	return State{
		Cash:                 cash,
		Salary:               salary,
		SavingsRate:          savingsRate,
		MaxBorrowingPerTrust: maxBorrowingPerTrust,
		History:              []HistoryEntry{{Label: "Start", NetWorth: cash, Cash: cash, Debt: M(0)}},
		SetupComplete:        true,
	}
}

// Year returns the simulated year.
func (s State) Year() int { return s.Now.Year() }

// Month returns the simulated month within the year, in [0, 11].
func (s State) Month() int { return s.Now.MonthOfYear() }

// Trust returns the trust with this id.
func (s State) Trust(id string) (Trust, bool) {
	i := s.trustIndex(id)
	if i < 0 {
		return Trust{}, false
	}
	return s.Trusts[i], true
}

func (s State) trustIndex(id string) int {
	return slices.IndexFunc(s.Trusts, func(t Trust) bool { return t.ID == id })
}

// Property returns the property with this id in the trust with this id.
func (s State) Property(trustID, propertyID string) (Property, error) {
	t, ok := s.Trust(trustID)
	if !ok {
		return Property{}, fmt.Errorf("%w: trust %q", ErrNotFound, trustID)
	}
	p, ok := t.Property(propertyID)
	if !ok {
		return Property{}, fmt.Errorf("%w: property %q in trust %q", ErrNotFound, propertyID, t.Name)
	}
	return p, nil
}

// ResolveTrust finds a trust by id, or else by name. A name shared by
// several trusts is ambiguous and resolves to nothing.
func (s State) ResolveTrust(ref string) (Trust, error) {
	if t, ok := s.Trust(ref); ok {
		return t, nil
	}
	var found []Trust
	for _, t := range s.Trusts {
		if t.Name == ref {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return Trust{}, fmt.Errorf("%w: no trust %q", ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return Trust{}, fmt.Errorf("%w: %d trusts are named %q, use an id", ErrNotFound, len(found), ref)
	}
}

// ResolveProperty finds a property by id or name. An empty trustRef searches all trusts.
func (s State) ResolveProperty(trustRef, propertyRef string) (Trust, Property, error) {
	trusts := s.Trusts
	if trustRef != "" {
		t, err := s.ResolveTrust(trustRef)
		if err != nil {
			return Trust{}, Property{}, err
		}
		trusts = []Trust{t}
	}
	type match struct {
		t Trust
		p Property
	}
	var byID, byName []match
	for _, t := range trusts {
		for _, p := range t.Properties {
			if p.ID == propertyRef {
				byID = append(byID, match{t, p})
			} else if p.Name == propertyRef {
				byName = append(byName, match{t, p})
			}
		}
	}
	if len(byID) == 1 {
		return byID[0].t, byID[0].p, nil
	}
	switch len(byName) {
	case 0:
		return Trust{}, Property{}, fmt.Errorf("%w: no property %q", ErrNotFound, propertyRef)
	case 1:
		return byName[0].t, byName[0].p, nil
	default:
		return Trust{}, Property{}, fmt.Errorf("%w: %d properties are named %q, use an id", ErrNotFound, len(byName), propertyRef)
	}
}

// SuggestName proposes a name for a new property: "IP 3" or "Commercial 1".
func (s State) SuggestName(c Category) string {
	count := 0
	for _, t := range s.Trusts {
		for _, p := range t.Properties {
			if p.Category.IsResidential() == c.IsResidential() {
				count++
			}
		}
	}
	if c.IsResidential() {
		return fmt.Sprintf("IP %d", count+1)
	}
	return fmt.Sprintf("Commercial %d", count+1)
}

// clone returns a deep copy of the state, safe to modify.
func (s State) clone() State {
	s.Trusts = slices.Clone(s.Trusts)
	for i := range s.Trusts {
		s.Trusts[i] = s.Trusts[i].clone()
	}
	s.History = slices.Clone(s.History)
	return s
}

// idSpace is the namespace of generated identifiers.
var idSpace = uuid.MustParse("6f1c54a2-8a43-4f0e-9a52-3c3d1f0b7e41")

// newID issues a new identifier, unique within this state and its descendants.
// Replaying the same commands issues the same identifiers.
func (s *State) newID() string {
	s.seq++
	return uuid.NewSHA1(idSpace, []byte(strconv.FormatUint(s.seq, 10))).String()
}
