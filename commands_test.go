package estate

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCommands_NotStarted(t *testing.T) {
	var s State
	cmds := []Command{
		NewOpenTrust(""),
		NewBuy("", "Trust 1", ResidentialGrowth.Preset()),
		NewSell("", "", "IP 1", 30, nil),
		NewPayDown("", "", "IP 1", M(1)),
		NewRefinance("", "", "IP 1", M(1), 0),
		NewAdvance("", 1),
		NewSettings("", GlobalSettings{}),
		NewTrustSettings("", "Trust 1", TrustSettings{}),
		NewPropertySettings("", "", "IP 1", PropertySettings{}),
	}
	for _, cmd := range cmds {
		if _, err := cmd.Apply(s); !errors.Is(err, ErrNotStarted) {
			t.Errorf("%s.Apply() error = %v, want %v", cmd.What(), err, ErrNotStarted)
		}
	}
}

func TestRefinanceCmd_TargetLVR(t *testing.T) {
	s, trust, p := refinanceGame(t)

	cmd := NewRefinance("back to 80%", trust.Name, p.Name, M(0), 80)
	next, err := cmd.Apply(s)
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	assertMoney(t, "Loan", next.Trusts[0].Properties[0].Loan, M(800000))

	data, err := json.Marshal(cmd)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	if got, want := string(data), `{"command":"refinance","memo":"back to 80%","trust":"Trust 1","property":"Commercial 1","targetLvr":80}`; got != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}
}

func TestSellCmd_Discount(t *testing.T) {
	s, trust := newGame(t)
	s, p := mustBuy(t, s, trust.ID, ResidentialGrowth, 500000)

	cmd := NewSell("", "", p.Name, 30, nil)
	if cmd.ApplyDiscount(p, s) {
		t.Errorf("ApplyDiscount() = true for a property held %d months", p.Held(s.Now))
	}
	for range 4 {
		s = AdvanceQuarter(s)
	}
	if !cmd.ApplyDiscount(p, s) {
		t.Errorf("ApplyDiscount() = false for a property held %d months", p.Held(s.Now))
	}
	no := false
	if NewSell("", "", p.Name, 30, &no).ApplyDiscount(p, s) {
		t.Errorf("ApplyDiscount() = true, want the explicit false")
	}
}

func TestSettingsCmd_JSON(t *testing.T) {
	cmd := NewSettings("", GlobalSettings{SavingsRate: ptr(Percent(0)), Salary: ptr(M(150000))})
	data, err := json.Marshal(cmd)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	// a zero rate is a setting, not a missing one
	if got, want := string(data), `{"command":"settings","salary":150000,"savingsRate":0}`; got != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}

	decoded, err := DecodeCommand(data)
	if err != nil {
		t.Fatalf("DecodeCommand() unexpected error: %v", err)
	}
	s := StartSimulation(M(100000), 20, M(0), M(0))
	s, err = decoded.Apply(s)
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	assertMoney(t, "Salary", s.Salary, M(150000))
	if s.SavingsRate != 0 {
		t.Errorf("SavingsRate = %v, want 0", s.SavingsRate)
	}
}
