package cmd

import (
	"testing"

	"github.com/etnz/estate"
	"github.com/google/subcommands"
)

func TestGameFlow(t *testing.T) {
	filename := useScenario(t, "")

	mustRun(t, &initCmd{}, "-cash", "1,000,000", "-salary", "200000", "-max-borrowing", "1500000")
	mustRun(t, &openTrustCmd{}, "-m", "growth")
	mustRun(t, &buyCmd{}, "-c", "commercial", "-n", "Shop", "-m", "first")
	mustRun(t, &advanceCmd{}, "-q", "4")
	mustRun(t, &payDownCmd{}, "-p", "Shop", "-a", "10000")
	mustRun(t, &trustSettingsCmd{}, "-t", "Trust 1", "-name", "Family")
	mustRun(t, &propertySettingsCmd{}, "-p", "Shop", "-rate", "5.5")
	mustRun(t, &settingsCmd{}, "-savings", "25")

	if got, want := len(lines(t, filename)), 8; got != want {
		t.Fatalf("scenario has %d lines, want %d", got, want)
	}

	_, s, err := replay()
	if err != nil {
		t.Fatalf("replay() unexpected error: %v", err)
	}
	if got, want := s.Now.String(), "Y1 Q1"; got != want {
		t.Errorf("now = %q, want %q", got, want)
	}
	if got, want := s.SavingsRate, estate.Percent(25); !got.Equal(want) {
		t.Errorf("savings rate = %v, want %v", got, want)
	}
	trust, p, err := s.ResolveProperty("Family", "Shop")
	if err != nil {
		t.Fatalf("ResolveProperty() unexpected error: %v", err)
	}
	if got, want := p.Loan, estate.M(640000); !got.Equal(want) {
		t.Errorf("loan = %v, want %v", got, want)
	}
	if got, want := p.InterestRate, estate.Percent(5.5); !got.Equal(want) {
		t.Errorf("rate = %v, want %v", got, want)
	}
	if got, want := trust.Name, "Family"; got != want {
		t.Errorf("trust name = %q, want %q", got, want)
	}

	out, err := query(s, "$.summary.properties")
	if err != nil {
		t.Fatalf("query() unexpected error: %v", err)
	}
	if out != "1" {
		t.Errorf("query = %q, want %q", out, "1")
	}
	out, err = query(s, "$.trusts[0].properties[0].name")
	if err != nil {
		t.Fatalf("query() unexpected error: %v", err)
	}
	if out != `"Shop"` {
		t.Errorf("query = %q, want %q", out, `"Shop"`)
	}

	mustRun(t, &sellCmd{}, "-p", "Shop", "-tax", "45")
	_, s, err = replay()
	if err != nil {
		t.Fatalf("replay() unexpected error: %v", err)
	}
	if got := s.PropertyCount(); got != 0 {
		t.Errorf("PropertyCount() = %d after the sale, want 0", got)
	}
}

func TestRejectedCommandIsNotAppended(t *testing.T) {
	filename := useScenario(t, "")
	mustRun(t, &initCmd{})
	mustRun(t, &openTrustCmd{})

	if status := run(t, &buyCmd{}, "-price", "5000000"); status != subcommands.ExitFailure {
		t.Errorf("buy status = %v, want failure", status)
	}
	if status := run(t, &sellCmd{}, "-p", "nowhere"); status != subcommands.ExitFailure {
		t.Errorf("sell status = %v, want failure", status)
	}
	if got, want := len(lines(t, filename)), 2; got != want {
		t.Errorf("scenario has %d lines, want %d", got, want)
	}
}

func TestInvalidFlags(t *testing.T) {
	useScenario(t, "")
	mustRun(t, &initCmd{})

	tests := []struct {
		name string
		cmd  subcommands.Command
		args []string
	}{
		{"no quarter", &advanceCmd{}, []string{"-q", "0"}},
		{"unknown category", &buyCmd{}, []string{"-c", "castle"}},
		{"bad price", &buyCmd{}, []string{"-price", "lots"}},
		{"missing property", &sellCmd{}, nil},
		{"tax above 100", &sellCmd{}, []string{"-p", "IP 1", "-tax", "120"}},
		{"bad discount", &sellCmd{}, []string{"-p", "IP 1", "-discount", "maybe"}},
		{"amount and target", &refinanceCmd{}, []string{"-p", "IP 1", "-a", "1000", "-target-lvr", "80"}},
		{"neither amount nor target", &refinanceCmd{}, []string{"-p", "IP 1"}},
		{"no pay down amount", &payDownCmd{}, []string{"-p", "IP 1"}},
		{"empty settings", &settingsCmd{}, nil},
		{"empty trust settings", &trustSettingsCmd{}, []string{"-t", "Trust 1"}},
		{"empty property settings", &propertySettingsCmd{}, []string{"-p", "IP 1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if status := run(t, tc.cmd, tc.args...); status != subcommands.ExitUsageError {
				t.Errorf("status = %v, want usage error", status)
			}
		})
	}
}

func TestInit_Existing(t *testing.T) {
	filename := useScenario(t, "")
	mustRun(t, &initCmd{})
	mustRun(t, &openTrustCmd{})

	if status := run(t, &initCmd{}); status != subcommands.ExitFailure {
		t.Errorf("second init status = %v, want failure", status)
	}
	mustRun(t, &initCmd{}, "-f", "-cash", "50000")
	if got, want := len(lines(t, filename)), 1; got != want {
		t.Errorf("scenario has %d lines after init -f, want %d", got, want)
	}
}

func TestBuy_DefaultTrust(t *testing.T) {
	useScenario(t, "")
	mustRun(t, &initCmd{}, "-cash", "2000000")

	if status := run(t, &buyCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("buy without trust status = %v, want usage error", status)
	}
	mustRun(t, &openTrustCmd{})
	mustRun(t, &openTrustCmd{})
	if status := run(t, &buyCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("buy with two trusts status = %v, want usage error", status)
	}
	mustRun(t, &buyCmd{}, "-t", "Trust 2")

	_, s, err := replay()
	if err != nil {
		t.Fatalf("replay() unexpected error: %v", err)
	}
	if got, want := len(s.Trusts[1].Properties), 1; got != want {
		t.Errorf("Trust 2 holds %d properties, want %d", got, want)
	}
}

func TestReports(t *testing.T) {
	useScenario(t, "")
	mustRun(t, &initCmd{}, "-cash", "1000000")
	mustRun(t, &openTrustCmd{})
	mustRun(t, &buyCmd{})
	mustRun(t, &advanceCmd{}, "-q", "8")

	for _, c := range []subcommands.Command{&summaryCmd{}, &historyCmd{}, &logCmd{}} {
		mustRun(t, c)
	}
	mustRun(t, &quoteBuyCmd{}, "-c", "residential-cashflow")
	mustRun(t, &quoteSaleCmd{}, "-p", "IP 1")
	mustRun(t, &quoteRefinanceCmd{}, "-p", "IP 1", "-target-lvr", "80")
	mustRun(t, &topicCmd{}, "rules")

	if status := run(t, &quoteSaleCmd{}, "-p", "IP 9"); status != subcommands.ExitFailure {
		t.Errorf("quote-sale of a missing property status = %v, want failure", status)
	}
	if status := run(t, &queryCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("query without a path status = %v, want usage error", status)
	}
}

func TestMissingScenario(t *testing.T) {
	useScenario(t, "")
	if status := run(t, &summaryCmd{}); status != subcommands.ExitFailure {
		t.Errorf("summary status = %v, want failure", status)
	}
}
