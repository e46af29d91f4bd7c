package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/estate"
	"github.com/google/subcommands"
)

// --- Settings Command ---

type settingsCmd struct {
	Salary       string `flag:"salary" validate:"required_without_all=SavingsRate MaxBorrowing"`
	SavingsRate  string `flag:"savings"`
	MaxBorrowing string `flag:"max-borrowing"`
	memo         string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "change the salary, savings rate or default borrowing capacity" }
func (*settingsCmd) Usage() string {
	return `esim settings [-salary <amount>] [-savings <percent>] [-max-borrowing <amount>] [-m <memo>]

  Changes the global settings. The borrowing capacity only applies to trusts
  opened afterwards, see trust-settings for existing trusts.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.Salary, "salary", "", "Yearly salary")
	f.StringVar(&c.SavingsRate, "savings", "", "Share of the salary saved, in percent")
	f.StringVar(&c.MaxBorrowing, "max-borrowing", "", "Borrowing capacity of new trusts")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *settingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !checkFlags(f, c) {
		return subcommands.ExitUsageError
	}
	var g estate.GlobalSettings
	var err error
	if g.Salary, err = optionalAmount("salary", c.Salary); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if g.SavingsRate, err = optionalPercent("savings", c.SavingsRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if g.MaxBorrowingPerTrust, err = optionalAmount("max-borrowing", c.MaxBorrowing); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	return appendCommand(s, estate.NewSettings(c.memo, g))
}

// --- Trust Settings Command ---

type trustSettingsCmd struct {
	Trust        string `flag:"t" validate:"required"`
	NewName      string `flag:"name" validate:"required_without=MaxBorrowing"`
	MaxBorrowing string `flag:"max-borrowing"`
	memo         string
}

func (*trustSettingsCmd) Name() string     { return "trust-settings" }
func (*trustSettingsCmd) Synopsis() string { return "rename a trust or change its borrowing capacity" }
func (*trustSettingsCmd) Usage() string {
	return `esim trust-settings -t <trust> [-name <name>] [-max-borrowing <amount>] [-m <memo>]

  Changes the settings of one trust.
`
}

func (c *trustSettingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.Trust, "t", "", "Trust name or id")
	f.StringVar(&c.NewName, "name", "", "New trust name")
	f.StringVar(&c.MaxBorrowing, "max-borrowing", "", "Borrowing capacity of the trust")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *trustSettingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !checkFlags(f, c) {
		return subcommands.ExitUsageError
	}
	var ts estate.TrustSettings
	if c.NewName != "" {
		ts.Name = &c.NewName
	}
	var err error
	if ts.MaxBorrowing, err = optionalAmount("max-borrowing", c.MaxBorrowing); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	return appendCommand(s, estate.NewTrustSettings(c.memo, c.Trust, ts))
}

// --- Property Settings Command ---

type propertySettingsCmd struct {
	propertyFlags
	NewName      string `flag:"name" validate:"required_without_all=InterestRate GrowthRate YieldRate"`
	InterestRate string `flag:"rate"`
	GrowthRate   string `flag:"growth"`
	YieldRate    string `flag:"yield"`
	memo         string
}

func (*propertySettingsCmd) Name() string { return "property-settings" }
func (*propertySettingsCmd) Synopsis() string {
	return "rename a property or change its interest, growth or yield rate"
}
func (*propertySettingsCmd) Usage() string {
	return `esim property-settings -p <property> [-t <trust>] [-name <name>] [-rate <percent>] [-growth <percent>] [-yield <percent>] [-m <memo>]

  Changes the settings of one property. Rates apply from the next quarter.
`
}

func (c *propertySettingsCmd) SetFlags(f *flag.FlagSet) {
	c.propertyFlags.SetFlags(f)
	f.StringVar(&c.NewName, "name", "", "New property name")
	f.StringVar(&c.InterestRate, "rate", "", "Yearly interest rate, in percent")
	f.StringVar(&c.GrowthRate, "growth", "", "Yearly capital growth, in percent")
	f.StringVar(&c.YieldRate, "yield", "", "Yearly rental yield, in percent")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *propertySettingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !checkFlags(f, c) {
		return subcommands.ExitUsageError
	}
	var ps estate.PropertySettings
	if c.NewName != "" {
		ps.Name = &c.NewName
	}
	var err error
	if ps.InterestRate, err = optionalPercent("rate", c.InterestRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if ps.GrowthRate, err = optionalPercent("growth", c.GrowthRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if ps.YieldRate, err = optionalPercent("yield", c.YieldRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	return appendCommand(s, estate.NewPropertySettings(c.memo, c.Trust, c.Property, ps))
}
