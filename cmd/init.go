package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/estate"
	"github.com/google/subcommands"
)

type initCmd struct {
	Salary       string `flag:"salary" validate:"required"`
	SavingsRate  string `flag:"savings" validate:"required"`
	Cash         string `flag:"cash" validate:"required"`
	MaxBorrowing string `flag:"max-borrowing" validate:"required"`
	Force        bool
	Memo         string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new scenario" }
func (*initCmd) Usage() string {
	return `esim init [-salary <amount>] [-savings <percent>] [-cash <amount>] [-max-borrowing <amount>] [-f]

  Creates a new scenario file whose first command starts the simulation.
  An existing scenario is only overwritten with -f.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.Salary, "salary", "150000", "Yearly salary")
	f.StringVar(&c.SavingsRate, "savings", "20", "Share of the salary saved, in percent")
	f.StringVar(&c.Cash, "cash", "200000", "Starting cash")
	f.StringVar(&c.MaxBorrowing, "max-borrowing", "1000000", "Borrowing capacity of each new trust")
	f.BoolVar(&c.Force, "f", false, "Overwrite an existing scenario")
	f.StringVar(&c.Memo, "m", "", "An optional note")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !checkFlags(f, c) {
		return subcommands.ExitUsageError
	}
	salary, err := estate.ParseAmount(c.Salary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -salary: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate, err := estate.ParsePercent(c.SavingsRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -savings: %v\n", err)
		return subcommands.ExitUsageError
	}
	cash, err := estate.ParseAmount(c.Cash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -cash: %v\n", err)
		return subcommands.ExitUsageError
	}
	maxBorrowing, err := estate.ParseAmount(c.MaxBorrowing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -max-borrowing: %v\n", err)
		return subcommands.ExitUsageError
	}

	filename := *scenarioFile
	if _, err := os.Stat(filename); err == nil && !c.Force {
		fmt.Fprintf(os.Stderr, "Error: scenario %q already exists, use -f to overwrite it\n", filename)
		return subcommands.ExitFailure
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error checking scenario %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	start := estate.NewStart(c.Memo, salary, rate, cash, maxBorrowing)
	if _, err := start.Apply(estate.State{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fl, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scenario file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer fl.Close()
	if err := estate.EncodeCommand(fl, start); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to scenario file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	logger().Infow("scenario created", "file", filename)
	fmt.Printf("Successfully created %s\n", filename)
	return subcommands.ExitSuccess
}
