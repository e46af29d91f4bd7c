package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/estate/renderer"
	"github.com/google/subcommands"
)

// --- Summary Command ---

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the dashboard: cash, net worth, trusts and properties" }
func (*summaryCmd) Usage() string {
	return `esim summary

  Displays the dashboard of the current state of the scenario.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderDashboard(s, *currency))
	return subcommands.ExitSuccess
}

// --- History Command ---

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the net worth history" }
func (*historyCmd) Usage() string {
	return `esim history

  Displays the net worth, cash and debt recorded at every quarter.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(s, *currency))
	return subcommands.ExitSuccess
}

// --- Log Command ---

type logCmd struct{}

func (*logCmd) Name() string { return "log" }
func (*logCmd) Synopsis() string {
	return "display every command of the scenario and its impact on net worth"
}
func (*logCmd) Usage() string {
	return `esim log

  Replays the scenario and displays each command with the period, net worth
  and cash it leads to. The log stops at the first rejected command.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sc, err := DecodeScenario()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LogMarkdown(sc, *currency))
	return subcommands.ExitSuccess
}
