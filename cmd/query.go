package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/estate"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "extract values from the current state with a JSONPath" }
func (*queryCmd) Usage() string {
	return `esim query <jsonpath>

  Replays the scenario and evaluates a JSONPath expression on the JSON
  representation of the state. Scalars are printed as JSON, so strings are
  quoted.

Usage Examples:
$ esim query '$.summary.netWorth'
$ esim query '$.trusts[*].properties[*].name'

`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	out, err := query(s, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(out)
	return subcommands.ExitSuccess
}

// query evaluates path on the JSON representation of s.
func query(s estate.State, path string) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding state: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return "", fmt.Errorf("decoding state: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("evaluating %q: %w", path, err)
	}
	out, err := json.MarshalIndent(jval, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result of %q: %w", path, err)
	}
	return string(out), nil
}
