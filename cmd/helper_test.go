package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// useScenario points the scenario flag to a temporary file holding content,
// or to a missing file when content is empty.
func useScenario(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "scenario.jsonl")
	if content != "" {
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write scenario: %v", err)
		}
	}
	old := scenarioFile
	scenarioFile = &filename
	t.Cleanup(func() { scenarioFile = old })
	return filename
}

// run parses args with the flags of c, then executes it.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: parsing %q: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

// mustRun is like run but fails the test unless the command succeeds.
func mustRun(t *testing.T, c subcommands.Command, args ...string) {
	t.Helper()
	if status := run(t, c, args...); status != subcommands.ExitSuccess {
		t.Fatalf("%s %q: status = %v, want success", c.Name(), args, status)
	}
}

// lines returns the non blank lines of a file.
func lines(t *testing.T, filename string) []string {
	t.Helper()
	content, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", filename, err)
	}
	var res []string
	for _, l := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(l) != "" {
			res = append(res, l)
		}
	}
	return res
}
