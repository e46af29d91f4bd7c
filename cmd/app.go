// Package cmd implements the esim command line: every decision is appended
// to a scenario file, and every report replays it.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/etnz/estate"
	"github.com/go-playground/validator/v10"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "scenario")
	c.Register(&fmtCmd{}, "scenario")
	c.Register(&logCmd{}, "scenario")
	c.Register(&queryCmd{}, "scenario")

	c.Register(&openTrustCmd{}, "moves")
	c.Register(&buyCmd{}, "moves")
	c.Register(&sellCmd{}, "moves")
	c.Register(&payDownCmd{}, "moves")
	c.Register(&refinanceCmd{}, "moves")
	c.Register(&advanceCmd{}, "moves")

	c.Register(&settingsCmd{}, "settings")
	c.Register(&trustSettingsCmd{}, "settings")
	c.Register(&propertySettingsCmd{}, "settings")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&quoteBuyCmd{}, "reports")
	c.Register(&quoteSaleCmd{}, "reports")
	c.Register(&quoteRefinanceCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	scenarioFile *string
	currency     *string
	Verbose      *bool
)

func init() {
	// .env never overrides the environment.
	_ = godotenv.Load()

	scenarioFile = flag.String("scenario", envOr(EnvScenarioFile, "scenario.jsonl"), "Path to the scenario file (JSONL format)")
	currency = flag.String("currency", envOr(EnvCurrency, estate.DefaultCurrency), "Currency used to display amounts")
	verbose, _ := strconv.ParseBool(os.Getenv(EnvVerbose))
	Verbose = flag.Bool("v", verbose, "Log replayed commands and scenario writes on stderr")
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// DecodeScenario reads the app scenario file.
func DecodeScenario() (*estate.Scenario, error) {
	f, err := os.Open(*scenarioFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no scenario %q, create one with 'esim init': %w", *scenarioFile, err)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := estate.DecodeScenario(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", *scenarioFile, err)
	}
	logger().Debugw("scenario decoded", "file", *scenarioFile, "commands", sc.Len())
	return sc, nil
}

// replay decodes the scenario and replays it up to the current state.
func replay() (*estate.Scenario, estate.State, error) {
	sc, err := DecodeScenario()
	if err != nil {
		return nil, estate.State{}, err
	}
	var s estate.State
	for i, cmd := range sc.All() {
		next, err := cmd.Apply(s)
		if err != nil {
			return sc, s, fmt.Errorf("%s: command #%d %s: %w", *scenarioFile, i+1, cmd.What(), err)
		}
		s = next
		logger().Debugw("replayed", "command", i+1, "what", cmd.What(), "now", s.Now.String(), "cash", s.Cash.String())
	}
	return sc, s, nil
}

// loadState replays the scenario, printing any error.
func loadState() (estate.State, bool) {
	_, s, err := replay()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying scenario: %v\n", err)
		return s, false
	}
	return s, true
}

// appendCommand checks that cmd applies to s, the replayed scenario, then
// appends it to the scenario file.
func appendCommand(s estate.State, cmd estate.Command) subcommands.ExitStatus {
	if _, err := cmd.Apply(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s rejected: %v\n", cmd.What(), err)
		return subcommands.ExitFailure
	}

	filename := *scenarioFile
	// Open the file in append mode, the scenario already exists.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scenario file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := estate.EncodeCommand(f, cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to scenario file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	logger().Infow("command appended", "file", filename, "command", cmd.What())
	fmt.Printf("Successfully appended %s to %s\n", cmd.What(), filename)
	return subcommands.ExitSuccess
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Errors name the flag, not the field.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("flag"); name != "" {
			return "-" + name
		}
		return fld.Name
	})
	return v
}

// checkFlags validates the flag struct c. It prints the violations and the
// usage when c is invalid.
func checkFlags(f *flag.FlagSet, c any) bool {
	err := validate.Struct(c)
	if err == nil {
		return true
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		fmt.Fprintf(os.Stderr, "Error validating flags: %v\n", err)
		return false
	}
	for _, fe := range errs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += " " + strings.ReplaceAll(fe.Param(), " ", "|")
		}
		fmt.Fprintf(os.Stderr, "invalid flag %s=%v: must satisfy %s\n", fe.Field(), fe.Value(), rule)
	}
	f.Usage()
	return false
}

// optionalAmount parses the amount of flag name, nil when the flag is empty.
func optionalAmount(name, text string) (*estate.Money, error) {
	if text == "" {
		return nil, nil
	}
	m, err := estate.ParseAmount(text)
	if err != nil {
		return nil, fmt.Errorf("-%s: %w", name, err)
	}
	return &m, nil
}

// optionalPercent parses the percent of flag name, nil when the flag is empty.
func optionalPercent(name, text string) (*estate.Percent, error) {
	if text == "" {
		return nil, nil
	}
	p, err := estate.ParsePercent(text)
	if err != nil {
		return nil, fmt.Errorf("-%s: %w", name, err)
	}
	return &p, nil
}

// defaultTrust returns ref, or the name of the only trust when ref is empty.
func defaultTrust(s estate.State, ref string) (string, error) {
	if ref != "" {
		return ref, nil
	}
	switch len(s.Trusts) {
	case 0:
		return "", fmt.Errorf("no trust yet, open one with 'esim open-trust'")
	case 1:
		return s.Trusts[0].Name, nil
	default:
		return "", fmt.Errorf("%d trusts are open, use -t to pick one", len(s.Trusts))
	}
}
