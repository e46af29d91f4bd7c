package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/estate"
)

// LogMarkdown replays a scenario and renders every command with the net
// worth it leads to. Replay stops at the first rejected command, which is
// reported at the end of the log.
func LogMarkdown(sc *estate.Scenario, currency string) string {
	r := &logRenderer{Builder: &strings.Builder{}, currency: currency}

	r.Printf("# Scenario Log\n\n")
	r.Printf("| # | Period | Command | Net Worth | Cash | Memo |\n")
	r.Printf("|---:|:---|:---|---:|---:|:---|\n")

	var s estate.State
	var rejected error
	var rejectedAt int
	for i, cmd := range sc.All() {
		next, err := cmd.Apply(s)
		if err != nil {
			rejected, rejectedAt = err, i+1
			break
		}
		s = next
		r.Printf("| %d | %s | %s | %s | %s | %s |\n", i+1, s.Now, cell(Command(cmd)), s.NetWorth().Format(currency), s.Cash.Format(currency), cell(memo(cmd)))
	}

	ConditionalBlock(r, func(w io.Writer) bool {
		if rejected == nil {
			return false
		}
		fmt.Fprintf(w, "\nCommand #%d was rejected: %v\n", rejectedAt, rejected)
		return true
	})
	return r.String()
}

// logRenderer formats the log into a markdown string.
type logRenderer struct {
	*strings.Builder
	currency string
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *logRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

func memo(cmd estate.Command) string {
	if m, ok := cmd.(interface{ Rationale() string }); ok {
		return m.Rationale()
	}
	return ""
}

// cell escapes text for a table cell.
func cell(text string) string {
	return strings.ReplaceAll(text, "|", `\|`)
}
