package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/estate"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the net worth history, one line per quarter.
func HistoryMarkdown(s estate.State, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Net Worth History")
	doc.PlainText(fmt.Sprintf("Year %d of %d, %.0f%% of the timeline.", s.Year(), s.Now.Horizon(), s.Now.Progress()))

	table := md.TableSet{
		Header: []string{"Period", "Net Worth", "Cash", "Debt", "Change"},
		Rows:   [][]string{},
	}
	previous := estate.M(0)
	for i, entry := range s.History {
		change := ""
		if i > 0 {
			change = entry.NetWorth.Sub(previous).Format(currency)
		}
		previous = entry.NetWorth
		table.Rows = append(table.Rows, []string{
			entry.Label,
			entry.NetWorth.Format(currency),
			entry.Cash.Format(currency),
			entry.Debt.Format(currency),
			change,
		})
	}
	doc.Table(table)

	return doc.String()
}
