package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md for the terminal, falling back to the raw
// markdown when it cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		logger().Warnw("markdown renderer unavailable", "error", err)
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		logger().Warnw("rendering markdown", "error", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
