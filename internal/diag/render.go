package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	codeColor = color.New(color.FgRed, color.Bold).SprintFunc()
	locColor  = color.New(color.FgCyan).SprintFunc()
	bold      = color.New(color.Bold).SprintFunc()
)

// Render formats a Report for a terminal, matching the teacher CLI's
// red-code/cyan-location convention.
func Render(r *Report) string {
	var b strings.Builder
	if r.Span != nil {
		fmt.Fprintf(&b, "%s ", locColor(r.Span.String()))
	}
	fmt.Fprintf(&b, "%s %s", codeColor(r.Code), bold(r.Message))
	for k, v := range r.Data {
		fmt.Fprintf(&b, "\n    %s: %v", k, v)
	}
	return b.String()
}

// RenderAll formats a slice of Reports, one per line, separated for
// readability when multiple diagnostics accumulate from one Solve.
func RenderAll(reports []*Report) string {
	lines := make([]string, len(reports))
	for i, r := range reports {
		lines[i] = Render(r)
	}
	return strings.Join(lines, "\n\n")
}
