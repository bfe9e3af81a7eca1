package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/blockplan/internal/app"
)

// FormatSolve renders a solve response: a one-line summary, then every
// assignment found, then the model statistics when stats is set.
func FormatSolve(resp *app.SolveResponse, stats bool) string {
	var b strings.Builder

	name := resp.Instance.Name
	if name == "" {
		name = TruncID(resp.Instance.ID)
	}
	fmt.Fprintf(&b, "%s  %s  %s\n", Bold(name), StatusPill(resp.Status),
		Dim(fmt.Sprintf("%s · %s · %s", resp.Encoding, resp.Solver, FormatDuration(resp.Duration))))
	if resp.RunID != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("saved run"), TruncID(resp.RunID))
	}

	all := resp.Assignments()
	if len(all) == 0 {
		b.WriteString("\n" + StyleYellow.Render("No assignment satisfies the constraints.") + "\n")
	}
	for i, a := range all {
		b.WriteString("\n")
		title := "Assignment"
		if len(all) > 1 {
			title = fmt.Sprintf("Assignment %d of %d", i+1, len(all))
		}
		b.WriteString(Header(title) + "\n")
		b.WriteString(FormatAssignment(a))
	}

	if resp.EnumerationErr != nil {
		fmt.Fprintf(&b, "\n%s %s\n", StyleYellow.Render("Stopped looking for alternatives:"), resp.EnumerationErr)
	}

	if stats {
		b.WriteString("\n" + FormatStats(resp.Stats))
	}
	return b.String()
}

// FormatStats renders model size counters as a two-column table.
func FormatStats(st app.ModelStats) string {
	rows := [][]string{
		{"items", fmt.Sprint(st.Items)},
		{"positions", fmt.Sprint(st.Positions)},
		{"occupancy cells", fmt.Sprint(st.Cells)},
		{"indicators", fmt.Sprint(st.Indicators)},
		{"variables", fmt.Sprint(st.Variables)},
		{"constraints", fmt.Sprint(st.Constraints)},
	}
	return RenderTable([]string{"MODEL", "COUNT"}, rows)
}
