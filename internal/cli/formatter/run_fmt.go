package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/blockplan/internal/domain"
)

// FormatRunList renders recorded solves, newest first.
func FormatRunList(runs []*domain.Run) string {
	headers := []string{"ID", "INSTANCE", "STATUS", "ENCODING", "SOLVER", "VARS", "CONS", "TIME", "WHEN"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			TruncID(r.ID),
			TruncID(r.InstanceID),
			StatusPill(r.Status),
			string(r.Encoding),
			r.Solver,
			fmt.Sprint(r.VariableCount),
			fmt.Sprint(r.ConstraintCount),
			FormatDuration(r.Duration()),
			Dim(HumanTimestamp(r.CreatedAt)),
		})
	}
	return RenderBox("Runs", RenderTable(headers, rows))
}

// FormatRun renders one run. inst may be nil, in which case the timeline
// strip is omitted.
func FormatRun(r *domain.Run, inst *domain.Instance) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("RUN     "), r.ID)
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("INSTANCE"), r.InstanceID)
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("STATUS  "), StatusPill(r.Status))
	fmt.Fprintf(&b, "%s  %s · %s\n", StyleDim.Render("MODEL   "), r.Encoding, r.Solver)
	fmt.Fprintf(&b, "%s  %d variables, %d constraints\n", StyleDim.Render("SIZE    "), r.VariableCount, r.ConstraintCount)
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("TIME    "), FormatDuration(r.Duration()))
	if r.Error != "" {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("ERROR   "), StyleRed.Render(r.Error))
	}

	if len(r.Placements) > 0 {
		items := runItems(r, inst)
		b.WriteString("\n")
		if inst != nil {
			b.WriteString(FormatTimeline(items, r.Placements, inst.TimelineLength) + "\n\n")
		}
		b.WriteString(FormatPlacements(items, r.Placements))
	}
	return RenderBox("", b.String())
}

// runItems prefers the instance's item order; without it the items are
// rebuilt from the placements themselves.
func runItems(r *domain.Run, inst *domain.Instance) []domain.Item {
	if inst != nil {
		return inst.Items
	}
	items := make([]domain.Item, len(r.Placements))
	for i, pl := range r.Placements {
		items[i] = domain.Item{ID: pl.ItemID, Length: pl.Len()}
	}
	return items
}
