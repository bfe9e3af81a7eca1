package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/blockplan/internal/domain"
)

// FormatInstanceList renders stored instances inside a bordered box.
func FormatInstanceList(instances []*domain.Instance) string {
	headers := []string{"ID", "NAME", "ITEMS", "POSITIONS", "DEMAND", "CREATED"}
	rows := make([][]string, 0, len(instances))
	for _, inst := range instances {
		rows = append(rows, []string{
			TruncID(inst.ID),
			Bold(inst.Name),
			fmt.Sprint(len(inst.Items)),
			fmt.Sprint(inst.TimelineLength),
			RenderUtilization(domain.TotalLength(inst.Items), inst.TimelineLength, 10),
			Dim(HumanTimestamp(inst.CreatedAt)),
		})
	}
	return RenderBox("Instances", RenderTable(headers, rows))
}

// FormatInstance renders one instance with its items and side constraints.
func FormatInstance(inst *domain.Instance) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(inst.Name) + "\n\n")
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("ID     "), inst.ID)
	fmt.Fprintf(&b, "%s  %d\n", StyleDim.Render("TIMELINE"), inst.TimelineLength)
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("DEMAND "),
		RenderUtilization(domain.TotalLength(inst.Items), inst.TimelineLength, 20))
	if !inst.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("CREATED"), HumanDate(inst.CreatedAt))
	}

	b.WriteString("\n" + Header("Items") + "\n")
	rows := make([][]string, 0, len(inst.Items))
	for i, it := range inst.Items {
		rows = append(rows, []string{ItemStyle(i).Render(it.ID), fmt.Sprint(it.Length)})
	}
	b.WriteString(RenderTable([]string{"ITEM", "LENGTH"}, rows))

	if len(inst.SideConstraints) > 0 {
		b.WriteString("\n" + Header("Side constraints") + "\n")
		b.WriteString(FormatSideConstraints(inst.SideConstraints))
	}
	return RenderBox("", b.String())
}

var boundSymbols = map[domain.Bound]string{
	domain.BoundEq: "=",
	domain.BoundLe: "<=",
	domain.BoundGe: ">=",
}

// FormatSideConstraints lists each constraint as "count(cells) op value".
func FormatSideConstraints(side []domain.SideConstraint) string {
	rows := make([][]string, 0, len(side))
	for j, sc := range side {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("side_%d", j+1)
		}
		cells := make([]string, len(sc.Cells))
		for k, c := range sc.Cells {
			cells[k] = c.ItemID + "@" + c.PositionID
		}
		rows = append(rows, []string{
			name,
			boundSymbols[sc.Bound] + " " + fmt.Sprint(sc.Value),
			Dim(strings.Join(cells, " ")),
		})
	}
	return RenderTable([]string{"NAME", "BOUND", "CELLS"}, rows)
}
