package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/blockplan/internal/domain"
)

// FormatAssignment renders one solved assignment: a timeline strip, the
// position by item occupancy grid, and the placements table.
func FormatAssignment(a *domain.Assignment) string {
	var b strings.Builder
	b.WriteString(FormatTimeline(a.Items, a.Placements, len(a.Positions)))
	b.WriteString("\n\n")
	b.WriteString(FormatGrid(a))
	b.WriteString("\n")
	b.WriteString(FormatPlacements(a.Items, a.Placements))
	return b.String()
}

// FormatGrid prints positions as rows and items as columns, with 1 where
// the item occupies the position and 0 elsewhere.
func FormatGrid(a *domain.Assignment) string {
	headers := make([]string, 0, len(a.Items)+1)
	headers = append(headers, "POS")
	for _, it := range a.Items {
		headers = append(headers, it.ID)
	}

	rows := make([][]string, 0, len(a.Positions))
	for p, pos := range a.Positions {
		row := make([]string, 0, len(a.Items)+1)
		row = append(row, pos.ID)
		for i := range a.Items {
			if a.Grid[i][p] == 1 {
				row = append(row, ItemStyle(i).Render("1"))
			} else {
				row = append(row, Dim("0"))
			}
		}
		rows = append(rows, row)
	}
	return RenderTable(headers, rows)
}

// FormatTimeline renders the timeline as one strip of item labels, one
// slot per position, with "·" for free positions.
func FormatTimeline(items []domain.Item, placements []domain.Placement, n int) string {
	width := 1
	index := make(map[string]int, len(items))
	for i, it := range items {
		index[it.ID] = i
		width = max(width, len(it.ID))
	}

	slots := make([]string, n)
	for p := range slots {
		slots[p] = Dim(pad("·", width))
	}
	for _, pl := range placements {
		style := ItemStyle(index[pl.ItemID])
		for ord := pl.Start; ord <= pl.End && ord <= n; ord++ {
			if ord >= 1 {
				slots[ord-1] = style.Render(pad(pl.ItemID, width))
			}
		}
	}
	return strings.Join(slots, " ")
}

// FormatPlacements lists each item's run in item order. Items without a
// placement are omitted.
func FormatPlacements(items []domain.Item, placements []domain.Placement) string {
	byItem := make(map[string]domain.Placement, len(placements))
	for _, pl := range placements {
		byItem[pl.ItemID] = pl
	}

	rows := make([][]string, 0, len(placements))
	for i, it := range items {
		pl, ok := byItem[it.ID]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			ItemStyle(i).Render(it.ID),
			fmt.Sprint(it.Length),
			fmt.Sprint(pl.Start),
			fmt.Sprint(pl.End),
		})
	}
	return RenderTable([]string{"ITEM", "LENGTH", "START", "END"}, rows)
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
