package domain

import (
	"sort"
	"strconv"
)

// Item is a schedulable unit that needs Length consecutive positions.
type Item struct {
	ID     string
	Length int
}

// Position is one discrete unit of the timeline. Ordinals run 1..N.
type Position struct {
	ID      string
	Ordinal int
}

// NewTimeline returns positions "1".."n" with matching ordinals.
func NewTimeline(n int) []Position {
	positions := make([]Position, n)
	for i := range positions {
		positions[i] = Position{ID: strconv.Itoa(i + 1), Ordinal: i + 1}
	}
	return positions
}

// SortPositions orders positions by ordinal in place.
func SortPositions(positions []Position) {
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].Ordinal < positions[j].Ordinal
	})
}

// ValidateTimeline checks that positions form exactly the ordinals 1..N
// with unique IDs. Gapped timelines are rejected.
func ValidateTimeline(positions []Position) error {
	if len(positions) == 0 {
		return configErrorf(ConfigErrInvalidTimeline, "timeline has no positions")
	}
	ids := make(map[string]bool, len(positions))
	seen := make([]bool, len(positions)+1)
	for _, p := range positions {
		if p.ID == "" {
			return configErrorf(ConfigErrInvalidTimeline, "position with ordinal %d has no id", p.Ordinal)
		}
		if ids[p.ID] {
			return configErrorf(ConfigErrInvalidTimeline, "duplicate position id %q", p.ID)
		}
		ids[p.ID] = true
		if p.Ordinal < 1 || p.Ordinal > len(positions) {
			return configErrorf(ConfigErrInvalidTimeline, "position %q ordinal %d outside 1..%d", p.ID, p.Ordinal, len(positions))
		}
		if seen[p.Ordinal] {
			return configErrorf(ConfigErrInvalidTimeline, "duplicate ordinal %d", p.Ordinal)
		}
		seen[p.Ordinal] = true
	}
	return nil
}

// ValidateItems checks item IDs are unique and every length is positive
// and fits in a timeline of n positions.
func ValidateItems(items []Item, n int) error {
	ids := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID == "" {
			return configErrorf(ConfigErrDuplicateItem, "item with empty id")
		}
		if ids[it.ID] {
			return configErrorf(ConfigErrDuplicateItem, "duplicate item id %q", it.ID)
		}
		ids[it.ID] = true
		if it.Length <= 0 {
			return configErrorf(ConfigErrInvalidLength, "item %q length %d must be positive", it.ID, it.Length)
		}
		if it.Length > n {
			return configErrorf(ConfigErrTimelineTooShort, "item %q needs %d positions but timeline has %d", it.ID, it.Length, n)
		}
	}
	return nil
}

// TotalLength sums the lengths of items.
func TotalLength(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Length
	}
	return total
}
