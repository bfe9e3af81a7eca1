package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignment_DerivesPlacements(t *testing.T) {
	items := []Item{{ID: "A", Length: 2}, {ID: "B", Length: 3}}
	grid := [][]int{
		{0, 0, 0, 1, 1},
		{1, 1, 1, 0, 0},
	}
	a := NewAssignment(items, NewTimeline(5), grid)

	require.Len(t, a.Placements, 2)
	pa, ok := a.PlacementFor("A")
	require.True(t, ok)
	assert.Equal(t, Placement{ItemID: "A", Start: 4, End: 5}, pa)
	assert.Equal(t, 2, pa.Len())
	assert.NoError(t, a.Verify())
}

func TestAssignmentVerify(t *testing.T) {
	items := []Item{{ID: "A", Length: 2}, {ID: "B", Length: 1}}
	tests := []struct {
		name string
		grid [][]int
		msg  string
	}{
		{"overlap", [][]int{{1, 1, 0}, {0, 1, 0}}, "held by 2 items"},
		{"gap", [][]int{{1, 0, 1}, {0, 1, 0}}, "not contiguous"},
		{"short", [][]int{{1, 0, 0}, {0, 1, 0}}, "holds 1 positions"},
		{"missing", [][]int{{1, 1, 0}, {0, 0, 0}}, "holds 0 positions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAssignment(items, NewTimeline(3), tt.grid).Verify()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestAssignmentExclusion(t *testing.T) {
	items := []Item{{ID: "A", Length: 2}}
	a := NewAssignment(items, NewTimeline(3), [][]int{{0, 1, 1}})

	sc := a.Exclusion("not-2-3")
	assert.Equal(t, BoundLe, sc.Bound)
	assert.Equal(t, 1, sc.Value)
	assert.Equal(t, []CellRef{{ItemID: "A", PositionID: "2"}, {ItemID: "A", PositionID: "3"}}, sc.Cells)
}
