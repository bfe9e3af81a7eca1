package formulation

import (
	"testing"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/ilp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpace_CartesianProduct(t *testing.T) {
	m := ilp.NewModel()
	items := []domain.Item{{ID: "A", Length: 1}, {ID: "B", Length: 2}, {ID: "C", Length: 1}}
	s := NewSpace(m, items, domain.NewTimeline(4))

	assert.Equal(t, 12, s.NumCells())
	assert.Equal(t, 12, m.NumVariables())
	assert.Equal(t, 4, s.N())

	seen := make(map[ilp.Var]bool)
	for _, it := range items {
		for _, cell := range s.ItemCells(it.ID) {
			assert.False(t, seen[cell.Var], "each cell owns a distinct variable")
			seen[cell.Var] = true
		}
	}
	assert.Len(t, seen, 12)
}

func TestNewSpace_SortsPositionsByOrdinal(t *testing.T) {
	m := ilp.NewModel()
	positions := []domain.Position{{ID: "c", Ordinal: 3}, {ID: "a", Ordinal: 1}, {ID: "b", Ordinal: 2}}
	s := NewSpace(m, []domain.Item{{ID: "A", Length: 1}}, positions)

	cells := s.ItemCells("A")
	require.Len(t, cells, 3)
	assert.Equal(t, "a", cells[0].Position.ID)
	assert.Equal(t, "c", cells[2].Position.ID)
	assert.Equal(t, "c", positions[0].ID, "caller's slice is not reordered")
}

func TestSpace_Lookups(t *testing.T) {
	m := ilp.NewModel()
	items := []domain.Item{{ID: "A", Length: 1}, {ID: "B", Length: 1}}
	s := NewSpace(m, items, domain.NewTimeline(3))

	cell, ok := s.Cell("B", "2")
	require.True(t, ok)
	assert.Equal(t, "B", cell.Item.ID)
	assert.Equal(t, 2, cell.Position.Ordinal)

	_, ok = s.Cell("Z", "2")
	assert.False(t, ok)
	_, ok = s.Cell("A", "9")
	assert.False(t, ok)

	col := s.PositionCells("3")
	require.Len(t, col, 2)
	assert.Equal(t, "A", col[0].Item.ID)
	assert.Equal(t, "B", col[1].Item.ID)

	assert.Nil(t, s.ItemCells("Z"))
	assert.Nil(t, s.PositionCells("0"))

	i, ok := s.ItemIndex("B")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	p, ok := s.PositionIndex("3")
	assert.True(t, ok)
	assert.Equal(t, 2, p)
}
