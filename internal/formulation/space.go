package formulation

import (
	"fmt"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/ilp"
)

// Cell is the occupancy variable for one (item, position) pair.
type Cell struct {
	Item     domain.Item
	Position domain.Position
	Var      ilp.Var
}

// Space is the full item x position grid of occupancy cells. It is built
// once and never mutated.
type Space struct {
	items     []domain.Item
	positions []domain.Position
	cells     [][]Cell
	itemIdx   map[string]int
	posIdx    map[string]int
}

// NewSpace creates one binary variable per (item, position) pair in m.
// Positions are ordered by ordinal; items keep the caller's order.
func NewSpace(m *ilp.Model, items []domain.Item, positions []domain.Position) *Space {
	s := &Space{
		items:     append([]domain.Item(nil), items...),
		positions: append([]domain.Position(nil), positions...),
		itemIdx:   make(map[string]int, len(items)),
		posIdx:    make(map[string]int, len(positions)),
	}
	domain.SortPositions(s.positions)

	for p, pos := range s.positions {
		s.posIdx[pos.ID] = p
	}
	s.cells = make([][]Cell, len(s.items))
	for i, it := range s.items {
		s.itemIdx[it.ID] = i
		row := make([]Cell, len(s.positions))
		for p, pos := range s.positions {
			row[p] = Cell{
				Item:     it,
				Position: pos,
				Var:      m.NewBinary(fmt.Sprintf("x_%d_%d", i+1, pos.Ordinal)),
			}
		}
		s.cells[i] = row
	}
	return s
}

func (s *Space) Items() []domain.Item         { return s.items }
func (s *Space) Positions() []domain.Position { return s.positions }

// N is the timeline length.
func (s *Space) N() int { return len(s.positions) }

// NumCells is |Items| x |Positions|.
func (s *Space) NumCells() int { return len(s.items) * len(s.positions) }

// Cell looks up the cell for an item and position id.
func (s *Space) Cell(itemID, positionID string) (Cell, bool) {
	i, ok := s.itemIdx[itemID]
	if !ok {
		return Cell{}, false
	}
	p, ok := s.posIdx[positionID]
	if !ok {
		return Cell{}, false
	}
	return s.cells[i][p], true
}

// ItemIndex returns the row of itemID.
func (s *Space) ItemIndex(itemID string) (int, bool) {
	i, ok := s.itemIdx[itemID]
	return i, ok
}

// PositionIndex returns the column of positionID.
func (s *Space) PositionIndex(positionID string) (int, bool) {
	p, ok := s.posIdx[positionID]
	return p, ok
}

// ItemCells returns the cells of one item ordered by position ordinal.
func (s *Space) ItemCells(itemID string) []Cell {
	i, ok := s.itemIdx[itemID]
	if !ok {
		return nil
	}
	return s.row(i)
}

func (s *Space) row(i int) []Cell {
	return append([]Cell(nil), s.cells[i]...)
}

// PositionCells returns the cells at one position in item order.
func (s *Space) PositionCells(positionID string) []Cell {
	p, ok := s.posIdx[positionID]
	if !ok {
		return nil
	}
	return s.column(p)
}

func (s *Space) column(p int) []Cell {
	out := make([]Cell, len(s.items))
	for i := range s.items {
		out[i] = s.cells[i][p]
	}
	return out
}
