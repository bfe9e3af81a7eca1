package formulation

import (
	"fmt"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/ilp"
)

// AddSideConstraints appends one constraint per side constraint. Every
// reference is resolved before anything is added, so an unknown item or
// position fails the build without touching m.
func AddSideConstraints(m *ilp.Model, s *Space, side []domain.SideConstraint) ([]*ilp.Constraint, error) {
	resolved := make([][]Cell, len(side))
	for j, sc := range side {
		cells := make([]Cell, 0, len(sc.Cells))
		for _, ref := range sc.Cells {
			if _, ok := s.itemIdx[ref.ItemID]; !ok {
				return nil, fmt.Errorf("side constraint %q: %w", sc.Name, domain.NewUnknownReferenceError("item", ref.ItemID))
			}
			cell, ok := s.Cell(ref.ItemID, ref.PositionID)
			if !ok {
				return nil, fmt.Errorf("side constraint %q: %w", sc.Name, domain.NewUnknownReferenceError("position", ref.PositionID))
			}
			cells = append(cells, cell)
		}
		resolved[j] = cells
	}

	out := make([]*ilp.Constraint, 0, len(side))
	for j, sc := range side {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("side_%d", j+1)
		}
		c := m.NewConstraint(name)
		for _, cell := range resolved[j] {
			c.Set(cell.Var, 1)
		}
		v := float64(sc.Value)
		switch sc.Bound {
		case domain.BoundLe:
			c.AtMost(v)
		case domain.BoundGe:
			c.AtLeast(v)
		default:
			c.Equals(v)
		}
		out = append(out, c)
	}
	return out, nil
}
