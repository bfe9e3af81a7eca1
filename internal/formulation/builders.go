package formulation

import (
	"fmt"

	"github.com/alexanderramin/blockplan/internal/ilp"
)

// AddCapacity allows at most one item per position.
func AddCapacity(m *ilp.Model, s *Space) []*ilp.Constraint {
	out := make([]*ilp.Constraint, 0, s.N())
	for p, pos := range s.positions {
		c := m.NewConstraint(fmt.Sprintf("capacity_%d", pos.Ordinal))
		for _, cell := range s.column(p) {
			c.Set(cell.Var, 1)
		}
		out = append(out, c.AtMost(1))
	}
	return out
}

// AddTotalLength fixes the number of occupied cells of every item to its
// length. It is required by both contiguity encodings.
func AddTotalLength(m *ilp.Model, s *Space) []*ilp.Constraint {
	out := make([]*ilp.Constraint, 0, len(s.items))
	for i, it := range s.items {
		c := m.NewConstraint(fmt.Sprintf("length_%d", i+1))
		for _, cell := range s.cells[i] {
			c.Set(cell.Var, 1)
		}
		out = append(out, c.Equals(float64(it.Length)))
	}
	return out
}

// AddBoundary forbids runs that would overrun the timeline: a start
// indicator at ordinal p is forced to zero when p+length-1 > N. Only the
// window-start encoding has start indicators.
func AddBoundary(m *ilp.Model, s *Space, cont *Contiguity) []*ilp.Constraint {
	var out []*ilp.Constraint
	n := s.N()
	for i, it := range s.items {
		for _, st := range cont.Starts[it.ID] {
			if st.Position.Ordinal+it.Length-1 <= n {
				continue
			}
			c := m.NewConstraint(fmt.Sprintf("boundary_%d_%d", i+1, st.Position.Ordinal))
			out = append(out, c.Set(st.Var, 1).Equals(0))
		}
	}
	return out
}
