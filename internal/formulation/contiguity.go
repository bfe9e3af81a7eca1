package formulation

import (
	"fmt"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/ilp"
)

// WindowIndicator marks that an item occupies the run of Length positions
// beginning at Start.
type WindowIndicator struct {
	Item  domain.Item
	Start domain.Position
	Cells []Cell
	Var   ilp.Var
}

// StartIndicator marks that an item's run begins at Position.
type StartIndicator struct {
	Item     domain.Item
	Position domain.Position
	Var      ilp.Var
}

// Contiguity holds the auxiliary variables and constraints added for one
// encoding. Items of length 1 have no entries.
type Contiguity struct {
	Encoding    domain.Encoding
	Windows     map[string][]WindowIndicator
	Starts      map[string][]StartIndicator
	Constraints []*ilp.Constraint
}

// NumIndicators counts the auxiliary binaries.
func (c *Contiguity) NumIndicators() int {
	n := 0
	for _, ws := range c.Windows {
		n += len(ws)
	}
	for _, ss := range c.Starts {
		n += len(ss)
	}
	return n
}

// AddContiguity forces each multi-position item onto one unbroken run using
// the chosen encoding. The total-length constraints must also be present.
func AddContiguity(m *ilp.Model, s *Space, enc domain.Encoding) (*Contiguity, error) {
	cont := &Contiguity{
		Encoding: enc,
		Windows:  make(map[string][]WindowIndicator),
		Starts:   make(map[string][]StartIndicator),
	}
	switch enc {
	case domain.EncodingWindowIndicator:
		for i, it := range s.items {
			if it.Length > 1 {
				cont.addWindowIndicators(m, s, i)
			}
		}
	case domain.EncodingWindowStart:
		for i, it := range s.items {
			if it.Length > 1 {
				cont.addStartIndicators(m, s, i)
			}
		}
		cont.addStartCapacity(m, s)
	default:
		return nil, &domain.ConfigError{Code: domain.ConfigErrUnknownEncoding, Message: fmt.Sprintf("unknown encoding %q", enc)}
	}
	return cont, nil
}

// addWindowIndicators attaches one binary b_w to every full window w of the
// item's cells, requires exactly one b_w, and adds
//
//	sum(x in w) - k*b_w >= 0
//
// A window sums to at most k, so b_w = 1 forces every cell of w to 1 and
// b_w = 0 leaves the row free. With the total fixed at k, the chosen window
// holds every occupied cell.
func (c *Contiguity) addWindowIndicators(m *ilp.Model, s *Space, i int) {
	it := s.items[i]
	k := float64(it.Length)
	choice := m.NewConstraint(fmt.Sprintf("window_choice_%d", i+1))

	for w := range Windows(s.cells[i], it.Length) {
		start := w[0].Position
		b := m.NewBinary(fmt.Sprintf("w_%d_%d", i+1, start.Ordinal))
		choice.Set(b, 1)

		cover := m.NewConstraint(fmt.Sprintf("window_%d_%d", i+1, start.Ordinal))
		for _, cell := range w {
			cover.Set(cell.Var, 1)
		}
		cover.Set(b, -k).AtLeast(0)

		c.Windows[it.ID] = append(c.Windows[it.ID], WindowIndicator{
			Item:  it,
			Start: start,
			Cells: w,
			Var:   b,
		})
		c.Constraints = append(c.Constraints, cover)
	}
	c.Constraints = append(c.Constraints, choice.Equals(1))
}

// addStartIndicators gives the item one start binary per position, requires
// exactly one start, and ties every cell to the starts whose run covers it:
//
//	x_q - sum(s_p : p <= q <= p+k-1) == 0
//
// Starts that would overrun the timeline are zeroed by AddBoundary.
func (c *Contiguity) addStartIndicators(m *ilp.Model, s *Space, i int) {
	it := s.items[i]
	choice := m.NewConstraint(fmt.Sprintf("start_choice_%d", i+1))

	starts := make([]StartIndicator, len(s.positions))
	for p, pos := range s.positions {
		v := m.NewBinary(fmt.Sprintf("s_%d_%d", i+1, pos.Ordinal))
		choice.Set(v, 1)
		starts[p] = StartIndicator{Item: it, Position: pos, Var: v}
	}
	c.Starts[it.ID] = starts
	c.Constraints = append(c.Constraints, choice.Equals(1))

	for q, cell := range s.cells[i] {
		link := m.NewConstraint(fmt.Sprintf("start_link_%d_%d", i+1, cell.Position.Ordinal))
		link.Set(cell.Var, 1)
		for p := max(0, q-it.Length+1); p <= q; p++ {
			link.Set(starts[p].Var, -1)
		}
		c.Constraints = append(c.Constraints, link.Equals(0))
	}
}

// addStartCapacity bounds, per position, the number of runs covering it
// across all items by one. Length-1 items cover a position exactly when
// they occupy it.
func (c *Contiguity) addStartCapacity(m *ilp.Model, s *Space) {
	for q, pos := range s.positions {
		limit := m.NewConstraint(fmt.Sprintf("start_capacity_%d", pos.Ordinal))
		for i, it := range s.items {
			if it.Length == 1 {
				limit.Set(s.cells[i][q].Var, 1)
				continue
			}
			starts := c.Starts[it.ID]
			for p := max(0, q-it.Length+1); p <= q; p++ {
				limit.Set(starts[p].Var, 1)
			}
		}
		c.Constraints = append(c.Constraints, limit.AtMost(1))
	}
}
