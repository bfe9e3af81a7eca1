// Package formulation turns a contiguous-block placement problem into a
// binary integer program. Builders are pure functions over the item and
// position data and only communicate through the variables of one
// ilp.Model.
package formulation

import (
	"fmt"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/ilp"
)

// Formulation is a fully built model plus the handles needed to read a
// solution back.
type Formulation struct {
	Encoding   domain.Encoding
	Model      *ilp.Model
	Space      *Space
	Contiguity *Contiguity

	Capacity []*ilp.Constraint
	Length   []*ilp.Constraint
	Boundary []*ilp.Constraint
	Side     []*ilp.Constraint
}

// Stats summarises model size.
type Stats struct {
	Items       int
	Positions   int
	Cells       int
	Indicators  int
	Variables   int
	Constraints int
}

// Build validates the input and runs every builder for enc.
func Build(items []domain.Item, positions []domain.Position, side []domain.SideConstraint, enc domain.Encoding) (*Formulation, error) {
	if err := domain.ValidateTimeline(positions); err != nil {
		return nil, err
	}
	if err := domain.ValidateItems(items, len(positions)); err != nil {
		return nil, err
	}
	enc, err := domain.ParseEncoding(string(enc))
	if err != nil {
		return nil, err
	}
	candidate := domain.Instance{TimelineLength: len(positions), Items: items, SideConstraints: side}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	m := ilp.NewModel()
	s := NewSpace(m, items, positions)
	f := &Formulation{Encoding: enc, Model: m, Space: s}

	f.Capacity = AddCapacity(m, s)
	f.Length = AddTotalLength(m, s)

	cont, err := AddContiguity(m, s, enc)
	if err != nil {
		return nil, err
	}
	f.Contiguity = cont
	if enc == domain.EncodingWindowStart {
		f.Boundary = AddBoundary(m, s, cont)
	}

	f.Side, err = AddSideConstraints(m, s, side)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// BuildInstance builds the instance's own timeline and side constraints.
func BuildInstance(inst *domain.Instance, enc domain.Encoding) (*Formulation, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return Build(inst.Items, inst.Positions(), inst.SideConstraints, enc)
}

// Stats reports the size of the built model.
func (f *Formulation) Stats() Stats {
	return Stats{
		Items:       len(f.Space.items),
		Positions:   f.Space.N(),
		Cells:       f.Space.NumCells(),
		Indicators:  f.Contiguity.NumIndicators(),
		Variables:   f.Model.NumVariables(),
		Constraints: f.Model.NumConstraints(),
	}
}

// Decode reads the occupancy cells of a feasible result into an
// assignment. Values above one half count as occupied.
func (f *Formulation) Decode(res *ilp.Result) (*domain.Assignment, error) {
	if res == nil || res.Status != ilp.StatusOptimal {
		return nil, fmt.Errorf("decoding result: no feasible solution")
	}
	if len(res.Values) < f.Model.NumVariables() {
		return nil, fmt.Errorf("decoding result: %d values for %d variables", len(res.Values), f.Model.NumVariables())
	}
	grid := make([][]int, len(f.Space.items))
	for i := range f.Space.items {
		grid[i] = make([]int, f.Space.N())
		for p, cell := range f.Space.cells[i] {
			if res.Values[cell.Var] > 0.5 {
				grid[i][p] = 1
			}
		}
	}
	return domain.NewAssignment(f.Space.Items(), f.Space.Positions(), grid), nil
}

// CheckResult evaluates every constraint of the model against res.
func (f *Formulation) CheckResult(res *ilp.Result) error {
	for _, c := range f.Model.Constraints() {
		if !c.Satisfied(res.Values) {
			return fmt.Errorf("constraint %s violated", c.Name())
		}
	}
	return nil
}
