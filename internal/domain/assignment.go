package domain

import (
	"fmt"
	"time"
)

// Placement is the run an item was assigned, as inclusive ordinals.
type Placement struct {
	ItemID string
	Start  int
	End    int
}

func (p Placement) Len() int { return p.End - p.Start + 1 }

// Assignment is a solved placement read back from a model.
// Grid[i][p] is 1 when Items[i] occupies ordinal p+1.
type Assignment struct {
	Items      []Item
	Positions  []Position
	Grid       [][]int
	Placements []Placement
}

// NewAssignment derives placements from an occupancy grid. Items whose
// occupied ordinals are not a single run are still reported, spanning from
// the first to the last occupied ordinal; Verify flags them.
func NewAssignment(items []Item, positions []Position, grid [][]int) *Assignment {
	a := &Assignment{Items: items, Positions: positions, Grid: grid}
	for i, it := range items {
		first, last := 0, 0
		for p, v := range grid[i] {
			if v != 1 {
				continue
			}
			if first == 0 {
				first = p + 1
			}
			last = p + 1
		}
		if first > 0 {
			a.Placements = append(a.Placements, Placement{ItemID: it.ID, Start: first, End: last})
		}
	}
	return a
}

// PlacementFor returns the placement of item id.
func (a *Assignment) PlacementFor(id string) (Placement, bool) {
	for _, p := range a.Placements {
		if p.ItemID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// Verify checks the capacity and contiguity invariants: each position is
// held by at most one item, and each item holds exactly Length consecutive
// positions.
func (a *Assignment) Verify() error {
	for p := range a.Positions {
		holders := 0
		for i := range a.Items {
			holders += a.Grid[i][p]
		}
		if holders > 1 {
			return fmt.Errorf("position %d held by %d items", p+1, holders)
		}
	}
	for i, it := range a.Items {
		count := 0
		for _, v := range a.Grid[i] {
			count += v
		}
		if count != it.Length {
			return fmt.Errorf("item %q holds %d positions, needs %d", it.ID, count, it.Length)
		}
		pl, ok := a.PlacementFor(it.ID)
		if !ok || pl.Len() != it.Length {
			return fmt.Errorf("item %q run is not contiguous", it.ID)
		}
	}
	return nil
}

type RunStatus string

const (
	RunFeasible   RunStatus = "feasible"
	RunInfeasible RunStatus = "infeasible"
	RunFailed     RunStatus = "failed"
)

// Run is the persisted record of one solve of an instance.
type Run struct {
	ID              string
	InstanceID      string
	Encoding        Encoding
	Solver          string
	Status          RunStatus
	VariableCount   int
	ConstraintCount int
	DurationMs      int64
	Error           string
	Placements      []Placement
	CreatedAt       time.Time
}

// Duration returns the solve duration.
func (r *Run) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

// Exclusion returns a side constraint that rules out exactly this
// assignment: at most all-but-one of its occupied cells may be occupied
// again. Solving repeatedly with accumulated exclusions enumerates distinct
// assignments.
func (a *Assignment) Exclusion(name string) SideConstraint {
	sc := SideConstraint{Name: name, Bound: BoundLe}
	for i, it := range a.Items {
		for p, v := range a.Grid[i] {
			if v == 1 {
				sc.Cells = append(sc.Cells, CellRef{ItemID: it.ID, PositionID: a.Positions[p].ID})
			}
		}
	}
	sc.Value = len(sc.Cells) - 1
	return sc
}
