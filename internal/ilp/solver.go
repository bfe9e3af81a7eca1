package ilp

import (
	"context"
	"errors"
	"fmt"
)

type ObjectiveSense int

const (
	Minimize ObjectiveSense = iota
	Maximize
)

// Objective is a linear expression to optimise. The zero value is the
// feasibility objective "minimize 0".
type Objective struct {
	Sense ObjectiveSense
	Terms []Term
}

// Trivial reports whether the objective has no non-zero coefficient.
func (o Objective) Trivial() bool {
	for _, t := range o.Terms {
		if t.Coef != 0 {
			return false
		}
	}
	return true
}

type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
	StatusUnbounded  Status = "unbounded"
	StatusError      Status = "error"
)

// Result is what a solver reports back. Values is indexed by Var and is
// only populated when Status is StatusOptimal.
type Result struct {
	Status Status
	Values []float64
}

// Value returns the solved value of v, or zero when there is none.
func (r *Result) Value(v Var) float64 {
	if r == nil || int(v) < 0 || int(v) >= len(r.Values) {
		return 0
	}
	return r.Values[v]
}

// Solver is the contract with an external solving engine. Implementations
// must treat the model as read-only.
type Solver interface {
	Name() string
	Solve(ctx context.Context, m *Model, obj Objective) (*Result, error)
}

// ErrUnsupported is wrapped by SolverError when a model uses a feature the
// engine cannot express.
var ErrUnsupported = errors.New("unsupported model feature")

// SolverError reports an engine failure unrelated to the model's
// feasibility.
type SolverError struct {
	Backend string
	Err     error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver %s: %v", e.Backend, e.Err)
}

func (e *SolverError) Unwrap() error { return e.Err }
