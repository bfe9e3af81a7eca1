package solver

import (
	"context"
	"errors"

	"github.com/alexanderramin/blockplan/internal/ilp"
	"github.com/crillab/gophersat/solver"
)

// Gophersat solves models with gophersat's native pseudo-boolean
// constraints.
type Gophersat struct{}

func NewGophersat() *Gophersat { return &Gophersat{} }

func (g *Gophersat) Name() string { return NameGophersat }

// Solve runs the engine in its own goroutine. gophersat cannot be
// interrupted, so on cancellation the goroutine is left to finish and its
// result is discarded.
func (g *Gophersat) Solve(ctx context.Context, m *ilp.Model, obj ilp.Objective) (*ilp.Result, error) {
	norm, err := prepare(ctx, NameGophersat, m, obj)
	if err != nil {
		return nil, err
	}
	if norm.infeasible {
		return infeasible(), nil
	}
	if len(norm.constraints) == 0 {
		return feasible(make([]float64, norm.numVars)), nil
	}

	type outcome struct {
		res *ilp.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := runGuarded(NameGophersat, func() (*ilp.Result, error) {
			return solvePB(norm)
		})
		done <- outcome{res, err}
	}()

	select {
	case <-ctx.Done():
		return nil, &ilp.SolverError{Backend: NameGophersat, Err: ctx.Err()}
	case o := <-done:
		return o.res, o.err
	}
}

func solvePB(norm *normalized) (*ilp.Result, error) {
	constrs := make([]solver.PBConstr, 0, len(norm.constraints))
	for _, c := range norm.constraints {
		lits := make([]int, len(c.lits))
		for i, l := range c.lits {
			lits[i] = int(l.v) + 1
			if l.neg {
				lits[i] = -lits[i]
			}
		}
		weights := append([]int(nil), c.weights...)
		constrs = append(constrs, solver.GtEq(lits, weights, c.atLeast))
	}

	s := solver.New(solver.ParsePBConstrs(constrs))
	switch s.Solve() {
	case solver.Unsat:
		return infeasible(), nil
	case solver.Sat:
	default:
		return nil, &ilp.SolverError{Backend: NameGophersat, Err: errors.New("indeterminate status")}
	}

	model := s.Model()
	values := make([]float64, norm.numVars)
	for i := range values {
		if i < len(model) && model[i] {
			values[i] = 1
		}
	}
	return feasible(values), nil
}
