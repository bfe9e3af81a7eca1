// Package solver adapts pure-Go SAT and pseudo-boolean engines to the
// ilp.Solver contract. Both engines decide feasibility only; a model with a
// non-trivial objective is rejected.
package solver

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexanderramin/blockplan/internal/ilp"
)

const (
	NameGophersat = "gophersat"
	NameGini      = "gini"
)

var factories = map[string]func() ilp.Solver{
	NameGophersat: func() ilp.Solver { return NewGophersat() },
	NameGini:      func() ilp.Solver { return NewGini() },
}

// New returns the solver registered under name.
func New(name string) (ilp.Solver, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver %q (available: %v)", name, Names())
	}
	return f(), nil
}

// Names lists the registered solvers in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// prepare freezes m, rejects unsupported objectives and normalizes the
// constraints. A nil result with nil error never happens.
func prepare(ctx context.Context, backend string, m *ilp.Model, obj ilp.Objective) (*normalized, error) {
	m.Freeze()
	if err := ctx.Err(); err != nil {
		return nil, &ilp.SolverError{Backend: backend, Err: err}
	}
	if !obj.Trivial() {
		return nil, &ilp.SolverError{Backend: backend, Err: fmt.Errorf("%w: objective with non-zero coefficients", ilp.ErrUnsupported)}
	}
	norm, err := normalize(m)
	if err != nil {
		return nil, &ilp.SolverError{Backend: backend, Err: err}
	}
	return norm, nil
}

func infeasible() *ilp.Result {
	return &ilp.Result{Status: ilp.StatusInfeasible}
}

func feasible(values []float64) *ilp.Result {
	return &ilp.Result{Status: ilp.StatusOptimal, Values: values}
}

// runGuarded calls fn, converting a panic inside the engine into an error.
func runGuarded(backend string, fn func() (*ilp.Result, error)) (res *ilp.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = &ilp.SolverError{Backend: backend, Err: fmt.Errorf("engine panic: %v", p)}
		}
	}()
	return fn()
}
