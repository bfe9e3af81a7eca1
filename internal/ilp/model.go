// Package ilp is a small facade over integer linear programs: it owns
// variables and linear constraints and hands the finished model to a Solver.
package ilp

import (
	"fmt"
	"math"
)

type VarKind int

const (
	Binary VarKind = iota
	Continuous
)

func (k VarKind) String() string {
	switch k {
	case Binary:
		return "binary"
	case Continuous:
		return "continuous"
	default:
		return fmt.Sprintf("VarKind(%d)", int(k))
	}
}

// Var is a handle to a variable owned by a Model. Handles are dense indexes
// starting at zero and are only meaningful for the model that issued them.
type Var int

// Variable describes one decision variable.
type Variable struct {
	Handle Var
	Name   string
	Kind   VarKind
	Lower  float64
	Upper  float64
}

// Model accumulates variables and constraints while a formulation is built.
// It is not safe for concurrent mutation; independent models share nothing.
type Model struct {
	vars        []Variable
	constraints []*Constraint
	frozen      bool
}

// NewModel returns an empty, mutable model.
func NewModel() *Model {
	return &Model{}
}

// NewVariable creates a variable with the given kind and bounds.
// The name defaults to "x<n>" from the model's own counter.
func (m *Model) NewVariable(kind VarKind, lower, upper float64) Var {
	return m.addVariable("", kind, lower, upper)
}

// NewBinary creates a named 0/1 variable. An empty name falls back to the
// counter-based default.
func (m *Model) NewBinary(name string) Var {
	return m.addVariable(name, Binary, 0, 1)
}

func (m *Model) addVariable(name string, kind VarKind, lower, upper float64) Var {
	m.mustBeMutable()
	h := Var(len(m.vars))
	if name == "" {
		name = fmt.Sprintf("x%d", h+1)
	}
	if kind == Binary {
		lower = math.Max(lower, 0)
		upper = math.Min(upper, 1)
	}
	m.vars = append(m.vars, Variable{Handle: h, Name: name, Kind: kind, Lower: lower, Upper: upper})
	return h
}

// NewConstraint registers a new constraint with no terms and no bound.
// Callers set coefficients and exactly one bound before the model is frozen.
func (m *Model) NewConstraint(name string) *Constraint {
	m.mustBeMutable()
	if name == "" {
		name = fmt.Sprintf("c%d", len(m.constraints)+1)
	}
	c := &Constraint{model: m, name: name, index: make(map[Var]int)}
	m.constraints = append(m.constraints, c)
	return c
}

// Variable returns the descriptor for v.
func (m *Model) Variable(v Var) Variable {
	return m.vars[v]
}

// Variables returns a copy of all variable descriptors in creation order.
func (m *Model) Variables() []Variable {
	out := make([]Variable, len(m.vars))
	copy(out, m.vars)
	return out
}

// Constraints returns the constraints in insertion order.
func (m *Model) Constraints() []*Constraint {
	out := make([]*Constraint, len(m.constraints))
	copy(out, m.constraints)
	return out
}

func (m *Model) NumVariables() int   { return len(m.vars) }
func (m *Model) NumConstraints() int { return len(m.constraints) }

// Freeze marks the model read-only. It is called when the model is
// submitted to a solver; any later mutation panics.
func (m *Model) Freeze() { m.frozen = true }

func (m *Model) Frozen() bool { return m.frozen }

// Validate reports constraints that were created without a bound or that
// reference variables from another model.
func (m *Model) Validate() error {
	for _, c := range m.constraints {
		if c.sense == senseUnset {
			return fmt.Errorf("constraint %q has no bound", c.name)
		}
		for _, t := range c.terms {
			if int(t.Var) < 0 || int(t.Var) >= len(m.vars) {
				return fmt.Errorf("constraint %q references unknown variable %d", c.name, t.Var)
			}
		}
	}
	return nil
}

func (m *Model) mustBeMutable() {
	if m.frozen {
		panic("ilp: model is frozen")
	}
}
