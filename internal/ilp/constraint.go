package ilp

import "fmt"

type Sense int

const (
	senseUnset Sense = iota
	Equal
	AtMost
	AtLeast
)

func (s Sense) String() string {
	switch s {
	case Equal:
		return "=="
	case AtMost:
		return "<="
	case AtLeast:
		return ">="
	default:
		return "?"
	}
}

// Term is one coefficient*variable product of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// Constraint is a linear expression with a single bound. Setting a
// coefficient twice for the same variable overwrites the first value.
type Constraint struct {
	model *Model
	name  string
	terms []Term
	index map[Var]int
	sense Sense
	rhs   float64
}

// Set assigns the coefficient of v and returns c for chaining.
func (c *Constraint) Set(v Var, coef float64) *Constraint {
	c.model.mustBeMutable()
	if i, ok := c.index[v]; ok {
		c.terms[i].Coef = coef
		return c
	}
	c.index[v] = len(c.terms)
	c.terms = append(c.terms, Term{Var: v, Coef: coef})
	return c
}

// Equals bounds the expression to == k.
func (c *Constraint) Equals(k float64) *Constraint { return c.bound(Equal, k) }

// AtMost bounds the expression to <= k.
func (c *Constraint) AtMost(k float64) *Constraint { return c.bound(AtMost, k) }

// AtLeast bounds the expression to >= k.
func (c *Constraint) AtLeast(k float64) *Constraint { return c.bound(AtLeast, k) }

func (c *Constraint) bound(s Sense, k float64) *Constraint {
	c.model.mustBeMutable()
	if c.sense != senseUnset {
		panic(fmt.Sprintf("ilp: constraint %q already bounded", c.name))
	}
	c.sense = s
	c.rhs = k
	return c
}

func (c *Constraint) Name() string { return c.name }
func (c *Constraint) Sense() Sense { return c.sense }
func (c *Constraint) RHS() float64 { return c.rhs }
func (c *Constraint) Len() int     { return len(c.terms) }

// Terms returns a copy of the constraint's terms in insertion order.
func (c *Constraint) Terms() []Term {
	out := make([]Term, len(c.terms))
	copy(out, c.terms)
	return out
}

// Satisfied evaluates the constraint against a full value vector.
func (c *Constraint) Satisfied(values []float64) bool {
	const eps = 1e-6
	var sum float64
	for _, t := range c.terms {
		sum += t.Coef * values[t.Var]
	}
	switch c.sense {
	case Equal:
		return sum >= c.rhs-eps && sum <= c.rhs+eps
	case AtMost:
		return sum <= c.rhs+eps
	case AtLeast:
		return sum >= c.rhs-eps
	default:
		return false
	}
}

func (c *Constraint) String() string {
	return fmt.Sprintf("%s: %d terms %s %g", c.name, len(c.terms), c.sense, c.rhs)
}
