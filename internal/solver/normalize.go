package solver

import (
	"fmt"
	"math"

	"github.com/alexanderramin/blockplan/internal/ilp"
)

// literal is a variable or its negation.
type literal struct {
	v   ilp.Var
	neg bool
}

// pbConstraint is the normal form both engines consume:
//
//	sum(weights[i] * lits[i]) >= atLeast, every weight > 0, atLeast > 0.
type pbConstraint struct {
	name    string
	lits    []literal
	weights []int
	atLeast int
}

func (c pbConstraint) weightSum() int {
	total := 0
	for _, w := range c.weights {
		total += w
	}
	return total
}

// normalized is a model rewritten into pseudo-boolean normal form.
// Constraints that hold for every assignment are dropped; infeasible is
// set when one can never hold.
type normalized struct {
	numVars     int
	constraints []pbConstraint
	infeasible  bool
	reason      string
}

// normalize rewrites m into >= constraints over literals with positive
// integer weights. Only binary variables and integral coefficients are
// accepted.
func normalize(m *ilp.Model) (*normalized, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ilp.ErrUnsupported, err)
	}
	out := &normalized{numVars: m.NumVariables()}

	for _, v := range m.Variables() {
		if v.Kind != ilp.Binary {
			return nil, fmt.Errorf("%w: variable %s is %s", ilp.ErrUnsupported, v.Name, v.Kind)
		}
		if v.Lower > 0 {
			out.add(geq("lower_"+v.Name, []ilp.Term{{Var: v.Handle, Coef: 1}}, 1))
		}
		if v.Upper < 1 {
			out.add(geq("upper_"+v.Name, []ilp.Term{{Var: v.Handle, Coef: -1}}, 0))
		}
	}

	for _, c := range m.Constraints() {
		terms, err := integralTerms(c)
		if err != nil {
			return nil, err
		}
		rhs, err := integral(c.RHS())
		if err != nil {
			return nil, fmt.Errorf("%w: constraint %s rhs: %v", ilp.ErrUnsupported, c.Name(), err)
		}
		switch c.Sense() {
		case ilp.AtLeast:
			out.add(geq(c.Name(), terms, rhs))
		case ilp.AtMost:
			out.add(geq(c.Name(), negate(terms), -rhs))
		case ilp.Equal:
			out.add(geq(c.Name()+"_ge", terms, rhs))
			out.add(geq(c.Name()+"_le", negate(terms), -rhs))
		}
	}
	return out, nil
}

func (n *normalized) add(c pbConstraint, trivial, impossible bool) {
	switch {
	case impossible:
		if !n.infeasible {
			n.infeasible = true
			n.reason = c.name
		}
	case trivial:
	default:
		n.constraints = append(n.constraints, c)
	}
}

// geq builds sum(terms) >= k in normal form. A negative coefficient a on x
// is rewritten as |a| on not-x with |a| added to k. Weights larger than k
// are saturated to k, which keeps the solution set unchanged.
func geq(name string, terms []ilp.Term, k int) (pbConstraint, bool, bool) {
	c := pbConstraint{name: name}
	for _, t := range terms {
		a := int(t.Coef)
		switch {
		case a > 0:
			c.lits = append(c.lits, literal{v: t.Var})
			c.weights = append(c.weights, a)
		case a < 0:
			c.lits = append(c.lits, literal{v: t.Var, neg: true})
			c.weights = append(c.weights, -a)
			k += -a
		}
	}
	c.atLeast = k
	if k <= 0 {
		return c, true, false
	}
	for i, w := range c.weights {
		if w > k {
			c.weights[i] = k
		}
	}
	if c.weightSum() < k {
		return c, false, true
	}
	return c, false, false
}

func integralTerms(c *ilp.Constraint) ([]ilp.Term, error) {
	terms := c.Terms()
	for i, t := range terms {
		a, err := integral(t.Coef)
		if err != nil {
			return nil, fmt.Errorf("%w: constraint %s coefficient: %v", ilp.ErrUnsupported, c.Name(), err)
		}
		terms[i].Coef = float64(a)
	}
	return terms, nil
}

func integral(f float64) (int, error) {
	r := math.Round(f)
	if math.Abs(f-r) > 1e-9 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%g is not an integer", f)
	}
	return int(r), nil
}

func negate(terms []ilp.Term) []ilp.Term {
	out := make([]ilp.Term, len(terms))
	for i, t := range terms {
		out[i] = ilp.Term{Var: t.Var, Coef: -t.Coef}
	}
	return out
}
