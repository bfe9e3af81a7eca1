package solver

import (
	"context"
	"time"

	"github.com/alexanderramin/blockplan/internal/ilp"
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// Gini solves models with the gini CDCL SAT solver. Weighted constraints
// are expanded into cardinality constraints by repeating each literal
// weight times, then encoded with sorting networks.
type Gini struct {
	// PollInterval is how often a running solve checks for cancellation.
	PollInterval time.Duration
}

func NewGini() *Gini { return &Gini{PollInterval: 5 * time.Millisecond} }

func (g *Gini) Name() string { return NameGini }

func (g *Gini) Solve(ctx context.Context, m *ilp.Model, obj ilp.Objective) (*ilp.Result, error) {
	norm, err := prepare(ctx, NameGini, m, obj)
	if err != nil {
		return nil, err
	}
	if norm.infeasible {
		return infeasible(), nil
	}
	return runGuarded(NameGini, func() (*ilp.Result, error) {
		return g.solveCNF(ctx, norm)
	})
}

func (g *Gini) solveCNF(ctx context.Context, norm *normalized) (*ilp.Result, error) {
	c := logic.NewC()
	vars := make([]z.Lit, norm.numVars)
	for i := range vars {
		vars[i] = c.Lit()
	}

	roots := make([]z.Lit, 0, len(norm.constraints))
	for _, pc := range norm.constraints {
		roots = append(roots, cardinality(c, vars, pc))
	}

	sat := gini.New()
	c.ToCnf(sat)
	for _, r := range roots {
		sat.Add(r)
		sat.Add(0)
	}

	status, err := g.await(ctx, sat)
	if err != nil {
		return nil, &ilp.SolverError{Backend: NameGini, Err: err}
	}
	if status != 1 {
		return infeasible(), nil
	}

	maxVar := sat.MaxVar()
	values := make([]float64, norm.numVars)
	for i, l := range vars {
		if l.Var() <= maxVar && sat.Value(l) {
			values[i] = 1
		}
	}
	return feasible(values), nil
}

// await polls an asynchronous solve so ctx can stop it.
func (g *Gini) await(ctx context.Context, sat *gini.Gini) (int, error) {
	interval := g.PollInterval
	if interval <= 0 {
		interval = 5 * time.Millisecond
	}
	run := sat.GoSolve()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if res, done := run.Test(); done {
			return res, nil
		}
		select {
		case <-ctx.Done():
			run.Stop()
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}

// cardinality returns a literal that is true iff pc holds. Clauses
// (threshold 1) become a disjunction; everything else goes through a
// sorting network over the weight-expanded literals.
func cardinality(c *logic.C, vars []z.Lit, pc pbConstraint) z.Lit {
	ms := make([]z.Lit, 0, pc.weightSum())
	for i, l := range pc.lits {
		m := vars[l.v]
		if l.neg {
			m = m.Not()
		}
		for w := 0; w < pc.weights[i]; w++ {
			ms = append(ms, m)
		}
	}
	if pc.atLeast == 1 {
		return c.Ors(ms...)
	}
	return c.CardSort(ms).Geq(pc.atLeast)
}
