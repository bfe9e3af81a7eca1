package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/blockplan/internal/app"
	"github.com/alexanderramin/blockplan/internal/db"
	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/formulation"
	"github.com/alexanderramin/blockplan/internal/ilp"
	"github.com/alexanderramin/blockplan/internal/repository"
	"github.com/alexanderramin/blockplan/internal/solver"
	"github.com/google/uuid"
)

// SolveDefaults fill in whatever a request leaves empty.
type SolveDefaults struct {
	Encoding domain.Encoding
	Solver   string
	Timeout  time.Duration
}

type solveService struct {
	instances repository.InstanceRepo
	uow       db.UnitOfWork
	defaults  SolveDefaults
	newSolver func(name string) (ilp.Solver, error)
	observer  UseCaseObserver
}

func NewSolveService(
	instances repository.InstanceRepo,
	uow db.UnitOfWork,
	defaults SolveDefaults,
	observers ...UseCaseObserver,
) SolveService {
	if defaults.Solver == "" {
		defaults.Solver = solver.NameGophersat
	}
	if defaults.Encoding == "" {
		defaults.Encoding = domain.DefaultEncoding
	}
	return &solveService{
		instances: instances,
		uow:       uow,
		defaults:  defaults,
		newSolver: solver.New,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *solveService) Solve(ctx context.Context, req app.SolveRequest) (resp *app.SolveResponse, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "solve", fields, &err)()

	inst, err := s.instanceFor(ctx, req.Instance, req.InstanceRef)
	if err != nil {
		return nil, err
	}
	fields["instance"] = inst.ID

	enc, err := domain.ParseEncoding(string(firstNonEmpty(req.Encoding, s.defaults.Encoding)))
	if err != nil {
		return nil, err
	}
	name := firstNonEmpty(req.Solver, s.defaults.Solver)
	engine, err := s.newSolver(name)
	if err != nil {
		return nil, &app.SolveError{Code: app.SolveErrUnknownSolver, Message: err.Error()}
	}
	fields["encoding"] = string(enc)
	fields["solver"] = name

	f, err := formulation.BuildInstance(inst, enc)
	if err != nil {
		return nil, err
	}
	st := f.Stats()
	fields["variables"] = st.Variables
	fields["constraints"] = st.Constraints

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = s.defaults.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp = &app.SolveResponse{
		Instance: inst,
		Encoding: enc,
		Solver:   name,
		Stats:    toModelStats(st),
	}

	started := time.Now()
	first, solveErr := solveFormulation(ctx, engine, f)
	if solveErr == nil && first != nil && req.Limit > 1 {
		resp.Alternatives, resp.EnumerationErr = s.enumerate(ctx, engine, inst, enc, first, req.Limit-1)
		if resp.EnumerationErr != nil {
			fields["enumeration_error"] = resp.EnumerationErr.Error()
		}
	}
	resp.Duration = time.Since(started)
	resp.Assignment = first

	switch {
	case solveErr != nil:
		resp.Status = domain.RunFailed
	case first == nil:
		resp.Status = domain.RunInfeasible
	default:
		resp.Status = domain.RunFeasible
	}
	fields["status"] = string(resp.Status)

	if req.Save {
		runErr := solveErr
		if runErr == nil {
			runErr = resp.EnumerationErr
		}
		run := s.newRun(inst, resp, runErr)
		// The solve context may have timed out; recording the run must not.
		saveCtx := context.WithoutCancel(ctx)
		if err = s.saveRun(saveCtx, inst, run); err != nil {
			return nil, err
		}
		resp.RunID = run.ID
		fields["run"] = run.ID
	}

	if solveErr != nil {
		return nil, solveErr
	}
	return resp, nil
}

// solveFormulation returns the decoded assignment, or nil when the model is
// infeasible. A result that violates the model is reported as a solver
// failure.
func solveFormulation(ctx context.Context, engine ilp.Solver, f *formulation.Formulation) (*domain.Assignment, error) {
	res, err := engine.Solve(ctx, f.Model, ilp.Objective{})
	if err != nil {
		return nil, err
	}
	switch res.Status {
	case ilp.StatusInfeasible:
		return nil, nil
	case ilp.StatusOptimal:
	default:
		return nil, &ilp.SolverError{Backend: engine.Name(), Err: fmt.Errorf("unexpected status %s", res.Status)}
	}

	if err := f.CheckResult(res); err != nil {
		return nil, &ilp.SolverError{Backend: engine.Name(), Err: fmt.Errorf("invalid solution: %w", err)}
	}
	a, err := f.Decode(res)
	if err != nil {
		return nil, &ilp.SolverError{Backend: engine.Name(), Err: err}
	}
	if err := a.Verify(); err != nil {
		return nil, &ilp.SolverError{Backend: engine.Name(), Err: fmt.Errorf("invalid assignment: %w", err)}
	}
	return a, nil
}

// enumerate finds up to limit further assignments, each differing from all
// earlier ones, by rebuilding the model with one exclusion per assignment.
// An assignment that occupies no cell is the only one there is.
func (s *solveService) enumerate(ctx context.Context, engine ilp.Solver, inst *domain.Instance, enc domain.Encoding, first *domain.Assignment, limit int) ([]*domain.Assignment, error) {
	exclude := first.Exclusion("exclude_1")
	if len(exclude.Cells) == 0 {
		return nil, nil
	}
	side := append([]domain.SideConstraint(nil), inst.SideConstraints...)
	side = append(side, exclude)

	var out []*domain.Assignment
	for len(out) < limit {
		f, err := formulation.Build(inst.Items, inst.Positions(), side, enc)
		if err != nil {
			return out, err
		}
		a, err := solveFormulation(ctx, engine, f)
		if err != nil {
			return out, err
		}
		if a == nil {
			break
		}
		out = append(out, a)
		side = append(side, a.Exclusion(fmt.Sprintf("exclude_%d", len(out)+1)))
	}
	return out, nil
}

func (s *solveService) newRun(inst *domain.Instance, resp *app.SolveResponse, solveErr error) *domain.Run {
	run := &domain.Run{
		ID:              uuid.New().String(),
		InstanceID:      inst.ID,
		Encoding:        resp.Encoding,
		Solver:          resp.Solver,
		Status:          resp.Status,
		VariableCount:   resp.Stats.Variables,
		ConstraintCount: resp.Stats.Constraints,
		DurationMs:      resp.Duration.Milliseconds(),
		CreatedAt:       time.Now().UTC(),
	}
	if solveErr != nil {
		run.Error = solveErr.Error()
	}
	if resp.Assignment != nil {
		run.Placements = resp.Assignment.Placements
	}
	return run
}

// saveRun stores the run, and the instance too when it was solved inline
// and is not stored yet, in one transaction.
func (s *solveService) saveRun(ctx context.Context, inst *domain.Instance, run *domain.Run) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		instances := repository.NewSQLiteInstanceRepo(tx)
		if _, err := instances.GetByID(ctx, inst.ID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			if err := instances.Create(ctx, inst); err != nil {
				return fmt.Errorf("saving instance: %w", err)
			}
		}
		if err := repository.NewSQLiteRunRepo(tx).Create(ctx, run); err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		return nil
	})
}

func (s *solveService) ExportLP(ctx context.Context, req app.ExportRequest, w io.Writer) (*app.ModelStats, error) {
	inst, err := s.instanceFor(ctx, req.Instance, req.InstanceRef)
	if err != nil {
		return nil, err
	}
	enc, err := domain.ParseEncoding(string(firstNonEmpty(req.Encoding, s.defaults.Encoding)))
	if err != nil {
		return nil, err
	}
	f, err := formulation.BuildInstance(inst, enc)
	if err != nil {
		return nil, err
	}
	if err := ilp.WriteLP(w, f.Model, ilp.Objective{}); err != nil {
		return nil, fmt.Errorf("writing LP: %w", err)
	}
	st := toModelStats(f.Stats())
	return &st, nil
}

func (s *solveService) instanceFor(ctx context.Context, inline *domain.Instance, ref string) (*domain.Instance, error) {
	if inline != nil {
		if ref != "" {
			return nil, &app.SolveError{Code: app.SolveErrInvalidRequest, Message: "give an instance or an instance id, not both"}
		}
		return inline, nil
	}
	return resolveInstance(ctx, s.instances, ref)
}

func toModelStats(st formulation.Stats) app.ModelStats {
	return app.ModelStats{
		Items:       st.Items,
		Positions:   st.Positions,
		Cells:       st.Cells,
		Indicators:  st.Indicators,
		Variables:   st.Variables,
		Constraints: st.Constraints,
	}
}

func firstNonEmpty[T ~string](vals ...T) T {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
