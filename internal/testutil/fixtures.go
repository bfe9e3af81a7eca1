package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/google/uuid"
)

var testInstanceCounter atomic.Int64

// Instance options
type InstanceOption func(*domain.Instance)

func WithItems(items ...domain.Item) InstanceOption {
	return func(inst *domain.Instance) {
		inst.Items = items
	}
}

func WithTimeline(n int) InstanceOption {
	return func(inst *domain.Instance) {
		inst.TimelineLength = n
	}
}

func WithSideConstraints(side ...domain.SideConstraint) InstanceOption {
	return func(inst *domain.Instance) {
		inst.SideConstraints = side
	}
}

func WithCreatedAt(t time.Time) InstanceOption {
	return func(inst *domain.Instance) {
		inst.CreatedAt = t
	}
}

// NewTestInstance returns items A(1), B(2), C(3) on a timeline of 6 unless
// options say otherwise.
func NewTestInstance(name string, opts ...InstanceOption) *domain.Instance {
	if name == "" {
		name = fmt.Sprintf("instance-%02d", testInstanceCounter.Add(1))
	}
	inst := &domain.Instance{
		ID:             uuid.New().String(),
		Name:           name,
		TimelineLength: 6,
		Items: []domain.Item{
			{ID: "A", Length: 1},
			{ID: "B", Length: 2},
			{ID: "C", Length: 3},
		},
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// Run options
type RunOption func(*domain.Run)

func WithRunStatus(s domain.RunStatus) RunOption {
	return func(r *domain.Run) {
		r.Status = s
	}
}

func WithRunEncoding(e domain.Encoding) RunOption {
	return func(r *domain.Run) {
		r.Encoding = e
	}
}

func WithRunSolver(name string) RunOption {
	return func(r *domain.Run) {
		r.Solver = name
	}
}

func WithPlacements(ps ...domain.Placement) RunOption {
	return func(r *domain.Run) {
		r.Placements = ps
	}
}

func WithRunCreatedAt(t time.Time) RunOption {
	return func(r *domain.Run) {
		r.CreatedAt = t
	}
}

func WithRunError(msg string) RunOption {
	return func(r *domain.Run) {
		r.Status = domain.RunFailed
		r.Error = msg
		r.Placements = nil
	}
}

func NewTestRun(instanceID string, opts ...RunOption) *domain.Run {
	r := &domain.Run{
		ID:              uuid.New().String(),
		InstanceID:      instanceID,
		Encoding:        domain.EncodingWindowIndicator,
		Solver:          "gophersat",
		Status:          domain.RunFeasible,
		VariableCount:   31,
		ConstraintCount: 23,
		DurationMs:      4,
		Placements: []domain.Placement{
			{ItemID: "A", Start: 1, End: 1},
			{ItemID: "B", Start: 2, End: 3},
			{ItemID: "C", Start: 4, End: 6},
		},
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
