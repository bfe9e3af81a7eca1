package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/repository"
	"github.com/alexanderramin/blockplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunService_ListAndResolve(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	instances := repository.NewSQLiteInstanceRepo(database)
	runs := repository.NewSQLiteRunRepo(database)
	svc := NewRunService(runs, instances)

	first := testutil.NewTestInstance("first")
	second := testutil.NewTestInstance("second")
	require.NoError(t, instances.Create(ctx, first))
	require.NoError(t, instances.Create(ctx, second))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var firstRuns []*domain.Run
	for i := range 3 {
		r := testutil.NewTestRun(first.ID, testutil.WithRunCreatedAt(base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, runs.Create(ctx, r))
		firstRuns = append(firstRuns, r)
	}
	infeasible := testutil.NewTestRun(second.ID,
		testutil.WithRunStatus(domain.RunInfeasible),
		testutil.WithPlacements(),
		testutil.WithRunCreatedAt(base.Add(time.Hour)),
	)
	require.NoError(t, runs.Create(ctx, infeasible))

	all, err := svc.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, infeasible.ID, all[0].ID, "newest first")

	limited, err := svc.List(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	byInstance, err := svc.List(ctx, first.ID[:8], 2)
	require.NoError(t, err)
	require.Len(t, byInstance, 2)
	assert.Equal(t, firstRuns[2].ID, byInstance[0].ID)
	assert.Equal(t, firstRuns[1].ID, byInstance[1].ID)

	got, err := svc.Resolve(ctx, infeasible.ID[:10])
	require.NoError(t, err)
	assert.Equal(t, domain.RunInfeasible, got.Status)
	assert.Empty(t, got.Placements)

	_, err = svc.Resolve(ctx, "ffffffff-none")
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	_, err = svc.List(ctx, "missing-instance", 0)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
