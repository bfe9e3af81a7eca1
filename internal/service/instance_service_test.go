package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/blockplan/internal/app"
	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/repository"
	"github.com/alexanderramin/blockplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInstanceService(t *testing.T, observers ...UseCaseObserver) (InstanceService, *repository.SQLiteInstanceRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteInstanceRepo(database)
	return NewInstanceService(repo, testutil.NewTestUoW(database), observers...), repo
}

func TestInstanceService_CreateAndResolve(t *testing.T) {
	rec := &recordingObserver{}
	svc, _ := newInstanceService(t, rec)
	ctx := context.Background()

	inst := testutil.NewTestInstance("weekly")
	require.NoError(t, svc.Create(ctx, inst))

	got, err := svc.Resolve(ctx, inst.ID[:6])
	require.NoError(t, err)
	assert.Equal(t, inst.ID, got.ID)
	assert.Equal(t, inst.Items, got.Items)

	ev := rec.last()
	assert.Equal(t, "create-instance", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 3, ev.Fields["items"])
}

func TestInstanceService_CreateRejectsInvalid(t *testing.T) {
	rec := &recordingObserver{}
	svc, repo := newInstanceService(t, rec)
	ctx := context.Background()

	inst := testutil.NewTestInstance("too long", testutil.WithTimeline(2))
	err := svc.Create(ctx, inst)

	var cfgErr *domain.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, domain.ConfigErrTimelineTooShort, cfgErr.Code)
	assert.False(t, rec.last().Success)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInstanceService_ResolveErrors(t *testing.T) {
	svc, _ := newInstanceService(t)
	ctx := context.Background()

	a := testutil.NewTestInstance("a")
	a.ID = "f00-aaa"
	b := testutil.NewTestInstance("b")
	b.ID = "f00-bbb"
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Create(ctx, b))

	_, err := svc.Resolve(ctx, "f00")
	var solveErr *app.SolveError
	require.True(t, errors.As(err, &solveErr))
	assert.Equal(t, app.SolveErrAmbiguousReference, solveErr.Code)
	assert.Contains(t, err.Error(), "f00-aaa")

	_, err = svc.Resolve(ctx, "zzz")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Resolve(ctx, "")
	require.True(t, errors.As(err, &solveErr))
	assert.Equal(t, app.SolveErrInvalidRequest, solveErr.Code)
}

func TestInstanceService_ImportInstance(t *testing.T) {
	svc, _ := newInstanceService(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "in.json")
	body := `{"name": "from file", "timeline_length": 4, "items": [{"id": "A", "length": 2}],
		"side_constraints": [{"kind": "at_or_after", "item": "A", "ordinal": 3}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	inst, err := svc.ImportInstance(ctx, path)
	require.NoError(t, err)

	stored, err := svc.Resolve(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, "from file", stored.Name)
	require.Len(t, stored.SideConstraints, 1)
	assert.Equal(t, "A_ge_3", stored.SideConstraints[0].Name)
}

func TestInstanceService_ImportReportsAllErrors(t *testing.T) {
	svc, _ := newInstanceService(t)

	path := filepath.Join(t.TempDir(), "bad.json")
	body := `{"timeline_length": 0, "items": [{"id": "A", "length": 0}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := svc.ImportInstance(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(2 errors)")
	assert.Contains(t, err.Error(), "timeline_length must be positive")
	assert.Contains(t, err.Error(), "items[0].length must be positive")
}

func TestInstanceService_Generate(t *testing.T) {
	rec := &recordingObserver{}
	svc, repo := newInstanceService(t, rec)
	ctx := context.Background()

	req := app.GenerateRequest{Items: 8, Positions: 30, MaxLength: 3, Seed: 11}
	inst, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.Len(t, inst.Items, 8)
	assert.Contains(t, inst.Name, "seed 11")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "unsaved generation must not be stored")

	again, err := svc.Generate(ctx, app.GenerateRequest{Items: 8, Positions: 30, MaxLength: 3, Seed: 11, Save: true})
	require.NoError(t, err)
	assert.Equal(t, inst.Items, again.Items)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	ev := rec.last()
	assert.Equal(t, "generate-instance", ev.Name)
	assert.Equal(t, int64(11), ev.Fields["seed"])
}

func TestInstanceService_GenerateRejectsBadParams(t *testing.T) {
	svc, _ := newInstanceService(t)

	_, err := svc.Generate(context.Background(), app.GenerateRequest{Items: 0, Positions: 5, MaxLength: 1})
	var solveErr *app.SolveError
	require.True(t, errors.As(err, &solveErr))
	assert.Equal(t, app.SolveErrInvalidRequest, solveErr.Code)
}

func TestInstanceService_Delete(t *testing.T) {
	svc, _ := newInstanceService(t)
	ctx := context.Background()

	inst := testutil.NewTestInstance("gone")
	require.NoError(t, svc.Create(ctx, inst))
	require.NoError(t, svc.Delete(ctx, inst.ID[:8]))

	_, err := svc.Resolve(ctx, inst.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
