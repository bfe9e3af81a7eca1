package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/blockplan/internal/app"
	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/repository"
)

// resolveByRef looks ref up as an exact id first, then as a unique id
// prefix.
func resolveByRef[T any](
	ctx context.Context,
	kind, ref string,
	get func(context.Context, string) (T, error),
	find func(context.Context, string) ([]T, error),
	id func(T) string,
) (T, error) {
	var zero T
	if ref == "" {
		return zero, &app.SolveError{Code: app.SolveErrInvalidRequest, Message: kind + " id is required"}
	}
	got, err := get(ctx, ref)
	if err == nil {
		return got, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return zero, err
	}

	matches, err := find(ctx, ref)
	if err != nil {
		return zero, err
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s %q: %w", kind, ref, repository.ErrNotFound)
	case 1:
		return get(ctx, id(matches[0]))
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = id(m)
		}
		return zero, &app.SolveError{
			Code:    app.SolveErrAmbiguousReference,
			Message: fmt.Sprintf("%s %q matches %d ids: %s", kind, ref, len(ids), strings.Join(ids, ", ")),
		}
	}
}

func resolveInstance(ctx context.Context, repo repository.InstanceRepo, ref string) (*domain.Instance, error) {
	return resolveByRef(ctx, "instance", ref, repo.GetByID, repo.FindByPrefix,
		func(inst *domain.Instance) string { return inst.ID })
}

func resolveRun(ctx context.Context, repo repository.RunRepo, ref string) (*domain.Run, error) {
	return resolveByRef(ctx, "run", ref, repo.GetByID, repo.FindByPrefix,
		func(r *domain.Run) string { return r.ID })
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("instance validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
