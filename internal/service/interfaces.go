package service

import (
	"context"

	"github.com/alexanderramin/blockplan/internal/app"
	"github.com/alexanderramin/blockplan/internal/domain"
)

type InstanceService interface {
	app.ImportInstanceUseCase
	app.GenerateInstanceUseCase
	Create(ctx context.Context, inst *domain.Instance) error
	Resolve(ctx context.Context, ref string) (*domain.Instance, error)
	List(ctx context.Context) ([]*domain.Instance, error)
	Delete(ctx context.Context, ref string) error
}

type RunService interface {
	Resolve(ctx context.Context, ref string) (*domain.Run, error)
	List(ctx context.Context, instanceRef string, limit int) ([]*domain.Run, error)
}

type SolveService interface {
	app.SolveUseCase
	app.ExportModelUseCase
}
