package repository

import (
	"context"

	"github.com/alexanderramin/blockplan/internal/domain"
)

type InstanceRepo interface {
	Create(ctx context.Context, inst *domain.Instance) error
	GetByID(ctx context.Context, id string) (*domain.Instance, error)
	FindByPrefix(ctx context.Context, prefix string) ([]*domain.Instance, error)
	List(ctx context.Context) ([]*domain.Instance, error)
	Delete(ctx context.Context, id string) error
}

type RunRepo interface {
	Create(ctx context.Context, r *domain.Run) error
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	FindByPrefix(ctx context.Context, prefix string) ([]*domain.Run, error)
	List(ctx context.Context, limit int) ([]*domain.Run, error)
	ListByInstance(ctx context.Context, instanceID string) ([]*domain.Run, error)
}
