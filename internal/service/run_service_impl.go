package service

import (
	"context"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/repository"
)

type runService struct {
	runs      repository.RunRepo
	instances repository.InstanceRepo
}

func NewRunService(runs repository.RunRepo, instances repository.InstanceRepo) RunService {
	return &runService{runs: runs, instances: instances}
}

func (s *runService) Resolve(ctx context.Context, ref string) (*domain.Run, error) {
	return resolveRun(ctx, s.runs, ref)
}

// List returns recent runs, optionally restricted to one instance.
func (s *runService) List(ctx context.Context, instanceRef string, limit int) ([]*domain.Run, error) {
	if instanceRef == "" {
		return s.runs.List(ctx, limit)
	}
	inst, err := resolveInstance(ctx, s.instances, instanceRef)
	if err != nil {
		return nil, err
	}
	runs, err := s.runs.ListByInstance(ctx, inst.ID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
