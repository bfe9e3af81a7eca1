package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/alexanderramin/blockplan/internal/app"
	"github.com/alexanderramin/blockplan/internal/db"
	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/generation"
	"github.com/alexanderramin/blockplan/internal/importer"
	"github.com/alexanderramin/blockplan/internal/repository"
)

type instanceService struct {
	instances repository.InstanceRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewInstanceService(
	instances repository.InstanceRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) InstanceService {
	return &instanceService{
		instances: instances,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Create validates inst and stores it with its items in one transaction.
func (s *instanceService) Create(ctx context.Context, inst *domain.Instance) (err error) {
	fields := map[string]any{"instance": inst.ID, "items": len(inst.Items), "positions": inst.TimelineLength}
	defer observe(ctx, s.observer, "create-instance", fields, &err)()

	if err = inst.Validate(); err != nil {
		return err
	}
	return s.create(ctx, inst)
}

func (s *instanceService) create(ctx context.Context, inst *domain.Instance) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteInstanceRepo(tx).Create(ctx, inst); err != nil {
			return fmt.Errorf("creating instance: %w", err)
		}
		return nil
	})
}

func (s *instanceService) ImportInstance(ctx context.Context, filePath string) (*domain.Instance, error) {
	schema, err := importer.LoadInstanceSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading instance file: %w", err)
	}
	return s.ImportInstanceFromSchema(ctx, schema)
}

func (s *instanceService) ImportInstanceFromSchema(ctx context.Context, schema *importer.InstanceSchema) (*domain.Instance, error) {
	inst, err := ConvertSchema(schema)
	if err != nil {
		return nil, err
	}
	if err := s.Create(ctx, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// ConvertSchema validates and converts an instance file without storing it.
func ConvertSchema(schema *importer.InstanceSchema) (*domain.Instance, error) {
	if errs := importer.ValidateInstanceSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	inst, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting instance file: %w", err)
	}
	return inst, nil
}

func (s *instanceService) Generate(ctx context.Context, req app.GenerateRequest) (inst *domain.Instance, err error) {
	fields := map[string]any{
		"items":      req.Items,
		"positions":  req.Positions,
		"max_length": req.MaxLength,
		"seed":       req.Seed,
		"saved":      req.Save,
	}
	defer observe(ctx, s.observer, "generate-instance", fields, &err)()

	params := generation.Params{Items: req.Items, Positions: req.Positions, MaxLength: req.MaxLength}
	inst, err = generation.RandomInstance(rand.New(rand.NewSource(req.Seed)), params)
	if err != nil {
		return nil, &app.SolveError{Code: app.SolveErrInvalidRequest, Message: err.Error()}
	}
	inst.Name = fmt.Sprintf("%s seed %d", inst.Name, req.Seed)
	fields["instance"] = inst.ID
	fields["total_length"] = domain.TotalLength(inst.Items)

	if req.Save {
		if err = s.create(ctx, inst); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (s *instanceService) Resolve(ctx context.Context, ref string) (*domain.Instance, error) {
	return resolveInstance(ctx, s.instances, ref)
}

func (s *instanceService) List(ctx context.Context) ([]*domain.Instance, error) {
	return s.instances.List(ctx)
}

func (s *instanceService) Delete(ctx context.Context, ref string) error {
	inst, err := s.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	return s.instances.Delete(ctx, inst.ID)
}
