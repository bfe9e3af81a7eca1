package app

import (
	"context"
	"io"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/importer"
)

type SolveUseCase interface {
	Solve(ctx context.Context, req SolveRequest) (*SolveResponse, error)
}

type ExportModelUseCase interface {
	ExportLP(ctx context.Context, req ExportRequest, w io.Writer) (*ModelStats, error)
}

type ImportInstanceUseCase interface {
	ImportInstance(ctx context.Context, filePath string) (*domain.Instance, error)
	ImportInstanceFromSchema(ctx context.Context, schema *importer.InstanceSchema) (*domain.Instance, error)
}

type GenerateInstanceUseCase interface {
	Generate(ctx context.Context, req GenerateRequest) (*domain.Instance, error)
}
