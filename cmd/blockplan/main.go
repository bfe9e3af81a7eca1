package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/blockplan/internal/cli"
	"github.com/alexanderramin/blockplan/internal/config"
	"github.com/alexanderramin/blockplan/internal/db"
	"github.com/alexanderramin/blockplan/internal/repository"
	"github.com/alexanderramin/blockplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	instanceRepo := repository.NewSQLiteInstanceRepo(database)
	runRepo := repository.NewSQLiteRunRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Instances: service.NewInstanceService(instanceRepo, uow, observers...),
		Runs:      service.NewRunService(runRepo, instanceRepo),
		Solve: service.NewSolveService(instanceRepo, uow, service.SolveDefaults{
			Encoding: cfg.Encoding,
			Solver:   cfg.Solver,
			Timeout:  cfg.SolveTimeout(),
		}, observers...),
		Config: cfg,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
