package cli

import (
	"github.com/alexanderramin/blockplan/internal/app"
	"github.com/alexanderramin/blockplan/internal/config"
	"github.com/alexanderramin/blockplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Instances service.InstanceService
	Runs      service.RunService
	Solve     service.SolveService
	Config    config.Config

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Browse shows several assignments in a full-screen pager. Nil falls
	// back to the bubbletea browser.
	Browse func(resp *app.SolveResponse) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "blockplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "blockplan",
		Short:         "Place items as contiguous runs on a timeline using a binary ILP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSolveCmd(a),
		newGenerateCmd(a),
		newInstanceCmd(a),
		newRunCmd(a),
		newExportCmd(a),
	)

	return root
}
