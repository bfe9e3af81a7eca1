package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/blockplan/internal/app"
	"github.com/alexanderramin/blockplan/internal/cli/formatter"
	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/importer"
	"github.com/alexanderramin/blockplan/internal/service"
	"github.com/spf13/cobra"
)

// loadInstanceArg reads an instance file given as the only positional
// argument, or returns nil when there is none. A file and an --instance
// reference are mutually exclusive.
func loadInstanceArg(args []string, ref string) (*domain.Instance, error) {
	switch {
	case len(args) == 0 && ref == "":
		return nil, fmt.Errorf("give an instance file or --instance ID")
	case len(args) > 0 && ref != "":
		return nil, fmt.Errorf("give an instance file or --instance ID, not both")
	case len(args) == 0:
		return nil, nil
	}
	schema, err := importer.LoadInstanceSchema(args[0])
	if err != nil {
		return nil, fmt.Errorf("loading instance file: %w", err)
	}
	return service.ConvertSchema(schema)
}

func newSolveCmd(a *App) *cobra.Command {
	var (
		ref        string
		enc        domain.Encoding
		solverName string
		save       bool
		stats      bool
		browse     bool
		timeout    time.Duration
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "solve [FILE]",
		Short: "Solve an instance file or a stored instance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstanceArg(args, ref)
			if err != nil {
				return err
			}

			req := app.SolveRequest{
				Instance:    inst,
				InstanceRef: ref,
				Encoding:    enc,
				Solver:      solverName,
				Timeout:     timeout,
				Save:        save,
				Limit:       limit,
			}

			stop := func() {}
			if a.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "solving")
			}
			resp, err := a.Solve.Solve(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}

			if browse && a.interactive() && len(resp.Assignments()) > 1 {
				return a.browse(resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSolve(resp, stats))
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "instance", "", "Stored instance ID or unique ID prefix")
	addModelFlags(cmd.Flags(), &enc, &solverName, a)
	cmd.Flags().BoolVar(&save, "save", false, "Record the run (and an instance file) in the database")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print model variable and constraint counts")
	cmd.Flags().DurationVar(&timeout, "timeout", a.Config.SolveTimeout(), "Give up after this long")
	cmd.Flags().IntVar(&limit, "limit", 1, "Enumerate up to this many distinct assignments")
	cmd.Flags().BoolVar(&browse, "browse", false, "Page through assignments full-screen when on a terminal")

	return cmd
}
