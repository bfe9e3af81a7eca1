package cli

import (
	"fmt"

	"github.com/alexanderramin/blockplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRunCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Inspect recorded solves",
	}

	cmd.AddCommand(newRunListCmd(a), newRunShowCmd(a))

	return cmd
}

func newRunListCmd(a *App) *cobra.Command {
	var (
		instanceRef string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := a.Runs.List(cmd.Context(), instanceRef, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRunList(runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&instanceRef, "instance", "", "Only runs of this instance")
	cmd.Flags().IntVar(&limit, "limit", 20, "Show at most this many runs")

	return cmd
}

func newRunShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one run and its placements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.Runs.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			// The instance only adds the timeline strip; a run is still
			// shown without it.
			inst, _ := a.Instances.Resolve(cmd.Context(), r.InstanceID)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRun(r, inst))
			return nil
		},
	}
}
