package cli

import (
	"fmt"

	"github.com/alexanderramin/blockplan/internal/cli/formatter"
	"github.com/alexanderramin/blockplan/internal/importer"
	"github.com/spf13/cobra"
)

func newInstanceCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instance",
		Aliases: []string{"inst"},
		Short:   "Manage stored instances",
	}

	cmd.AddCommand(
		newInstanceAddCmd(a),
		newInstanceListCmd(a),
		newInstanceShowCmd(a),
		newInstanceRemoveCmd(a),
		newInstanceNewCmd(a),
	)

	return cmd
}

func newInstanceAddCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add FILE",
		Short: "Validate an instance file and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := a.Instances.ImportInstance(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created instance %s [%s]\n", inst.Name, inst.ID[:8])
			return nil
		},
	}
}

func newInstanceListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instances, err := a.Instances.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(instances) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No instances found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInstanceList(instances))
			return nil
		},
	}
}

func newInstanceShowCmd(a *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := a.Instances.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return importer.WriteInstanceSchema(cmd.OutOrStdout(), importer.FromInstance(inst))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInstance(inst))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the instance file instead")

	return cmd
}

func newInstanceRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove an instance and its runs",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := a.Instances.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.Instances.Delete(cmd.Context(), inst.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed instance %s [%s]\n", inst.Name, inst.ID[:8])
			return nil
		},
	}
}

func newInstanceNewCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create an instance interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				return fmt.Errorf("instance new needs a terminal; use instance add FILE instead")
			}
			var in instanceWizardInput
			if err := instanceWizard(&in).Run(); err != nil {
				return err
			}
			inst, err := in.instance()
			if err != nil {
				return err
			}
			if err := a.Instances.Create(cmd.Context(), inst); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created instance %s [%s]\n", inst.Name, inst.ID[:8])
			return nil
		},
	}
}
