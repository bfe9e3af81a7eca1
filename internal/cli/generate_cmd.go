package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/blockplan/internal/app"
	"github.com/alexanderramin/blockplan/internal/cli/formatter"
	"github.com/alexanderramin/blockplan/internal/generation"
	"github.com/alexanderramin/blockplan/internal/importer"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *App) *cobra.Command {
	def := generation.DefaultParams()
	req := app.GenerateRequest{}
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := a.Instances.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := importer.WriteInstanceSchema(f, importer.FromInstance(inst)); err != nil {
					return fmt.Errorf("writing %s: %w", out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s to %s\n", inst.Name, out)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInstance(inst))
			}
			if req.Save {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved instance %s [%s]\n", inst.Name, inst.ID[:8])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&req.Items, "items", def.Items, "Number of items")
	cmd.Flags().IntVar(&req.Positions, "positions", def.Positions, "Timeline length")
	cmd.Flags().IntVar(&req.MaxLength, "max-length", def.MaxLength, "Largest item length")
	cmd.Flags().Int64Var(&req.Seed, "seed", 1, "Random seed; the same seed gives the same items")
	cmd.Flags().BoolVar(&req.Save, "save", false, "Store the instance in the database")
	cmd.Flags().StringVar(&out, "out", "", "Write the instance as JSON to this file")

	return cmd
}
