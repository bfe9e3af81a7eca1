package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/blockplan/internal/app"
	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/spf13/cobra"
)

func newExportCmd(a *App) *cobra.Command {
	var (
		ref string
		enc domain.Encoding
		out string
	)

	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write the model of an instance in LP format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstanceArg(args, ref)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			st, err := a.Solve.ExportLP(cmd.Context(), app.ExportRequest{Instance: inst, InstanceRef: ref, Encoding: enc}, w)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d variables, %d constraints\n", st.Variables, st.Constraints)
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "instance", "", "Stored instance ID or unique ID prefix")
	addModelFlags(cmd.Flags(), &enc, nil, a)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")

	return cmd
}
