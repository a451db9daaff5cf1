package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLabelCmd(flags *globalFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "label <url>",
		Short: "Download a label artifact as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.carrierClient(cmd.Context())
			if err != nil {
				return err
			}
			pdf, err := client.RetrieveLabel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"file": out, "bytes": len(pdf)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), field("Label saved", fmt.Sprintf("%s (%d bytes)", out, len(pdf))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "label.pdf", "output file")
	return cmd
}
