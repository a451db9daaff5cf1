package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTrackCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "track <pin>",
		Short: "Show the tracking detail of a PIN or DNC",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.carrierClient(cmd.Context())
			if err != nil {
				return err
			}
			res, err := client.FindTracking(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTracking(res))
			return nil
		},
	}
}
