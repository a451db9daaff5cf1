package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

func newShipCmd(flags *globalFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Create a shipment from a YAML request file",
		Example: `  cpws ship -f shipment.yaml
  cpws ship -f shipment.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readShipmentRequest(file)
			if err != nil {
				return err
			}

			client, err := flags.carrierClient(cmd.Context())
			if err != nil {
				return err
			}
			res, err := client.CreateShipment(cmd.Context(), req)
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderShipment(res))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "shipment request (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readShipmentRequest(path string) (domain.ShipmentRequest, error) {
	var req domain.ShipmentRequest
	b, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &req); err != nil {
		return req, fmt.Errorf("parsing %s: %w", path, err)
	}
	if req.ServiceCode == "" {
		return req, fmt.Errorf("%s: service_code is required", path)
	}
	if len(req.Packages) == 0 {
		return req, fmt.Errorf("%s: at least one package is required", path)
	}
	return req, nil
}
