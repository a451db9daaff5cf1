package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

func newRateCmd(flags *globalFlags) *cobra.Command {
	var (
		from     string
		to       string
		country  string
		weight   float64
		dims     string
		services []string
		mailDate string
	)

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Quote every service for a parcel",
		Example: `  cpws rate --from K1P1J1 --to V5J2T2 --weight 1.2
  cpws rate --from K1P1J1 --to 90210 --country US --weight 2 --dims 30x20x10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if weight <= 0 {
				return fmt.Errorf("--weight must be greater than 0")
			}
			pkg := domain.Package{WeightKg: weight}
			if dims != "" {
				d, err := parseDimensions(dims)
				if err != nil {
					return err
				}
				pkg.Dimensions = d
			}

			req := domain.RateRequest{
				Origin:       domain.Location{Country: "CA", PostalCode: from},
				Destination:  domain.Location{Country: country, PostalCode: to},
				Packages:     []domain.Package{pkg},
				ServiceCodes: services,
			}
			if mailDate != "" {
				t, err := time.Parse("2006-01-02", mailDate)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
				req.ExpectedMailingDate = t
			}

			client, err := flags.carrierClient(cmd.Context())
			if err != nil {
				return err
			}
			res, err := client.FindRates(cmd.Context(), req)
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRates(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "origin postal code")
	cmd.Flags().StringVar(&to, "to", "", "destination postal or zip code")
	cmd.Flags().StringVar(&country, "country", "CA", "destination country code or name")
	cmd.Flags().Float64Var(&weight, "weight", 0, "total weight in kg")
	cmd.Flags().StringVar(&dims, "dims", "", "dimensions in cm as LxWxH")
	cmd.Flags().StringSliceVar(&services, "service", nil, "restrict the quote to these service codes")
	cmd.Flags().StringVar(&mailDate, "date", "", "expected mailing date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

// parseDimensions reads "30x20x10" into centimetres.
func parseDimensions(s string) ([]float64, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 3 {
		return nil, fmt.Errorf("--dims must be LxWxH, got %q", s)
	}
	out := make([]float64, 0, 3)
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("--dims must be LxWxH, got %q", s)
		}
		out = append(out, v)
	}
	return out, nil
}
