package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/canadapost-gateway/internal/carrier/canadapost"
	"github.com/99minutos/canadapost-gateway/internal/infrastructure/carrierhttp"
	"github.com/99minutos/canadapost-gateway/internal/infrastructure/config"
	"github.com/99minutos/canadapost-gateway/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
)

// globalFlags are shared by every command.
type globalFlags struct {
	envFile    string
	logLevel   string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "cpws",
		Short:         "Canada Post web services gateway",
		Long:          "cpws quotes rates, tracks parcels and creates shipments with Canada Post, and serves the same operations over HTTP.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before the environment")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override LOG_LEVEL (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "print raw JSON instead of formatted output")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newRateCmd(flags))
	cmd.AddCommand(newTrackCmd(flags))
	cmd.AddCommand(newShipCmd(flags))
	cmd.AddCommand(newLabelCmd(flags))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("error: ")+err.Error())
		return err
	}
	return nil
}

func (f *globalFlags) load(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, f.envFile)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg, nil
}

// cliLogger writes to stderr so command output stays clean.
func cliLogger(cfg *config.Config) zerolog.Logger {
	return logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Output:  os.Stderr,
		Service: "cpws",
	})
}

// carrierClient builds a client from configuration, for commands that talk
// to the carrier directly.
func (f *globalFlags) carrierClient(ctx context.Context) (*canadapost.Client, error) {
	cfg, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	log := cliLogger(cfg)
	transport := carrierhttp.New(cfg.Carrier.Timeout, log)
	return canadapost.NewClient(cfg.Carrier.ClientConfig(), transport, canadapost.DefaultCatalog(), log), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
