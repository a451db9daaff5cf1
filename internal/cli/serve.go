package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/canadapost-gateway/internal/api"
	"github.com/99minutos/canadapost-gateway/internal/api/handler"
	"github.com/99minutos/canadapost-gateway/internal/api/metrics"
	"github.com/99minutos/canadapost-gateway/internal/carrier/canadapost"
	"github.com/99minutos/canadapost-gateway/internal/core/service"
	"github.com/99minutos/canadapost-gateway/internal/infrastructure/carrierhttp"
	mongodb "github.com/99minutos/canadapost-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/canadapost-gateway/internal/infrastructure/db/redis"
	"github.com/99minutos/canadapost-gateway/internal/infrastructure/queue"
	"github.com/99minutos/canadapost-gateway/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 15 * time.Second
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, flags)
		},
	}
}

func serve(ctx context.Context, flags *globalFlags) error {
	cfg, err := flags.load(ctx)
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "cpws",
	})

	// --- Storage ---
	store, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(context.Background()) }()
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Carrier ---
	catalog := canadapost.DefaultCatalog()
	transport := carrierhttp.New(cfg.Carrier.Timeout, log)
	client := canadapost.NewClient(cfg.Carrier.ClientConfig(), transport, catalog, log)
	carrier := metrics.InstrumentCarrier(client)

	// --- Tracking recorder ---
	recorder := service.NewTrackingRecorder(store.Events, redisdb.NewDedupChecker(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.Recorder.Workers, recorder, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Log:         log,
		JWTSecret:   cfg.JWTSecret,
		Auth:        service.NewAuthService(store.Merchants, cfg.JWTSecret, tokenTTL),
		Rates:       service.NewRateService(carrier, log),
		Tracking:    service.NewTrackingService(carrier, store.Events, dispatcher, log),
		Shipments:   service.NewShipmentService(carrier, store.Shipments, redisdb.NewIdempotencyStore(rdb), log),
		ServiceName: catalog.ServiceName,
		Probes: map[string]handler.Pinger{
			"mongo": handler.PingFunc(store.Ping),
			"redis": handler.PingFunc(redisdb.Probe(rdb)),
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("carrier", cfg.Carrier.BaseURL()).
			Int("recorder_workers", cfg.Recorder.Workers).
			Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
