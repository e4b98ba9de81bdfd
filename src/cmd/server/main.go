package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/api-sage/ledger/src/internal/adapter/http/controller"
	"github.com/api-sage/ledger/src/internal/adapter/http/middleware"
	"github.com/api-sage/ledger/src/internal/adapter/http/router"
	"github.com/api-sage/ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/ledger/src/internal/config"
	"github.com/api-sage/ledger/src/internal/logger"
	"github.com/api-sage/ledger/src/internal/metrics"
	"github.com/api-sage/ledger/src/internal/usecase/services"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:          "ledger",
		Short:        "In-memory money transfer ledger served over HTTP",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "path to a config file (yaml, json or toml)")
	flags.Int("port", config.DefaultPort, "HTTP listen port")
	flags.Bool("seed", true, "load the sample accounts and transactions at startup")
	flags.String("metrics-exporter", "stdout", "metrics exporter: none, stdout or otlp")
	_ = v.BindPFlag("http.port", flags.Lookup("port"))
	_ = v.BindPFlag("seed.enabled", flags.Lookup("seed"))
	_ = v.BindPFlag("metrics.exporter", flags.Lookup("metrics-exporter"))

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	provider, err := metrics.NewMeterProvider(ctx, metrics.ProviderConfig{
		ServiceName:  "ledger",
		Exporter:     cfg.Metrics.Exporter,
		OTLPEndpoint: cfg.Metrics.OTLPEndpoint,
		Interval:     cfg.Metrics.Interval,
	})
	if err != nil {
		return err
	}
	otel.SetMeterProvider(provider)

	recorder, err := metrics.New(provider)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return err
	}

	handler, err := buildHandler(ctx, cfg, recorder)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return err
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("ledger server listening", logger.Fields{
			"addr": server.Addr,
			"env":  cfg.Env,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		logger.Info("ledger server shutting down", nil)
		serverErr := server.Shutdown(shutdownCtx)
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("ledger metrics provider shutdown failed", err, nil)
		}
		if serverErr != nil {
			return fmt.Errorf("shutdown http server: %w", serverErr)
		}
		return nil
	})

	return g.Wait()
}

// buildHandler wires the stores, services and controllers. Both services
// share one lock registry so withdrawals and transfers on the same account
// serialize.
func buildHandler(ctx context.Context, cfg config.Config, recorder *metrics.Recorder) (http.Handler, error) {
	accountRepo := memory.NewAccountRepository()
	transactionRepo := memory.NewTransactionRepository(memory.NewSequence())

	if cfg.Seed.Enabled {
		if err := memory.SeedSampleData(ctx, accountRepo, transactionRepo); err != nil {
			return nil, fmt.Errorf("seed sample data: %w", err)
		}
	}

	locks := services.NewAccountLocks()
	accountService := services.NewAccountService(accountRepo, locks, recorder)
	transferService := services.NewTransferService(accountRepo, transactionRepo, locks, recorder)

	return router.New(
		controller.NewAccountController(accountService),
		controller.NewTransactionController(transferService),
		middleware.Instrument(recorder),
	), nil
}
