package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"problem-analytics-service/internal/config"
	"problem-analytics-service/internal/controller"
	"problem-analytics-service/internal/db"
	httpserver "problem-analytics-service/internal/http"
	"problem-analytics-service/internal/repository"
	"problem-analytics-service/internal/service"
	"problem-analytics-service/internal/zabbix"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	repo, closeRepo, err := diagnosticsRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	client := zabbix.NewClient(cfg.ZabbixURL, cfg.ZabbixAPIToken, cfg.ZabbixTimeout)
	worker := service.NewDiagnosticsWorker(repo, cfg.DiagBufferSize, cfg.DiagBatchSize, cfg.DiagFlushEvery)
	comparisonService := service.NewComparisonService(client, worker, repo, cfg.ZabbixTimeout, cfg.MetadataCacheTTL)
	analyticsController := controller.NewAnalyticsController(comparisonService)

	server := httpserver.NewServer(cfg, analyticsController, client)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] starting server on %s", cfg.HTTPPort)
		errCh <- server.Listen(cfg.HTTPPort)
	}()

	select {
	case err = <-errCh:
		err = fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
		log.Println("[INFO] shutting down")
		if shutdownErr := server.Shutdown(); shutdownErr != nil {
			log.Printf("[ERROR] server shutdown: %v", shutdownErr)
		}
	}

	worker.Shutdown()
	return err
}

// diagnosticsRepository picks the ClickHouse store when configured and the log-only one otherwise.
func diagnosticsRepository(ctx context.Context, cfg *config.Config) (repository.DiagnosticsRepository, func(), error) {
	if !cfg.DiagnosticsStoreEnabled() {
		log.Println("[INFO] CLICKHOUSE_ADDR not set, fetch failures are only logged")
		return repository.NewLogRepository(), func() {}, nil
	}

	conn, err := db.NewConnection(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	return repository.NewDiagnosticsRepository(conn), func() { _ = conn.Close() }, nil
}
