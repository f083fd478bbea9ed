package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sednafm/aircurator/internal/app"
	"github.com/sednafm/aircurator/internal/config"
	"github.com/sednafm/aircurator/internal/daily"
	"github.com/sednafm/aircurator/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server and the daily scheduler",
	Long: `Run the aircurator daemon: the HTTP API for mood recommendations and
manual daily-fact generation, plus the scheduler that generates and
publishes the daily fact & match once per day.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForServe(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	application, err := app.New(ctx, cfg, app.Options{WithHistory: true})
	if err != nil {
		return err
	}
	defer application.Close()

	sched := daily.NewScheduler(daily.SchedulerConfig{
		Pipeline: application.Pipeline,
		RunAt:    cfg.DailyRunAt,
	})

	srv := server.New(server.Config{
		Recommender: application.Recommender,
		Pipeline:    application.Pipeline,
		Health:      sched.Health(),
	})

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Router(),
	}

	slog.Info("starting aircurator",
		"addr", cfg.ListenAddr,
		"daily_run_at", cfg.DailyRunAt,
		"episodes", application.Catalog.Len(),
	)

	errCh := make(chan error, 2)
	go func() {
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("scheduler: %w", err)
			return
		}
		errCh <- nil
	}()
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
			return
		}
		errCh <- nil
	}()

	// Wait for shutdown signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	slog.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return httpServer.Shutdown(shutdownCtx)
}
