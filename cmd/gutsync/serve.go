package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/log"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the synchronization daemon",
	Long: `Run the synchronization daemon: request authorization, register
change watches, and keep the published snapshot and medication list
current until interrupted.

SIGHUP simulates an app-foreground transition and forces a full refresh.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	eng, plat, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer plat.Close()

	ctx := context.Background()
	logger := log.WithComponent("main")
	if err := eng.RequestAuthorization(ctx); err != nil {
		// Keep running: reads and writes degrade per category instead.
		logger.Warn().Err(err).Msg("authorization request failed")
	}

	if err := eng.Start(); err != nil {
		return err
	}
	defer eng.Stop()

	metrics.SetVersion(Version)
	metrics.RegisterComponent("engine", true, "")
	metrics.RegisterComponent("platform", true, "")

	errCh := make(chan error, 1)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		mux.HandleFunc("/health", metrics.HealthHandler())
		server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listener started")
	}

	fmt.Println("Gutsync is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	for {
		select {
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				logger.Info().Msg("foreground refresh requested")
				eng.Foreground()
				continue
			}
			fmt.Println("\nShutting down...")
			return nil
		case err := <-errCh:
			return err
		}
	}
}
