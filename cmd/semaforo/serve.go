package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/semaforo/internal/cli"
	"github.com/aretw0/semaforo/internal/logging"
	httpAdapter "github.com/aretw0/semaforo/pkg/adapters/http"
	"github.com/aretw0/semaforo/pkg/config"
	"github.com/aretw0/semaforo/pkg/observability"
)

const defaultAddr = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP simulation server",
	Long:  `Serves POST /simulate, GET /states/{state}, GET /health and GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")

		addr, err := serveAddr(cmd, configPath)
		if err != nil {
			return err
		}

		level, err := logLevel(cmd)
		if err != nil {
			return err
		}
		logger := logging.NewWithWriter(cmd.ErrOrStderr(), level, jsonLogs)

		metrics := observability.NewMetrics(true)
		srv := &http.Server{
			Addr:              addr,
			Handler:           httpAdapter.NewServer(metrics, logger).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting Semaforo Server", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Semaforo Server stopped gracefully")
			return nil
		}
	},
}

// serveAddr picks --addr, then serve.addr from the config file, then the default.
func serveAddr(cmd *cobra.Command, configPath string) (string, error) {
	if cmd.Flags().Changed("addr") {
		return cmd.Flags().GetString("addr")
	}
	if configPath == "" {
		configPath = config.DefaultPath
	}
	file, err := config.Load(configPath)
	if err != nil {
		return "", err
	}
	if file.Serve.Addr != "" {
		return file.Serve.Addr, nil
	}
	return defaultAddr, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", defaultAddr, "Address to listen on")
	serveCmd.Flags().Bool("json-logs", false, "Write logs as JSON")
}
