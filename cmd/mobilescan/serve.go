package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/mobilescan/internal/config"
	"github.com/ludo-technologies/mobilescan/internal/constants"
	"github.com/ludo-technologies/mobilescan/service"
)

const shutdownTimeout = 10 * time.Second

// serveOptions holds the serve command flags
type serveOptions struct {
	host       string
	port       int
	configPath string
}

func serveCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mobile analysis HTTP API",
		Long: `Start an HTTP server exposing the analyzer.

Endpoints:
  GET  /api/health   liveness check
  POST /api/analyze  analyze components posted as JSON

Environment variables are read from .env.development or .env when present.
MOBILESCAN_HOST, MOBILESCAN_PORT and GIN_MODE override the server section
of the config file.

Examples:
  mobilescan serve
  mobilescan serve --port 9090
  curl -X POST localhost:8080/api/analyze \
    -d '{"components":[{"name":"Pay","content":"<button>Pay</button>"}]}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", config.DefaultServerHost,
		"Address to bind")
	cmd.Flags().IntVar(&opts.port, "port", config.DefaultServerPort,
		"Port to listen on")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file")

	return cmd
}

// loadEnv loads the first env file found
func loadEnv() {
	for _, file := range constants.EnvFiles {
		if err := godotenv.Load(file); err == nil {
			slog.Debug("loaded env file", "file", file)
			return
		}
	}
	slog.Debug("no env file found, using environment variables")
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	loadEnv()

	cfg, err := config.LoadConfigWithTarget(opts.configPath, ".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = opts.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = opts.port
	}

	gin.SetMode(cfg.Server.Mode)

	logger := slog.Default()
	svc := service.NewMobileServiceFromConfig(cfg, service.NewProgressManager(false)).WithLogger(logger)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           service.NewRouter(svc, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", "http://"+server.Addr, "mode", cfg.Server.Mode)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if service.IsServerClosed(err) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !service.IsServerClosed(err) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
