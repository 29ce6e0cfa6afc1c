package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/log"
	"github.com/nao1215/docscore/internal/pipeline"
	"github.com/nao1215/docscore/internal/server"
	"github.com/spf13/cobra"
)

// Rate limit defaults for the HTTP API, per client IP.
const (
	defaultRateLimit = 2.0
	defaultBurst     = 5
	shutdownTimeout  = 10 * time.Second
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer over HTTP",
		Long: `Serve starts an HTTP API with the same analysis as the analyze command.

Routes:
  GET  /api/health          returns {"status": "ok"}
  POST /api/analyze         {"url": "https://..."} returns the JSON report
  POST /api/analyze/batch   {"urls": ["https://...", ...]} returns an array of
                            reports and failure records in input order

Examples:
  # Listen on the default address
  docscore serve

  # Listen on port 8080 without AI review
  docscore serve --addr :8080 --no-ai`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addConfigFlags(cmd)

	cmd.Flags().StringP("addr", "a", config.DefaultServeAddress,
		"Listen address")
	cmd.Flags().Float64("rate-limit", defaultRateLimit,
		"Requests per second allowed per client IP (0 disables limiting)")
	cmd.Flags().Int("burst", defaultBurst,
		"Request burst allowed per client IP")
	cmd.Flags().Int("max-batch", server.DefaultMaxBatchURLs,
		"Maximum number of URLs in one batch request")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	flags := cmd.Flags()
	addr, err := flags.GetString("addr")
	if err != nil {
		return err
	}
	rps, err := flags.GetFloat64("rate-limit")
	if err != nil {
		return err
	}
	burst, err := flags.GetInt("burst")
	if err != nil {
		return err
	}
	maxBatch, err := flags.GetInt("max-batch")
	if err != nil {
		return err
	}

	logger := log.NewSecureJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
	if cfg.Verbose {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	analyzer, err := pipeline.NewAnalyzer(cfg, pipeline.WithAnalyzerLogger(logger))
	if err != nil {
		return err
	}
	srv := server.New(analyzer,
		server.WithBatchSize(cfg.BatchSize),
		server.WithMaxBatchURLs(maxBatch),
		server.WithRateLimit(rps, burst),
		server.WithLogger(logger),
	)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.OutOrStdout(), "docscore API listening on %s (AI review: %t)\n", addr, cfg.AIEnabled())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Warn("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
