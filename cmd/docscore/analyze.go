package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/model"
	"github.com/nao1215/docscore/internal/pipeline"
	"github.com/nao1215/docscore/internal/report"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [url...]",
		Short: "Score documentation pages",
		Long: `Analyze fetches each URL, extracts the main content and scores it from 0 to 10
on readability, structure, completeness and style.

Several URLs are analyzed concurrently. A URL that fails is reported with its
error kind and never stops the others.

Examples:
  # Analyze one page
  docscore analyze https://docs.example.com/guide

  # Analyze every URL in a file (one per line, # starts a comment)
  docscore analyze --list urls.txt

  # Write a Markdown report without AI review
  docscore analyze --no-ai --markdown -o report.md https://docs.example.com

  # Keep per-URL JSON, extracted content and a batch summary
  docscore analyze --output-dir ./results --list urls.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	addConfigFlags(cmd)

	cmd.Flags().StringP("list", "l", "",
		"File with one URL per line")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("output-dir", "",
		"Save per-URL results, extracted content and a batch summary in this directory")
	cmd.Flags().Bool("save", false,
		"Save results like --output-dir, in the XDG data directory ("+config.XDGDataDir()+")")

	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildAnalyzeConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	analyzer, err := pipeline.NewAnalyzer(cfg, pipeline.WithAnalyzerLogger(logger))
	if err != nil {
		return err
	}
	return runAnalysis(ctx, cfg, analyzer, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// buildAnalyzeConfig adds the analyze-only flags and targets to the
// shared configuration.
func buildAnalyzeConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
		return nil, err
	}
	save, err := flags.GetBool("save")
	if err != nil {
		return nil, err
	}
	if save && cfg.OutputDir == "" {
		cfg.OutputDir = config.XDGDataDir()
	}

	cfg.Targets = append(cfg.Targets, args...)
	list, err := flags.GetString("list")
	if err != nil {
		return nil, err
	}
	if list != "" {
		urls, err := readURLList(list)
		if err != nil {
			return nil, err
		}
		cfg.Targets = append(cfg.Targets, urls...)
	}
	if len(cfg.Targets) == 0 {
		return nil, config.ErrNoTarget
	}
	return cfg, nil
}

// runAnalysis analyzes cfg.Targets and writes the report. It returns an
// error when every URL failed.
func runAnalysis(ctx context.Context, cfg *config.Config, analyzer pipeline.URLAnalyzer, stdout, stderr io.Writer, logger *slog.Logger) error {
	var store *report.FileStore
	if cfg.OutputDir != "" {
		var err error
		store, err = report.NewFileStore(cfg.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	logger.Info("starting analysis",
		"targets", len(cfg.Targets),
		"batch_size", cfg.BatchSize,
		"ai_enabled", cfg.AIEnabled(),
	)
	start := time.Now()

	var mu sync.Mutex
	bp := pipeline.NewBatchProcessor(analyzer,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)
	outcomes := make([]model.Outcome, len(cfg.Targets))
	bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(out model.Outcome, index int) {
		mu.Lock()
		defer mu.Unlock()

		outcomes[index] = out
		if len(cfg.Targets) > 1 {
			status := "done"
			if !out.OK() {
				status = "failed: " + string(out.Failure.ErrorKind)
			}
			fmt.Fprintf(stderr, "[%d/%d] %s %s\n", index+1, len(cfg.Targets), out.URL, status)
		}
		if store != nil {
			if err := store.SaveOutcome(out); err != nil {
				logger.Error("failed to save outcome", "url", out.URL, "error", err)
			}
		}
	})

	if store != nil {
		jsonPath, mdPath, err := store.SaveBatchSummary(outcomes)
		if err != nil {
			logger.Error("failed to save batch summary", "error", err)
		} else {
			logger.Info("batch summary saved", "json", jsonPath, "markdown", mdPath)
		}
	}

	if err := outputReport(cfg, stdout, outcomes); err != nil {
		return err
	}
	logger.Info("analysis complete", "elapsed", time.Since(start).Round(time.Millisecond))

	return outcomeError(outcomes)
}

// outcomeError returns an error when no URL produced a result.
func outcomeError(outcomes []model.Outcome) error {
	for _, out := range outcomes {
		if out.OK() {
			return nil
		}
	}
	if len(outcomes) == 1 {
		f := outcomes[0].Failure
		return fmt.Errorf("%s: %s: %s", f.URL, f.ErrorKind, f.Message)
	}
	return errors.New("all URLs failed")
}

// outputReport writes outcomes in the requested format. A single
// successful URL is written as a single report, anything else as a
// batch. With a report file, the human-readable report still goes to
// stdout.
func outputReport(cfg *config.Config, stdout io.Writer, outcomes []model.Outcome) error {
	var w report.Writer = newReportWriter(cfg, stdout)
	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = report.NewMultiWriter(
			newReportWriter(cfg, f),
			report.NewSimpleWriter(stdout, report.WithVerbose(cfg.Verbose)),
		)
	}

	if len(outcomes) == 1 && outcomes[0].OK() {
		_, err := w.Write(outcomes[0].Result)
		return err
	}
	if len(outcomes) == 1 {
		// The failure is returned as the command error.
		return nil
	}
	_, err := w.WriteBatch(outcomes)
	return err
}

func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
