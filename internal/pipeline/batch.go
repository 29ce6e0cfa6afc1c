package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/model"
	"golang.org/x/sync/errgroup"
)

// URLAnalyzer analyzes one URL and reports the outcome. *Analyzer
// implements it.
type URLAnalyzer interface {
	Analyze(ctx context.Context, url string) model.Outcome
}

// BatchProcessor analyzes many URLs concurrently.
// It uses errgroup to bound the number of URLs in flight. A failing URL
// is recorded in its outcome and never cancels the others.
type BatchProcessor struct {
	analyzer    URLAnalyzer
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of URLs analyzed at once.
// Non-positive values keep the default of config.DefaultBatchSize.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(analyzer URLAnalyzer, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		analyzer:    analyzer,
		concurrency: config.DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch analyzes urls and returns one outcome per URL in input
// order. URLs not started before ctx is cancelled are recorded with
// error kind Cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) []model.Outcome {
	outcomes := make([]model.Outcome, len(urls))
	bp.run(ctx, urls, func(out model.Outcome, index int) {
		// Each goroutine writes only its own index.
		outcomes[index] = out
	})
	return outcomes
}

// ProcessBatchWithCallback analyzes urls and calls callback as each
// outcome completes. The callback runs on the goroutine that finished the
// URL, so it must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(ctx context.Context, urls []string, callback func(out model.Outcome, index int)) {
	bp.run(ctx, urls, callback)
}

func (bp *BatchProcessor) run(ctx context.Context, urls []string, callback func(model.Outcome, int)) {
	bp.logger.Info("starting batch processing",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	// A plain group rather than WithContext: one failure must not cancel
	// the rest.
	var g errgroup.Group
	g.SetLimit(bp.concurrency)

	for i, url := range urls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				callback(cancelled(url, err), i)
				return nil
			}

			urlCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			bp.logger.Debug("analyzing url",
				"url", url,
				"index", i+1,
				"total", len(urls),
			)
			out := bp.analyzer.Analyze(urlCtx, url)
			if out.Failure != nil {
				bp.logger.Warn("analysis failed",
					"url", url,
					"error_kind", string(out.Failure.ErrorKind),
					"stage", out.Failure.Stage,
					"error", out.Failure.Message,
				)
			}
			callback(out, i)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // goroutines never return errors

	bp.logger.Info("batch processing complete",
		"total_urls", len(urls),
		"elapsed", time.Since(start),
	)
}

func cancelled(url string, err error) model.Outcome {
	return model.Outcome{
		URL: url,
		Failure: &model.Failure{
			URL:       url,
			ErrorKind: model.ErrorKindCancelled,
			Message:   err.Error(),
		},
	}
}
