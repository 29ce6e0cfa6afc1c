package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/docscore/internal/aggregate"
	"github.com/nao1215/docscore/internal/ai"
	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/extractor"
	"github.com/nao1215/docscore/internal/fetcher"
	"github.com/nao1215/docscore/internal/model"
	"github.com/nao1215/docscore/internal/scoring"
)

// Analyzer analyzes documentation pages. It holds the components shared
// by every URL and builds a fresh pipeline per URL.
type Analyzer struct {
	fetcher      PageFetcher
	extractor    DocumentExtractor
	analyzers    []scoring.Analyzer
	supplementer ai.Supplementer
	aggregator   *aggregate.Aggregator
	fetchTimeout time.Duration
	logger       *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithFetcher replaces the page fetcher.
func WithFetcher(f PageFetcher) AnalyzerOption {
	return func(a *Analyzer) {
		a.fetcher = f
	}
}

// WithExtractor replaces the document extractor.
func WithExtractor(e DocumentExtractor) AnalyzerOption {
	return func(a *Analyzer) {
		a.extractor = e
	}
}

// WithSupplementer replaces the AI supplement client.
func WithSupplementer(s ai.Supplementer) AnalyzerOption {
	return func(a *Analyzer) {
		a.supplementer = s
	}
}

// WithAnalyzerLogger sets the logger used by the analyzer and its
// components.
func WithAnalyzerLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates an Analyzer from cfg. It returns a
// *config.ConfigError when cfg is invalid, before any URL is fetched.
func NewAnalyzer(cfg *config.Config, opts ...AnalyzerOption) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{fetchTimeout: cfg.FetchTimeout}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	agg, err := aggregate.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	a.aggregator = agg
	a.analyzers = scoring.Analyzers(scoring.SettingsFromConfig(cfg))

	if a.fetcher == nil {
		a.fetcher = fetcher.NewFromConfig(cfg, fetcher.WithLogger(a.logger))
	}
	if a.extractor == nil {
		a.extractor = extractor.New(
			extractor.WithMinWords(cfg.MinExtractWords),
			extractor.WithLogger(a.logger),
		)
	}
	if a.supplementer == nil {
		sup, err := ai.New(cfg, ai.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.supplementer = sup
	}
	return a, nil
}

// NewPipeline returns a pipeline running fetch, extract, score and
// aggregate with the analyzer's components.
func (a *Analyzer) NewPipeline() *Pipeline {
	p := New(WithLogger(a.logger))
	p.AddSteps(
		NewFetchStep(a.fetcher, a.fetchTimeout),
		NewExtractStep(a.extractor),
		NewScoreStep(a.analyzers, a.supplementer, a.logger),
		NewAggregateStep(a.aggregator),
	)
	return p
}

// AnalyzeURL analyzes a single page. Errors are *StepError values
// wrapping the component error; use Classify to obtain a failure record.
func (a *Analyzer) AnalyzeURL(ctx context.Context, url string) (*model.AnalysisResult, error) {
	state, err := a.run(ctx, url)
	if err != nil {
		return nil, err
	}
	return state.Result, nil
}

// Analyze analyzes a single page and returns its outcome.
func (a *Analyzer) Analyze(ctx context.Context, url string) model.Outcome {
	state, err := a.run(ctx, url)
	out := model.Outcome{URL: url, Document: state.Document}
	if err != nil {
		out.Failure = Classify(url, err)
		return out
	}
	out.Result = state.Result
	return out
}

func (a *Analyzer) run(ctx context.Context, url string) (*State, error) {
	state := NewState(url)
	start := time.Now()
	if err := a.NewPipeline().Execute(ctx, state); err != nil {
		return state, err
	}
	a.logger.Info("analysis completed",
		"url", url,
		"overall_score", state.Result.OverallScore,
		"elapsed", time.Since(start),
	)
	return state, nil
}
