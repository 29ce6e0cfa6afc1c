package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/docscore/internal/aggregate"
	"github.com/nao1215/docscore/internal/ai"
	"github.com/nao1215/docscore/internal/model"
	"github.com/nao1215/docscore/internal/scoring"
	"golang.org/x/sync/errgroup"
)

// Step names, also used as failure stages.
const (
	StepFetch     = "fetch"
	StepExtract   = "extract"
	StepScore     = "score"
	StepAggregate = "aggregate"
)

// PageFetcher downloads a page body.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DocumentExtractor builds a document from a page body.
type DocumentExtractor interface {
	Extract(rawHTML []byte, pageURL string) (*model.Document, error)
}

// FetchStep downloads the page.
type FetchStep struct {
	fetcher PageFetcher
	timeout time.Duration
}

// NewFetchStep creates a FetchStep. timeout bounds the fetch including
// every retry; zero means no additional bound.
func NewFetchStep(f PageFetcher, timeout time.Duration) *FetchStep {
	return &FetchStep{fetcher: f, timeout: timeout}
}

// Name returns StepFetch.
func (s *FetchStep) Name() string {
	return StepFetch
}

// Do fetches state.URL into state.HTML.
func (s *FetchStep) Do(ctx context.Context, state *State) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	body, err := s.fetcher.Fetch(ctx, state.URL)
	if err != nil {
		return err
	}
	state.HTML = body
	return nil
}

// ExtractStep builds the document from the fetched page.
type ExtractStep struct {
	extractor DocumentExtractor
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(e DocumentExtractor) *ExtractStep {
	return &ExtractStep{extractor: e}
}

// Name returns StepExtract.
func (s *ExtractStep) Name() string {
	return StepExtract
}

// Do extracts state.HTML into state.Document.
func (s *ExtractStep) Do(_ context.Context, state *State) error {
	if state.HTML == nil {
		return ErrMissingInput
	}
	doc, err := s.extractor.Extract(state.HTML, state.URL)
	if err != nil {
		return err
	}
	state.Document = doc
	return nil
}

// ScoreStep runs the analyzers concurrently on the document.
type ScoreStep struct {
	analyzers    []scoring.Analyzer
	supplementer ai.Supplementer
	logger       *slog.Logger
}

// NewScoreStep creates a ScoreStep. sup may be nil to score without AI
// supplements.
func NewScoreStep(analyzers []scoring.Analyzer, sup ai.Supplementer, logger *slog.Logger) *ScoreStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreStep{analyzers: analyzers, supplementer: sup, logger: logger}
}

// Name returns StepScore.
func (s *ScoreStep) Name() string {
	return StepScore
}

// Do scores state.Document on every criterion. The document is read-only
// while the analyzers run; each writes only its own slot of the results.
func (s *ScoreStep) Do(ctx context.Context, state *State) error {
	if state.Document == nil {
		return ErrMissingInput
	}

	results := make([]model.CriterionResult, len(s.analyzers))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range s.analyzers {
		g.Go(func() error {
			start := time.Now()
			results[i] = a.Analyze(gctx, state.Document, s.supplementer)
			s.logger.Debug("criterion scored",
				"url", state.URL,
				"criterion", a.Criterion().String(),
				"score", results[i].Score,
				"elapsed", time.Since(start),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// Analyzers degrade to deterministic scores on cancellation, so a
	// cancelled URL is reported rather than returned half scored.
	if err := ctx.Err(); err != nil {
		return err
	}

	state.Results = results
	return nil
}

// AggregateStep combines the criterion results into the final analysis.
type AggregateStep struct {
	aggregator *aggregate.Aggregator
	now        func() time.Time
}

// NewAggregateStep creates an AggregateStep.
func NewAggregateStep(a *aggregate.Aggregator) *AggregateStep {
	return &AggregateStep{aggregator: a, now: time.Now}
}

// Name returns StepAggregate.
func (s *AggregateStep) Name() string {
	return StepAggregate
}

// Do fills state.Result.
func (s *AggregateStep) Do(_ context.Context, state *State) error {
	if state.Document == nil || state.Results == nil {
		return ErrMissingInput
	}

	result := model.NewAnalysisResult(state.URL)
	result.AnalyzedAt = s.now().UTC()
	result.Document = state.Document.Info()
	for _, r := range state.Results {
		result.Set(r)
	}
	s.aggregator.Apply(result)

	state.Result = result
	return nil
}
