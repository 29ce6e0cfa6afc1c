package extractor

import (
	"errors"
	"log/slog"

	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/model"
)

// Extractor runs a strategy chain over a page.
// An Extractor is safe for concurrent use.
type Extractor struct {
	strategies []Strategy

	// minWords is the word count a Document needs to be accepted.
	minWords int

	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStrategies replaces the default strategy chain.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) {
		if len(strategies) > 0 {
			e.strategies = strategies
		}
	}
}

// WithMinWords sets the minimum word count of an accepted Document.
func WithMinWords(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.minWords = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an Extractor with DefaultStrategies.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		strategies: DefaultStrategies(),
		minWords:   config.DefaultMinExtractWords,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Strategies returns the names of the strategies in order.
func (e *Extractor) Strategies() []string {
	names := make([]string, len(e.strategies))
	for i, s := range e.strategies {
		names[i] = s.Name()
	}
	return names
}

// Extract returns the Document of the first strategy that yields at
// least the minimum number of words.
func (e *Extractor) Extract(rawHTML []byte, pageURL string) (*model.Document, error) {
	page, err := NewPage(rawHTML, pageURL)
	if err != nil {
		return nil, &ExtractionError{URL: pageURL, MinWords: e.minWords, Err: err}
	}

	tried := make([]string, 0, len(e.strategies))
	best := 0

	for _, s := range e.strategies {
		tried = append(tried, s.Name())

		doc, err := s.Extract(page)
		if err != nil {
			if !errors.Is(err, ErrNoMatch) {
				e.logger.Debug("extraction strategy failed",
					"url", pageURL,
					"strategy", s.Name(),
					"error", err,
				)
			}
			continue
		}

		if doc.WordCount >= e.minWords {
			e.logger.Debug("content extracted",
				"url", pageURL,
				"strategy", s.Name(),
				"words", doc.WordCount,
			)
			return doc, nil
		}
		best = max(best, doc.WordCount)
	}

	return nil, &ExtractionError{URL: pageURL, Tried: tried, BestWords: best, MinWords: e.minWords}
}
