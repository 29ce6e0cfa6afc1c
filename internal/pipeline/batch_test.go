package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/model"
)

// analyzeFunc adapts a function to URLAnalyzer.
type analyzeFunc func(ctx context.Context, url string) model.Outcome

func (f analyzeFunc) Analyze(ctx context.Context, url string) model.Outcome {
	return f(ctx, url)
}

func okOutcome(url string) model.Outcome {
	return model.Outcome{URL: url, Result: model.NewAnalysisResult(url)}
}

func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	noop := analyzeFunc(func(_ context.Context, url string) model.Outcome { return okOutcome(url) })

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(noop)

		if bp.concurrency != config.DefaultBatchSize {
			t.Errorf("expected default concurrency %d, got %d", config.DefaultBatchSize, bp.concurrency)
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(noop, WithConcurrency(3))

		if bp.concurrency != 3 {
			t.Errorf("expected concurrency 3, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(noop, WithConcurrency(0))

		if bp.concurrency != config.DefaultBatchSize {
			t.Errorf("expected concurrency %d, got %d", config.DefaultBatchSize, bp.concurrency)
		}
	})
}

func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("maintains input order", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com", "https://d.example.com"}
		delays := map[string]time.Duration{
			urls[0]: 40 * time.Millisecond,
			urls[1]: 0,
			urls[2]: 20 * time.Millisecond,
			urls[3]: 10 * time.Millisecond,
		}
		bp := NewBatchProcessor(analyzeFunc(func(_ context.Context, url string) model.Outcome {
			time.Sleep(delays[url])
			return okOutcome(url)
		}), WithConcurrency(4))

		outcomes := bp.ProcessBatch(context.Background(), urls)

		if len(outcomes) != len(urls) {
			t.Fatalf("expected %d outcomes, got %d", len(urls), len(outcomes))
		}
		for i, url := range urls {
			if outcomes[i].URL != url {
				t.Errorf("expected %q at %d, got %q", url, i, outcomes[i].URL)
			}
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int32
		bp := NewBatchProcessor(analyzeFunc(func(_ context.Context, url string) model.Outcome {
			n := current.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			current.Add(-1)
			return okOutcome(url)
		}), WithConcurrency(2))

		urls := make([]string, 8)
		for i := range urls {
			urls[i] = "https://docs.example.com/" + string(rune('a'+i))
		}
		bp.ProcessBatch(context.Background(), urls)

		if peak.Load() > 2 {
			t.Errorf("expected at most 2 concurrent analyses, got %d", peak.Load())
		}
	})

	t.Run("isolates individual failures", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"}
		bp := NewBatchProcessor(analyzeFunc(func(_ context.Context, url string) model.Outcome {
			if url == urls[1] {
				return model.Outcome{URL: url, Failure: &model.Failure{URL: url, ErrorKind: model.ErrorKindExtraction, Message: "no content"}}
			}
			return okOutcome(url)
		}))

		outcomes := bp.ProcessBatch(context.Background(), urls)

		if !outcomes[0].OK() || !outcomes[2].OK() {
			t.Errorf("expected the other URLs to succeed")
		}
		if outcomes[1].OK() || outcomes[1].Failure.ErrorKind != model.ErrorKindExtraction {
			t.Errorf("expected an extraction failure at index 1, got %+v", outcomes[1])
		}
	})

	t.Run("records cancelled urls", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		bp := NewBatchProcessor(analyzeFunc(func(_ context.Context, url string) model.Outcome {
			cancel()
			return okOutcome(url)
		}), WithConcurrency(1))

		outcomes := bp.ProcessBatch(ctx, []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"})

		if !outcomes[0].OK() {
			t.Errorf("expected the first URL to finish, got %+v", outcomes[0].Failure)
		}
		for _, out := range outcomes[1:] {
			if out.Failure == nil || out.Failure.ErrorKind != model.ErrorKindCancelled {
				t.Errorf("expected %s to be cancelled, got %+v", out.URL, out)
			}
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(analyzeFunc(func(_ context.Context, url string) model.Outcome { return okOutcome(url) }))

		if got := bp.ProcessBatch(context.Background(), nil); len(got) != 0 {
			t.Errorf("expected no outcomes, got %d", len(got))
		}
	})
}

func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	urls := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"}
	bp := NewBatchProcessor(analyzeFunc(func(_ context.Context, url string) model.Outcome { return okOutcome(url) }))

	var (
		mu   sync.Mutex
		seen = make(map[int]string)
	)
	bp.ProcessBatchWithCallback(context.Background(), urls, func(out model.Outcome, index int) {
		mu.Lock()
		defer mu.Unlock()
		seen[index] = out.URL
	})

	if len(seen) != len(urls) {
		t.Fatalf("expected %d callbacks, got %d", len(urls), len(seen))
	}
	for i, url := range urls {
		if seen[i] != url {
			t.Errorf("expected %q at %d, got %q", url, i, seen[i])
		}
	}
}
