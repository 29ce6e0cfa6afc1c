package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/docscore/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAnalyzer fails every URL containing "fail" with a network error.
type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(_ context.Context, url string) model.Outcome {
	if strings.Contains(url, "fail") {
		return model.Outcome{URL: url, Failure: &model.Failure{
			URL:        url,
			ErrorKind:  model.ErrorKindNetwork,
			Stage:      "fetch",
			Message:    "unexpected HTTP status",
			StatusCode: 503,
		}}
	}
	res := model.NewAnalysisResult(url)
	res.OverallScore = 7.5
	return model.Outcome{URL: url, Result: res}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := do(t, New(stubAnalyzer{}).Handler(), http.MethodGet, "/api/health", "")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	h := New(stubAnalyzer{}).Handler()

	t.Run("returns the result", func(t *testing.T) {
		t.Parallel()
		rec := do(t, h, http.MethodPost, "/api/analyze", `{"url": "https://docs.example.com"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var res model.AnalysisResult
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if res.URL != "https://docs.example.com" || res.OverallScore != 7.5 {
			t.Errorf("unexpected result %+v", res)
		}
	})

	t.Run("maps failures to status codes", func(t *testing.T) {
		t.Parallel()
		rec := do(t, h, http.MethodPost, "/api/analyze", `{"url": "https://fail.example.com"}`)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		var f model.Failure
		if err := json.Unmarshal(rec.Body.Bytes(), &f); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if f.ErrorKind != model.ErrorKindNetwork || f.StatusCode != 503 || f.Stage != "fetch" {
			t.Errorf("unexpected failure %+v", f)
		}
	})

	t.Run("rejects missing url", func(t *testing.T) {
		t.Parallel()
		rec := do(t, h, http.MethodPost, "/api/analyze", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAnalyzeBatch(t *testing.T) {
	t.Parallel()

	h := New(stubAnalyzer{}, WithMaxBatchURLs(3)).Handler()

	t.Run("keeps order and isolates failures", func(t *testing.T) {
		t.Parallel()
		body := `{"urls": ["https://a.example.com", "https://fail.example.com", "https://c.example.com"]}`
		rec := do(t, h, http.MethodPost, "/api/analyze/batch", body)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var entries []map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[0]["url"] != "https://a.example.com" || entries[2]["url"] != "https://c.example.com" {
			t.Errorf("unexpected order: %v", entries)
		}
		if entries[1]["error_kind"] != "NetworkError" {
			t.Errorf("expected NetworkError at index 1, got %v", entries[1])
		}
	})

	t.Run("rejects empty and oversized batches", func(t *testing.T) {
		t.Parallel()
		if rec := do(t, h, http.MethodPost, "/api/analyze/batch", `{"urls": []}`); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for empty batch, got %d", rec.Code)
		}
		body := `{"urls": ["https://a.example.com", "https://b.example.com", "https://c.example.com", "https://d.example.com"]}`
		if rec := do(t, h, http.MethodPost, "/api/analyze/batch", body); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for oversized batch, got %d", rec.Code)
		}
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	h := New(stubAnalyzer{}, WithRateLimit(0.001, 2)).Handler()

	for i := range 2 {
		if rec := do(t, h, http.MethodGet, "/api/health", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	if rec := do(t, h, http.MethodGet, "/api/health", ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
}

func TestRateLimiterSweep(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(1, 1)
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	rl.limiter("10.0.0.1")
	rl.limiter("10.0.0.2")

	now = now.Add(limiterIdleTimeout / 2)
	rl.limiter("10.0.0.2")

	now = now.Add(limiterIdleTimeout / 2)
	rl.limiter("10.0.0.3")

	if _, ok := rl.clients["10.0.0.1"]; ok {
		t.Error("expected the idle client to be evicted")
	}
	for _, ip := range []string{"10.0.0.2", "10.0.0.3"} {
		if _, ok := rl.clients[ip]; !ok {
			t.Errorf("expected %s to be kept", ip)
		}
	}
	if len(rl.clients) != 2 {
		t.Errorf("expected 2 clients, got %d", len(rl.clients))
	}
}

func TestFailureStatus(t *testing.T) {
	t.Parallel()

	tests := map[model.ErrorKind]int{
		model.ErrorKindNetwork:             http.StatusBadGateway,
		model.ErrorKindInsufficientContent: http.StatusUnprocessableEntity,
		model.ErrorKindExtraction:          http.StatusUnprocessableEntity,
		model.ErrorKindCancelled:           http.StatusServiceUnavailable,
		model.ErrorKindInternal:            http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := failureStatus(kind); got != want {
			t.Errorf("%s: expected %d, got %d", kind, want, got)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	rec := do(t, New(stubAnalyzer{}).Handler(), http.MethodOptions, "/api/analyze", "")

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected allow-origin *, got %q", got)
	}
}
