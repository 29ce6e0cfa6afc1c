package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/docscore/internal/model"
)

// createTestResult creates a result with sample data for testing.
func createTestResult() *model.AnalysisResult {
	res := model.NewAnalysisResult("https://docs.example.com/guide")
	res.AnalyzedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	res.Document = model.DocumentInfo{Title: "Getting Started", WordCount: 420, HeadingCount: 4}
	res.Set(model.CriterionResult{
		Criterion:   model.CriterionReadability,
		Score:       8.5,
		Breakdown:   map[string]float64{"flesch_reading_ease": 65.2},
		Suggestions: []string{},
	})
	res.Set(model.CriterionResult{
		Criterion:   model.CriterionStructure,
		Score:       5.2,
		Breakdown:   map[string]float64{"has_gaps": 1},
		Suggestions: []string{"Fix 1 heading hierarchy gap(s).", "Consider adding a summary or next steps section."},
	})
	res.Set(model.CriterionResult{
		Criterion:   model.CriterionCompleteness,
		Score:       7,
		Breakdown:   map[string]float64{"has_steps": 1},
		Suggestions: []string{"Include links to related documentation and resources."},
	})
	res.Set(model.CriterionResult{
		Criterion:   model.CriterionStyle,
		Score:       6.4,
		Breakdown:   map[string]float64{"passive_voice_ratio": 0.3, "ai_severity": 2},
		Suggestions: []string{"Reduce passive voice (30% of sentences). Use active voice for clearer instructions."},
		AIFindings:  &model.AIFindings{Severity: model.SeverityMedium, Notes: []string{"Tone shifts between sections."}},
	})
	res.OverallScore = 6.78
	res.Summary = model.Summary{
		Strengths:            []string{"Readability (8.5/10)"},
		Weaknesses:           []string{"Structure (5.2/10)"},
		PriorityImprovements: []string{"Fix 1 heading hierarchy gap(s)."},
		Recommendation:       "Good documentation with room for improvement.",
		Tier:                 1,
		TierCount:            4,
	}
	res.Structure.Summary = "Structure scored 5.2/10. Documentation needs significant work."
	return res
}

func createTestOutcomes() []model.Outcome {
	res := createTestResult()
	return []model.Outcome{
		{URL: res.URL, Result: res},
		{URL: "https://docs.example.com/missing", Failure: &model.Failure{
			URL:        "https://docs.example.com/missing",
			ErrorKind:  model.ErrorKindNetwork,
			Stage:      "fetch",
			Message:    "HTTP 404",
			StatusCode: 404,
		}},
	}
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header scores and summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"DOCUMENTATION QUALITY REPORT",
			"https://docs.example.com/guide",
			"Getting Started",
			"Overall Score:  6.78/10",
			"Structure",
			"* Fix 1 heading hierarchy gap(s).",
			"Recommendation: Good documentation with room for improvement.",
			"AI Review:      included",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
		if strings.Contains(output, "passive_voice_ratio") {
			t.Error("expected breakdown to be hidden without verbose")
		}
	})

	t.Run("verbose shows breakdown and reviewer notes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "passive_voice_ratio: 0.3") {
			t.Error("expected breakdown in verbose output")
		}
		if !strings.Contains(output, "reviewer (medium): Tone shifts between sections.") {
			t.Error("expected reviewer note in verbose output")
		}
	})

	t.Run("batch lists failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteBatch(createTestOutcomes()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "BATCH SUMMARY") {
			t.Error("expected batch summary")
		}
		if !strings.Contains(output, "[FAILED] https://docs.example.com/missing") {
			t.Error("expected failed URL")
		}
		if !strings.Contains(output, "NetworkError at fetch: HTTP 404") {
			t.Error("expected failure details")
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("uses model field names", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		for _, key := range []string{"url", "overall_score", "readability", "structure", "completeness", "style", "summary"} {
			if _, ok := decoded[key]; !ok {
				t.Errorf("expected key %q", key)
			}
		}
		style := decoded["style"].(map[string]any)
		if _, ok := style["ai_findings"]; !ok {
			t.Error("expected ai_findings on the style result")
		}
		readability := decoded["readability"].(map[string]any)
		if _, ok := readability["ai_findings"]; ok {
			t.Error("expected ai_findings to be omitted without findings")
		}
	})

	t.Run("batch is a flat array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).WriteBatch(createTestOutcomes()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(decoded))
		}
		if decoded[0]["overall_score"] != 6.78 {
			t.Errorf("expected the result first, got %v", decoded[0])
		}
		if decoded[1]["error_kind"] != "NetworkError" {
			t.Errorf("expected NetworkError, got %v", decoded[1]["error_kind"])
		}
		if decoded[1]["status_code"] != float64(404) {
			t.Errorf("expected status 404, got %v", decoded[1]["status_code"])
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})

	t.Run("empty batch is an empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteBatch(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "[]" {
			t.Errorf("expected [], got %q", got)
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and suggestions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Documentation Quality Report",
			"Fix 1 heading hierarchy gap(s).",
			"**Structure suggestions**",
			"Reviewer notes (medium severity)",
			"**Strengths**",
			"**Criterion summaries**",
			"Structure scored 5.2/10.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
		if !strings.Contains(strings.ToLower(output), "top suggestion") {
			t.Error("expected the scores table")
		}
	})

	t.Run("picks the alert from the recommendation tier", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			tier, count int
			want        string
		}{
			{tier: 0, count: 4, want: "[!TIP]"},
			{tier: 1, count: 4, want: "[!NOTE]"},
			{tier: 2, count: 4, want: "[!WARNING]"},
			{tier: 3, count: 4, want: "[!CAUTION]"},
			{tier: 1, count: 2, want: "[!CAUTION]"},
		}
		for _, tt := range tests {
			res := createTestResult()
			res.Summary.Tier, res.Summary.TierCount = tt.tier, tt.count

			var buf bytes.Buffer
			if _, err := NewMarkdownWriter(&buf).Write(res); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("tier %d of %d: expected %s alert", tt.tier, tt.count, tt.want)
			}
		}
	})

	t.Run("batch includes pie chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteBatch(createTestOutcomes()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "```mermaid") {
			t.Error("expected a mermaid block")
		}
		if !strings.Contains(output, "Outcome Distribution") {
			t.Error("expected pie chart title")
		}
		if !strings.Contains(output, "NetworkError at fetch") {
			t.Error("expected failure row")
		}
	})
}

// failingWriter fails every write.
type failingWriter struct{}

func (failingWriter) Write(*model.AnalysisResult) (int, error) { return 0, errors.New("write failed") }
func (failingWriter) WriteBatch([]model.Outcome) (int, error) { return 0, errors.New("write failed") }

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		mw := NewMultiWriter(NewJSONWriter(&a), NewSimpleWriter(&b))
		n, err := mw.Write(createTestResult())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != a.Len()+b.Len() {
			t.Errorf("expected %d bytes, got %d", a.Len()+b.Len(), n)
		}
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := NewMultiWriter(failingWriter{}, NewJSONWriter(&buf))
		if _, err := mw.WriteBatch(createTestOutcomes()); err == nil {
			t.Error("expected error")
		}
		if buf.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}

func TestNewBatchSummary(t *testing.T) {
	t.Parallel()

	s := NewBatchSummary(createTestOutcomes())

	if s.Total != 2 || s.Succeeded != 1 || s.Failed != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.AverageScore != 6.78 {
		t.Errorf("expected average 6.78, got %f", s.AverageScore)
	}
	if s.FailureCounts()[model.ErrorKindNetwork] != 1 {
		t.Errorf("expected one network failure, got %v", s.FailureCounts())
	}
	if s.Entries[0].Title != "Getting Started" {
		t.Errorf("expected title in entry, got %q", s.Entries[0].Title)
	}
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is too long", 10, "this is..."},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d): expected %q, got %q", tt.in, tt.max, tt.want, got)
		}
	}
}
