package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/docscore/internal/model"
)

func TestFileName(t *testing.T) {
	t.Parallel()

	a := FileName("https://docs.example.com/guide", ".json")
	b := FileName("https://docs.example.com/api", ".json")

	if !strings.HasPrefix(a, "docs.example.com_") || !strings.HasSuffix(a, ".json") {
		t.Errorf("unexpected name %q", a)
	}
	if len(a) != len("docs.example.com_")+digestLength+len(".json") {
		t.Errorf("unexpected length of %q", a)
	}
	if a == b {
		t.Error("expected different pages to get different names")
	}
	if a != FileName("https://docs.example.com/guide", ".json") {
		t.Error("expected the same URL to get the same name")
	}
	if got := FileName("https://localhost:8080/x", ".md"); !strings.HasPrefix(got, "localhost_8080_") {
		t.Errorf("expected port to be sanitized, got %q", got)
	}
	if got := FileName("not a url", ".json"); !strings.HasPrefix(got, "page_") {
		t.Errorf("expected fallback host, got %q", got)
	}
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty root", func(t *testing.T) {
		t.Parallel()
		if _, err := NewFileStore(""); !errors.Is(err, ErrEmptyRoot) {
			t.Errorf("expected ErrEmptyRoot, got %v", err)
		}
	})

	t.Run("creates directories", func(t *testing.T) {
		t.Parallel()
		root := filepath.Join(t.TempDir(), "out")
		s, err := NewFileStore(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, dir := range []string{ResultsDir, ContentDir, ReportsDir} {
			if info, err := os.Stat(filepath.Join(s.Root(), dir)); err != nil || !info.IsDir() {
				t.Errorf("expected directory %s", dir)
			}
		}
	})

	t.Run("saves outcomes and summary", func(t *testing.T) {
		t.Parallel()
		s, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		outcomes := createTestOutcomes()
		outcomes[0].Document = &model.Document{URL: outcomes[0].URL, Title: "Getting Started", FullText: "Hello."}

		for _, out := range outcomes {
			if err := s.SaveOutcome(out); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		resultPath := filepath.Join(s.Root(), ResultsDir, FileName(outcomes[0].URL, ".json"))
		data, err := os.ReadFile(resultPath)
		if err != nil {
			t.Fatalf("expected result file: %v", err)
		}
		var decoded model.AnalysisResult
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.OverallScore != 6.78 {
			t.Errorf("expected overall 6.78, got %f", decoded.OverallScore)
		}
		if _, err := os.Stat(filepath.Join(s.Root(), ContentDir, FileName(outcomes[0].URL, ".json"))); err != nil {
			t.Errorf("expected document file: %v", err)
		}
		entries, err := os.ReadDir(filepath.Join(s.Root(), ResultsDir))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the successful result to be saved, got %d files", len(entries))
		}

		jsonPath, mdPath, err := s.SaveBatchSummary(outcomes)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(filepath.Base(jsonPath), "batch_summary_") {
			t.Errorf("unexpected summary path %q", jsonPath)
		}
		md, err := os.ReadFile(mdPath)
		if err != nil {
			t.Fatalf("expected markdown report: %v", err)
		}
		if !strings.Contains(string(md), "Documentation Quality Batch Report") {
			t.Error("expected batch report heading")
		}
	})
}
