package scoring

import (
	"context"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/nao1215/docscore/internal/ai"
	"github.com/nao1215/docscore/internal/model"
)

const tenWords = "Install the tool and run it from your project directory."

// paragraph returns a paragraph of n words, n being a multiple of ten.
func paragraph(n int) string {
	return strings.TrimSpace(strings.Repeat(tenWords+" ", n/10))
}

func newDocument(headings []model.Heading, paragraphs []string, lists []model.List, code []model.CodeBlock) *model.Document {
	parts := make([]string, 0, len(headings)+len(paragraphs)+len(lists))
	for _, h := range headings {
		parts = append(parts, h.Text)
	}
	parts = append(parts, paragraphs...)
	for _, l := range lists {
		parts = append(parts, l.Items...)
	}
	for _, c := range code {
		parts = append(parts, c.Content)
	}
	text := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	return &model.Document{
		URL:            "https://docs.example.com/guide",
		Headings:       headings,
		Paragraphs:     paragraphs,
		Lists:          lists,
		CodeBlocks:     code,
		FullText:       text,
		WordCount:      len(strings.Fields(text)),
		CharacterCount: len([]rune(text)),
	}
}

// guideDocument has an H1 and an H2, paragraphs of 10, 50 and 150 words,
// an ordered list of three items and a Go code block.
func guideDocument() *model.Document {
	lang := "go"
	return newDocument(
		[]model.Heading{{Level: 1, Text: "Getting Started"}, {Level: 2, Text: "Install"}},
		[]string{paragraph(10), paragraph(50), paragraph(150)},
		[]model.List{{Ordered: true, Items: []string{"Download the archive.", "Extract it.", "Run the installer."}}},
		[]model.CodeBlock{{Language: &lang, Content: "fmt.Println(\"hello\")\n"}},
	)
}

func analyzeAll(t *testing.T, doc *model.Document, sup ai.Supplementer) map[model.Criterion]model.CriterionResult {
	t.Helper()
	results := make(map[model.Criterion]model.CriterionResult)
	for _, a := range Analyzers(DefaultSettings()) {
		r := a.Analyze(context.Background(), doc, sup)
		if r.Criterion != a.Criterion() {
			t.Errorf("expected criterion %s, got %s", a.Criterion(), r.Criterion)
		}
		results[a.Criterion()] = r
	}
	return results
}

func hasSuggestion(r model.CriterionResult, substr string) bool {
	for _, s := range r.Suggestions {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func TestAnalyzers(t *testing.T) {
	t.Parallel()

	analyzers := Analyzers(DefaultSettings())
	if len(analyzers) != len(model.Criteria) {
		t.Fatalf("expected %d analyzers, got %d", len(model.Criteria), len(analyzers))
	}
	for i, c := range model.Criteria {
		if analyzers[i].Criterion() != c {
			t.Errorf("expected analyzer %d to score %s, got %s", i, c, analyzers[i].Criterion())
		}
	}
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	t.Parallel()

	results := analyzeAll(t, &model.Document{}, nil)

	for c, r := range results {
		if r.Score < 0 || r.Score > 10 {
			t.Errorf("%s: expected score within [0, 10], got %f", c, r.Score)
		}
		if r.Breakdown == nil {
			t.Errorf("%s: expected a breakdown", c)
		}
	}

	rd := results[model.CriterionReadability]
	if rd.Score != 0 {
		t.Errorf("expected readability 0 without sentences, got %f", rd.Score)
	}
	if !strings.HasPrefix(rd.TopSuggestion(), "No readable sentences") {
		t.Errorf("expected the missing prose suggestion first, got %q", rd.TopSuggestion())
	}

	st := results[model.CriterionStyle]
	if st.Breakdown["passive_voice_ratio"] != 0 || st.Breakdown["action_ratio"] != 0 {
		t.Errorf("expected zero ratios, got passive %f action %f",
			st.Breakdown["passive_voice_ratio"], st.Breakdown["action_ratio"])
	}
}

func TestAnalyzeGuideDocument(t *testing.T) {
	t.Parallel()

	results := analyzeAll(t, guideDocument(), nil)

	t.Run("structure has no gaps and flags the long paragraph", func(t *testing.T) {
		t.Parallel()
		r := results[model.CriterionStructure]
		if r.Breakdown["has_gaps"] != 0 {
			t.Errorf("expected has_gaps 0, got %f", r.Breakdown["has_gaps"])
		}
		if r.Breakdown["long_paragraph_count"] != 1 {
			t.Errorf("expected 1 long paragraph, got %f", r.Breakdown["long_paragraph_count"])
		}
		if r.Breakdown["max_paragraph_words"] != 150 {
			t.Errorf("expected longest paragraph of 150 words, got %f", r.Breakdown["max_paragraph_words"])
		}
		if !hasSuggestion(r, "longer than 100 words") {
			t.Errorf("expected a long paragraph suggestion, got %v", r.Suggestions)
		}
		if r.Breakdown["has_introduction"] != 1 {
			t.Errorf("expected getting started to count as an introduction")
		}
	})

	t.Run("completeness detects steps and code", func(t *testing.T) {
		t.Parallel()
		r := results[model.CriterionCompleteness]
		if r.Breakdown["has_steps"] != 1 {
			t.Errorf("expected has_steps 1, got %f", r.Breakdown["has_steps"])
		}
		if r.Breakdown["has_code_blocks"] != 1 {
			t.Errorf("expected has_code_blocks 1, got %f", r.Breakdown["has_code_blocks"])
		}
		if hasSuggestion(r, "step-by-step") {
			t.Errorf("expected no step suggestion, got %v", r.Suggestions)
		}
		if r.Breakdown["code_has_comments"] != 0 {
			t.Errorf("expected code_has_comments 0, got %f", r.Breakdown["code_has_comments"])
		}
		if !hasSuggestion(r, "Comment the code examples") {
			t.Errorf("expected a code comment suggestion, got %v", r.Suggestions)
		}
	})

	t.Run("structure counts transition words", func(t *testing.T) {
		t.Parallel()
		r := results[model.CriterionStructure]
		if _, ok := r.Breakdown["transition_word_count"]; !ok {
			t.Errorf("expected transition_word_count in %v", r.Breakdown)
		}
	})

	t.Run("no ai keys without a supplement", func(t *testing.T) {
		t.Parallel()
		for c, r := range results {
			for key := range r.Breakdown {
				if strings.HasPrefix(key, "ai_") {
					t.Errorf("%s: unexpected key %s", c, key)
				}
			}
			if r.AIFindings != nil {
				t.Errorf("%s: expected no findings", c)
			}
		}
	})
}

func TestStyleAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("passive voice ratio and suggestion", func(t *testing.T) {
		t.Parallel()
		doc := newDocument(nil, []string{"The button was clicked by the user. Click the button."}, nil, nil)

		r := NewStyleAnalyzer(DefaultSettings()).Analyze(context.Background(), doc, nil)

		if r.Breakdown["passive_voice_ratio"] != 0.5 {
			t.Errorf("expected passive ratio 0.5, got %f", r.Breakdown["passive_voice_ratio"])
		}
		if !hasSuggestion(r, "50%") {
			t.Errorf("expected a passive voice suggestion with 50%%, got %v", r.Suggestions)
		}
		if !strings.HasPrefix(r.TopSuggestion(), "Reduce passive voice") {
			t.Errorf("expected the passive suggestion first, got %q", r.TopSuggestion())
		}
		// passive 5, action capped at 10, weights renormalized without AI.
		if math.Abs(r.Score-7.19) > 0.01 {
			t.Errorf("expected score 7.19, got %f", r.Score)
		}
	})

	t.Run("active text has no passive suggestion", func(t *testing.T) {
		t.Parallel()
		doc := newDocument(nil, []string{"Open the settings page. Enter your API key. Save your changes."}, nil, nil)

		r := NewStyleAnalyzer(DefaultSettings()).Analyze(context.Background(), doc, nil)

		if hasSuggestion(r, "passive") {
			t.Errorf("expected no passive suggestion, got %v", r.Suggestions)
		}
		if r.Score != 10 {
			t.Errorf("expected score 10, got %f", r.Score)
		}
	})

	t.Run("threshold comes from settings", func(t *testing.T) {
		t.Parallel()
		s := DefaultSettings()
		s.PassiveThreshold = 0.6
		doc := newDocument(nil, []string{"The button was clicked by the user. Click the button."}, nil, nil)

		r := NewStyleAnalyzer(s).Analyze(context.Background(), doc, nil)

		if hasSuggestion(r, "passive") {
			t.Errorf("expected no passive suggestion below the threshold, got %v", r.Suggestions)
		}
	})
}

func TestStructureAnalyzerGaps(t *testing.T) {
	t.Parallel()

	doc := newDocument(
		[]model.Heading{{Level: 1, Text: "Overview"}, {Level: 3, Text: "Details"}},
		[]string{paragraph(20)},
		nil, nil,
	)

	r := NewStructureAnalyzer(DefaultSettings()).Analyze(context.Background(), doc, nil)

	if r.Breakdown["has_gaps"] != 1 {
		t.Errorf("expected has_gaps 1, got %f", r.Breakdown["has_gaps"])
	}
	if r.Breakdown["gap_count"] != 1 {
		t.Errorf("expected gap_count 1, got %f", r.Breakdown["gap_count"])
	}
	if !strings.HasPrefix(r.TopSuggestion(), "Fix 1 heading hierarchy gap") {
		t.Errorf("expected the gap suggestion first, got %q", r.TopSuggestion())
	}
}

func TestStructureAnalyzerTransitions(t *testing.T) {
	t.Parallel()

	headings := []model.Heading{{Level: 1, Text: "Overview"}, {Level: 2, Text: "Summary"}}

	t.Run("long page without transitions", func(t *testing.T) {
		t.Parallel()
		doc := newDocument(headings, []string{paragraph(80), paragraph(80), paragraph(80), paragraph(80)}, nil, nil)
		r := NewStructureAnalyzer(DefaultSettings()).Analyze(context.Background(), doc, nil)
		if r.Breakdown["transition_word_count"] != 0 {
			t.Errorf("expected 0 transitions, got %f", r.Breakdown["transition_word_count"])
		}
		if !hasSuggestion(r, "transition words") {
			t.Errorf("expected a transition suggestion, got %v", r.Suggestions)
		}
	})

	t.Run("transitions connect the sections", func(t *testing.T) {
		t.Parallel()
		doc := newDocument(headings, []string{
			"First, " + paragraph(80), "Next, " + paragraph(80),
			"Then " + paragraph(80), "As a result, " + paragraph(80),
		}, nil, nil)
		r := NewStructureAnalyzer(DefaultSettings()).Analyze(context.Background(), doc, nil)
		if r.Breakdown["transition_word_count"] != 4 {
			t.Errorf("expected 4 transitions, got %f", r.Breakdown["transition_word_count"])
		}
		if hasSuggestion(r, "transition words") {
			t.Errorf("expected no transition suggestion, got %v", r.Suggestions)
		}
	})
}

func TestCompletenessAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("plain prose asks for examples and steps", func(t *testing.T) {
		t.Parallel()
		doc := newDocument(nil, []string{paragraph(60)}, nil, nil)

		r := NewCompletenessAnalyzer(DefaultSettings()).Analyze(context.Background(), doc, nil)

		if !strings.HasPrefix(r.TopSuggestion(), "Add practical examples") {
			t.Errorf("expected the examples suggestion first, got %q", r.TopSuggestion())
		}
		if !hasSuggestion(r, "step-by-step") {
			t.Errorf("expected a steps suggestion, got %v", r.Suggestions)
		}
		if !hasSuggestion(r, "links") {
			t.Errorf("expected a links suggestion, got %v", r.Suggestions)
		}
	})

	t.Run("images without alt text", func(t *testing.T) {
		t.Parallel()
		doc := newDocument(nil, []string{paragraph(60)}, nil, nil)
		doc.Images = []model.Image{{Src: "https://docs.example.com/a.png"}, {Src: "https://docs.example.com/b.png", Alt: "Diagram"}}

		r := NewCompletenessAnalyzer(DefaultSettings()).Analyze(context.Background(), doc, nil)

		if r.Breakdown["images_missing_alt"] != 1 {
			t.Errorf("expected 1 image missing alt, got %f", r.Breakdown["images_missing_alt"])
		}
		if !hasSuggestion(r, "Add alt text to 1 image(s).") {
			t.Errorf("expected an alt text suggestion, got %v", r.Suggestions)
		}
	})
}

func TestSupplementMerge(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		criteria []model.Criterion
	)
	sup := ai.SupplementFunc(func(_ context.Context, c model.Criterion, excerpt string) *model.AIFindings {
		mu.Lock()
		criteria = append(criteria, c)
		mu.Unlock()
		if excerpt == "" {
			t.Errorf("expected a non-empty excerpt for %s", c)
		}
		return &model.AIFindings{
			Notes:        []string{"The install section skips configuration."},
			FlaggedTerms: []string{"idempotent"},
			Severity:     model.SeverityHigh,
		}
	})

	results := analyzeAll(t, guideDocument(), sup)

	mu.Lock()
	if len(criteria) != len(model.Criteria) {
		t.Errorf("expected %d supplement requests, got %d", len(model.Criteria), len(criteria))
	}
	mu.Unlock()

	for c, r := range results {
		if r.Breakdown["ai_severity"] != 3 {
			t.Errorf("%s: expected ai_severity 3, got %f", c, r.Breakdown["ai_severity"])
		}
		if r.Breakdown["ai_flagged_term_count"] != 1 {
			t.Errorf("%s: expected 1 flagged term, got %f", c, r.Breakdown["ai_flagged_term_count"])
		}
		if !hasSuggestion(r, "Reviewer note: The install section skips configuration.") {
			t.Errorf("%s: expected the reviewer note, got %v", c, r.Suggestions)
		}
		if !hasSuggestion(r, "idempotent") {
			t.Errorf("%s: expected the flagged term in a suggestion, got %v", c, r.Suggestions)
		}
		if r.AIFindings == nil {
			t.Errorf("%s: expected findings on the result", c)
		}
	}

	if got := results[model.CriterionStyle].Breakdown["ai_score"]; got != 2 {
		t.Errorf("expected style ai_score 2 for high severity, got %f", got)
	}
}

func TestSuggestionsOrdered(t *testing.T) {
	t.Parallel()

	var sg suggestions
	sg.add(2, "minor")
	sg.add(8, "major")
	sg.add(5, "first medium")
	sg.add(5, "second medium")

	got := sg.ordered()
	want := []string{"major", "first medium", "second medium", "minor"}
	if len(got) != len(want) {
		t.Fatalf("expected %d suggestions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %q at %d, got %q", want[i], i, got[i])
		}
	}
}
