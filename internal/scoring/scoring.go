package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nao1215/docscore/internal/ai"
	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/metrics"
	"github.com/nao1215/docscore/internal/model"
)

// Analyzer scores a document on one criterion.
type Analyzer interface {
	// Criterion returns the criterion this analyzer scores.
	Criterion() model.Criterion

	// Analyze scores doc. sup may be nil to skip the AI supplement.
	Analyze(ctx context.Context, doc *model.Document, sup ai.Supplementer) model.CriterionResult
}

// Settings are the thresholds shared by the analyzers.
type Settings struct {
	// LongParagraphWords is the word count above which a paragraph is long.
	LongParagraphWords int

	// PassiveThreshold is the passive-voice ratio above which the style
	// analyzer suggests using active voice.
	PassiveThreshold float64

	// TargetGradeMin and TargetGradeMax bound the target reading grade.
	TargetGradeMin float64
	TargetGradeMax float64

	// ExcerptBudget is the maximum excerpt length sent for review.
	ExcerptBudget int

	// Jargon lists terms counted as technical.
	Jargon []string
}

// DefaultSettings returns the default thresholds.
func DefaultSettings() Settings {
	return Settings{
		LongParagraphWords: config.DefaultLongParagraphWords,
		PassiveThreshold:   config.DefaultPassiveThreshold,
		TargetGradeMin:     config.DefaultTargetGradeMin,
		TargetGradeMax:     config.DefaultTargetGradeMax,
		ExcerptBudget:      config.DefaultAIExcerptBudget,
		Jargon:             metrics.DefaultJargon,
	}
}

// SettingsFromConfig returns the thresholds configured in cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	s := DefaultSettings()
	s.LongParagraphWords = cfg.LongParagraphWords
	s.PassiveThreshold = cfg.PassiveThreshold
	s.TargetGradeMin = cfg.TargetGradeMin
	s.TargetGradeMax = cfg.TargetGradeMax
	s.ExcerptBudget = cfg.AIExcerptBudget
	return s
}

// Analyzers returns one analyzer per criterion in canonical order.
func Analyzers(s Settings) []Analyzer {
	return []Analyzer{
		NewReadabilityAnalyzer(s),
		NewStructureAnalyzer(s),
		NewCompletenessAnalyzer(s),
		NewStyleAnalyzer(s),
	}
}

// suggestion is a suggestion text with the severity used for ordering.
type suggestion struct {
	severity float64
	text     string
}

// suggestions collects suggestions and orders them worst first.
type suggestions []suggestion

func (s *suggestions) add(severity float64, format string, args ...any) {
	*s = append(*s, suggestion{severity: severity, text: fmt.Sprintf(format, args...)})
}

// ordered returns the texts by descending severity, keeping insertion
// order for ties.
func (s suggestions) ordered() []string {
	sorted := make(suggestions, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].severity > sorted[j].severity
	})
	texts := make([]string, len(sorted))
	for i, sg := range sorted {
		texts[i] = sg.text
	}
	return texts
}

// requestSupplement asks sup to review doc for criterion.
func requestSupplement(ctx context.Context, sup ai.Supplementer, doc *model.Document, criterion model.Criterion, budget int) *model.AIFindings {
	if sup == nil {
		return nil
	}
	return sup.Supplement(ctx, criterion, ai.BuildExcerpt(doc, criterion, budget))
}

// severityLevel maps a severity to 1 (low) through 3 (high).
func severityLevel(s model.Severity) float64 {
	switch s {
	case model.SeverityLow:
		return 1
	case model.SeverityMedium:
		return 2
	case model.SeverityHigh:
		return 3
	default:
		return 0
	}
}

// mergeSupplement adds the ai_ breakdown entries and the reviewer note
// suggestion for findings. It does nothing when findings is nil.
func mergeSupplement(breakdown map[string]float64, sg *suggestions, findings *model.AIFindings) {
	if findings == nil {
		return
	}
	breakdown["ai_severity"] = severityLevel(findings.Severity)
	breakdown["ai_note_count"] = float64(len(findings.Notes))
	breakdown["ai_flagged_term_count"] = float64(len(findings.FlaggedTerms))

	if len(findings.Notes) == 0 {
		return
	}
	switch findings.Severity {
	case model.SeverityHigh:
		sg.add(6, "Reviewer note: %s", findings.Notes[0])
	case model.SeverityMedium:
		sg.add(4, "Reviewer note: %s", findings.Notes[0])
	}
}

// flaggedTerms formats up to five flagged terms for a suggestion.
func flaggedTerms(findings *model.AIFindings) string {
	if findings == nil || len(findings.FlaggedTerms) == 0 {
		return ""
	}
	terms := findings.FlaggedTerms
	if len(terms) > 5 {
		terms = terms[:5]
	}
	return strings.Join(terms, ", ")
}

// bool01 encodes a boolean sub-metric.
func bool01(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// finalScore clamps v to [0, 10] and rounds it to two decimals.
func finalScore(v float64) float64 {
	return round2(metrics.Clamp(v, 0, 10))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
