package scoring

import (
	"context"
	"strings"

	"github.com/nao1215/docscore/internal/ai"
	"github.com/nao1215/docscore/internal/metrics"
	"github.com/nao1215/docscore/internal/model"
)

// Style score weights. Without an AI supplement the AI weight is shared
// between the other two in proportion.
const (
	passiveWeight = 0.45
	actionWeight  = 0.35
	aiStyleWeight = 0.2
)

// fullActionRatio is the imperative sentence ratio that earns the full
// action component.
const fullActionRatio = 0.3

// StyleAnalyzer scores voice, tone and terminology.
type StyleAnalyzer struct {
	settings Settings
}

// NewStyleAnalyzer creates a StyleAnalyzer.
func NewStyleAnalyzer(s Settings) *StyleAnalyzer {
	return &StyleAnalyzer{settings: s}
}

// Criterion returns model.CriterionStyle.
func (a *StyleAnalyzer) Criterion() model.Criterion {
	return model.CriterionStyle
}

// Analyze blends the inverse passive-voice ratio, the action language
// ratio and, when available, the reviewer's severity.
func (a *StyleAnalyzer) Analyze(ctx context.Context, doc *model.Document, sup ai.Supplementer) model.CriterionResult {
	voice := metrics.Voice(metrics.Sentences(doc.FullText), nil)
	tone := metrics.Tone(doc.FullText)
	findings := requestSupplement(ctx, sup, doc, a.Criterion(), a.settings.ExcerptBudget)

	passive := metrics.Clamp(10*(1-voice.PassiveRatio), 0, 10)
	action := metrics.Clamp(10*voice.ActionRatio/fullActionRatio, 0, 10)

	breakdown := map[string]float64{
		"sentence_count":          float64(voice.Sentences),
		"passive_sentence_count":  float64(voice.Passive),
		"passive_voice_ratio":     round2(voice.PassiveRatio),
		"action_ratio":            round2(voice.ActionRatio),
		"filler_density":          round2(tone.FillerDensity),
		"user_focus":              round2(tone.UserFocus),
		"inconsistent_term_count": float64(len(tone.InconsistentTerms)),
		"passive_score":           round2(passive),
		"action_score":            round2(action),
	}

	var score float64
	if findings != nil {
		reviewer := reviewerScore(findings.Severity)
		breakdown["ai_score"] = reviewer
		score = passiveWeight*passive + actionWeight*action + aiStyleWeight*reviewer
	} else {
		total := passiveWeight + actionWeight
		score = (passiveWeight*passive + actionWeight*action) / total
	}

	var sg suggestions
	if voice.PassiveRatio > a.settings.PassiveThreshold {
		sg.add(6+4*voice.PassiveRatio,
			"Reduce passive voice (%.0f%% of sentences). Use active voice for clearer instructions.",
			voice.PassiveRatio*100)
	}
	if voice.Sentences > 0 && voice.ActionRatio < 0.1 {
		sg.add(4, "Add more action-oriented language with clear imperatives (for example \"Click Save\" or \"Enter your API key\").")
	}
	if tone.SecondPerson+tone.FirstPersonPlural > 0 && tone.UserFocus < 0.5 {
		sg.add(3, "Address the reader directly (\"you\", \"your\") instead of describing what \"we\" do.")
	}
	if len(tone.InconsistentTerms) > 0 {
		sg.add(3, "Use consistent terminology: %s.", strings.Join(tone.InconsistentTerms, "; "))
	}
	if tone.FillerDensity > 0.02 {
		sg.add(2, "Remove filler words such as \"simply\" and \"just\" (%d found).", tone.FillerCount)
	}
	if t := flaggedTerms(findings); t != "" {
		sg.add(3, "Review terms a reviewer flagged for tone or consistency: %s.", t)
	}
	mergeSupplement(breakdown, &sg, findings)

	return model.CriterionResult{
		Criterion:   a.Criterion(),
		Score:       finalScore(score),
		Breakdown:   breakdown,
		Suggestions: sg.ordered(),
		AIFindings:  findings,
	}
}

// reviewerScore maps a reviewer severity to a component score.
func reviewerScore(s model.Severity) float64 {
	switch s {
	case model.SeverityLow:
		return 10
	case model.SeverityMedium:
		return 6
	case model.SeverityHigh:
		return 2
	default:
		return 0
	}
}
