package model

import "time"

// CriterionResult is the outcome of scoring a document on one criterion.
type CriterionResult struct {
	// Criterion identifies which analyzer produced the result.
	Criterion Criterion `json:"-"`

	// Score is in [0, 10].
	Score float64 `json:"score"`

	// Breakdown maps sub-metric names to their values. Boolean
	// sub-metrics are encoded as 1 or 0. AI-derived entries use the
	// "ai_" prefix and are present only when a supplement was obtained.
	Breakdown map[string]float64 `json:"breakdown"`

	// Suggestions are ordered worst first.
	Suggestions []string `json:"suggestions"`

	// AIFindings is the parsed reviewer supplement, if any.
	AIFindings *AIFindings `json:"ai_findings,omitempty"`

	// Summary is a one-line assessment labelled with the recommendation
	// tier the score falls into.
	Summary string `json:"summary"`
}

// TopSuggestion returns the first suggestion, or "" when there are none.
func (r CriterionResult) TopSuggestion() string {
	if len(r.Suggestions) == 0 {
		return ""
	}
	return r.Suggestions[0]
}

// Summary is the aggregated assessment across all criteria.
type Summary struct {
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	PriorityImprovements []string `json:"priority_improvements"`
	Recommendation       string   `json:"recommendation"`

	// Tier is the index of the matched recommendation tier, 0 being the
	// highest. TierCount is the number of configured tiers.
	Tier      int `json:"tier"`
	TierCount int `json:"tier_count"`
}

// AnalysisResult is the complete analysis of a single URL.
type AnalysisResult struct {
	URL          string          `json:"url"`
	AnalyzedAt   time.Time       `json:"analyzed_at"`
	Document     DocumentInfo    `json:"document"`
	Readability  CriterionResult `json:"readability"`
	Structure    CriterionResult `json:"structure"`
	Completeness CriterionResult `json:"completeness"`
	Style        CriterionResult `json:"style"`
	OverallScore float64         `json:"overall_score"`
	Summary      Summary         `json:"summary"`

	// AISupplemented reports whether at least one criterion received a
	// reviewer supplement.
	AISupplemented bool `json:"ai_supplemented"`
}

// NewAnalysisResult creates an empty result for url.
func NewAnalysisResult(url string) *AnalysisResult {
	return &AnalysisResult{
		URL:        url,
		AnalyzedAt: time.Now().UTC(),
	}
}

// Set stores r in the field matching r.Criterion.
func (a *AnalysisResult) Set(r CriterionResult) {
	switch r.Criterion {
	case CriterionReadability:
		a.Readability = r
	case CriterionStructure:
		a.Structure = r
	case CriterionCompleteness:
		a.Completeness = r
	case CriterionStyle:
		a.Style = r
	}
	if r.AIFindings != nil {
		a.AISupplemented = true
	}
}

// Criteria returns the four criterion results in canonical order.
func (a *AnalysisResult) Criteria() []CriterionResult {
	return []CriterionResult{a.Readability, a.Structure, a.Completeness, a.Style}
}
