// Package aggregate combines the four criterion results of a page into an
// overall score and a summary.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/metrics"
	"github.com/nao1215/docscore/internal/model"
)

const (
	// StrengthMin is the score at or above which a criterion is a strength.
	StrengthMin = 8.0

	// WeaknessMax is the score below which a criterion is a weakness.
	WeaknessMax = 6.0

	// MaxPriorityImprovements is the number of lowest-scoring criteria
	// that contribute a priority improvement.
	MaxPriorityImprovements = 3
)

// Aggregator computes weighted overall scores and summaries.
// It is immutable after New and safe for concurrent use.
type Aggregator struct {
	weights     config.Weights
	tiers       []config.Tier
	strengthMin float64
	weaknessMax float64
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithThresholds overrides the strength and weakness thresholds.
func WithThresholds(strengthMin, weaknessMax float64) Option {
	return func(a *Aggregator) {
		a.strengthMin = strengthMin
		a.weaknessMax = weaknessMax
	}
}

// New creates an Aggregator. It returns a *config.ConfigError when the
// weights do not sum to 1.0 or the tiers cannot label every score.
func New(weights config.Weights, tiers []config.Tier, opts ...Option) (*Aggregator, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if err := config.ValidateTiers(tiers); err != nil {
		return nil, err
	}

	a := &Aggregator{
		weights:     weights,
		tiers:       config.SortTiers(tiers),
		strengthMin: StrengthMin,
		weaknessMax: WeaknessMax,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewFromConfig creates an Aggregator from cfg's weights and tiers.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Aggregator, error) {
	return New(cfg.Weights, cfg.Tiers, opts...)
}

// Aggregate returns the overall score and summary for results.
// results may be in any order; the summary follows canonical criterion
// order.
func (a *Aggregator) Aggregate(results []model.CriterionResult) (float64, model.Summary) {
	ordered := canonical(results)

	var overall float64
	for _, r := range ordered {
		overall += a.weights.For(r.Criterion) * r.Score
	}
	overall = math.Round(metrics.Clamp(overall, 0, 10)*100) / 100

	summary := model.Summary{
		Strengths:            make([]string, 0, len(ordered)),
		Weaknesses:           make([]string, 0, len(ordered)),
		PriorityImprovements: make([]string, 0, MaxPriorityImprovements),
		Recommendation:       a.Recommendation(overall),
		Tier:                 a.tierIndex(overall),
		TierCount:            len(a.tiers),
	}
	for _, r := range ordered {
		switch {
		case r.Score >= a.strengthMin:
			summary.Strengths = append(summary.Strengths, label(r))
		case r.Score < a.weaknessMax:
			summary.Weaknesses = append(summary.Weaknesses, label(r))
		}
	}

	lowest := make([]model.CriterionResult, len(ordered))
	copy(lowest, ordered)
	sort.SliceStable(lowest, func(i, j int) bool {
		return lowest[i].Score < lowest[j].Score
	})
	for _, r := range lowest[:min(MaxPriorityImprovements, len(lowest))] {
		if s := r.TopSuggestion(); s != "" {
			summary.PriorityImprovements = append(summary.PriorityImprovements, s)
		}
	}

	return overall, summary
}

// Apply aggregates the criterion results stored in result, labels each
// of them with a summary and fills the overall score and summary.
func (a *Aggregator) Apply(result *model.AnalysisResult) {
	for _, r := range result.Criteria() {
		r.Summary = a.CriterionSummary(r)
		result.Set(r)
	}
	result.OverallScore, result.Summary = a.Aggregate(result.Criteria())
}

// CriterionSummary describes r in one line using the tier its score
// falls into.
func (a *Aggregator) CriterionSummary(r model.CriterionResult) string {
	return fmt.Sprintf("%s scored %.1f/10. %s", r.Criterion.DisplayName(), r.Score, a.Recommendation(r.Score))
}

// Recommendation returns the label of the highest tier whose minimum is
// at or below score.
func (a *Aggregator) Recommendation(score float64) string {
	return a.tiers[a.tierIndex(score)].Label
}

// tierIndex returns the index of the highest tier whose minimum is at or
// below score, or the last tier when none is.
func (a *Aggregator) tierIndex(score float64) int {
	for i, t := range a.tiers {
		if score >= t.Min {
			return i
		}
	}
	return len(a.tiers) - 1
}

// canonical returns results sorted into canonical criterion order.
func canonical(results []model.CriterionResult) []model.CriterionResult {
	ordered := make([]model.CriterionResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Criterion < ordered[j].Criterion
	})
	return ordered
}

func label(r model.CriterionResult) string {
	return fmt.Sprintf("%s (%.1f/10)", r.Criterion.DisplayName(), r.Score)
}
