package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/nao1215/docscore/internal/model"
)

// WeightTolerance is the allowed deviation of the weight sum from 1.0.
const WeightTolerance = 1e-6

// Weights holds the contribution of each criterion to the overall score.
type Weights struct {
	Readability  float64 `yaml:"readability"`
	Structure    float64 `yaml:"structure"`
	Completeness float64 `yaml:"completeness"`
	Style        float64 `yaml:"style"`
}

// DefaultWeights returns equal weights of 0.25.
func DefaultWeights() Weights {
	return Weights{
		Readability:  0.25,
		Structure:    0.25,
		Completeness: 0.25,
		Style:        0.25,
	}
}

// For returns the weight of criterion c.
func (w Weights) For(c model.Criterion) float64 {
	switch c {
	case model.CriterionReadability:
		return w.Readability
	case model.CriterionStructure:
		return w.Structure
	case model.CriterionCompleteness:
		return w.Completeness
	case model.CriterionStyle:
		return w.Style
	default:
		return 0
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Readability + w.Structure + w.Completeness + w.Style
}

// Validate checks that every weight is non-negative and that the weights
// sum to 1.0 within WeightTolerance.
func (w Weights) Validate() error {
	for _, c := range model.Criteria {
		v := w.For(c)
		if v < 0 || math.IsNaN(v) {
			return newConfigError("weights."+c.String(), ErrNegativeWeight, fmt.Sprintf("got %g", v))
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > WeightTolerance {
		return newConfigError("weights", ErrWeightsSum, fmt.Sprintf("got %g", sum))
	}
	return nil
}

// Tier maps scores at or above Min to a recommendation label.
type Tier struct {
	Min   float64 `yaml:"min"`
	Label string  `yaml:"label"`
}

// DefaultTiers returns the four recommendation tiers, highest first.
func DefaultTiers() []Tier {
	return []Tier{
		{Min: 8, Label: "Excellent documentation. Keep it maintained and up to date."},
		{Min: 6, Label: "Good documentation with room for improvement."},
		{Min: 4, Label: "Documentation needs significant work."},
		{Min: 0, Label: "Documentation requires major revision."},
	}
}

// SortTiers returns a copy of tiers ordered by descending minimum.
func SortTiers(tiers []Tier) []Tier {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Min > sorted[j].Min
	})
	return sorted
}

// ValidateTiers checks that tiers are labelled, have distinct minimums in
// [0, 10], and include a tier starting at 0 so every score has a label.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return newConfigError("tiers", ErrInvalidTiers, "at least one tier is required")
	}

	seen := make(map[float64]bool, len(tiers))
	hasFloor := false
	for i, t := range tiers {
		if t.Label == "" {
			return newConfigError(fmt.Sprintf("tiers[%d].label", i), ErrInvalidTiers, "label is empty")
		}
		if t.Min < 0 || t.Min > 10 || math.IsNaN(t.Min) {
			return newConfigError(fmt.Sprintf("tiers[%d].min", i), ErrInvalidTiers, fmt.Sprintf("min %g is outside [0, 10]", t.Min))
		}
		if seen[t.Min] {
			return newConfigError(fmt.Sprintf("tiers[%d].min", i), ErrInvalidTiers, fmt.Sprintf("duplicate min %g", t.Min))
		}
		seen[t.Min] = true
		if t.Min == 0 {
			hasFloor = true
		}
	}
	if !hasFloor {
		return newConfigError("tiers", ErrInvalidTiers, "a tier with min 0 is required")
	}
	return nil
}
