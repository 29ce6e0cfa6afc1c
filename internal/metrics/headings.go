package metrics

// Heading hierarchy penalties. A document starts at 10 and loses
// GapPenalty per skipped level transition and AnchorPenalty when its
// first heading is deeper than H2.
const (
	GapPenalty    = 2.0
	AnchorPenalty = 3.0
)

// Hierarchy describes the heading outline of a document.
type Hierarchy struct {
	Count int

	// GapCount is the number of transitions where level[i+1] > level[i]+1.
	GapCount int

	// MaxSkipped is the largest number of levels skipped by one transition.
	MaxSkipped int

	HasGaps      bool
	HasH1        bool
	HasTopAnchor bool
	UniqueLevels int

	// Score is in [0, 10]; 0 when there are no headings.
	Score float64
}

// HeadingHierarchy analyzes heading levels given in document order.
// Moving up any number of levels is never a gap.
func HeadingHierarchy(levels []int) Hierarchy {
	h := Hierarchy{Count: len(levels)}
	if len(levels) == 0 {
		return h
	}

	unique := make(map[int]bool)
	for i, level := range levels {
		unique[level] = true
		if level == 1 {
			h.HasH1 = true
		}
		if i == 0 {
			continue
		}
		if skipped := level - levels[i-1] - 1; skipped > 0 {
			h.GapCount++
			if skipped > h.MaxSkipped {
				h.MaxSkipped = skipped
			}
		}
	}
	h.UniqueLevels = len(unique)
	h.HasGaps = h.GapCount > 0
	h.HasTopAnchor = levels[0] <= 2

	score := 10 - GapPenalty*float64(h.GapCount)
	if !h.HasTopAnchor {
		score -= AnchorPenalty
	}
	h.Score = Clamp(score, 0, 10)
	return h
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
