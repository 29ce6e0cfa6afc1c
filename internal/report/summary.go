package report

import (
	"math"
	"time"

	"github.com/nao1215/docscore/internal/model"
)

// BatchSummary condenses the outcomes of a batch.
type BatchSummary struct {
	GeneratedAt  time.Time    `json:"generated_at"`
	Total        int          `json:"total"`
	Succeeded    int          `json:"succeeded"`
	Failed       int          `json:"failed"`
	AverageScore float64      `json:"average_score"`
	Entries      []BatchEntry `json:"entries"`
}

// BatchEntry is one URL of a batch summary.
type BatchEntry struct {
	URL            string          `json:"url"`
	Title          string          `json:"title,omitempty"`
	OverallScore   float64         `json:"overall_score,omitempty"`
	Recommendation string          `json:"recommendation,omitempty"`
	ErrorKind      model.ErrorKind `json:"error_kind,omitempty"`
	Stage          string          `json:"stage,omitempty"`
	Message        string          `json:"message,omitempty"`
}

// NewBatchSummary summarizes outcomes. The average covers successful
// outcomes only and is 0 when there are none.
func NewBatchSummary(outcomes []model.Outcome) *BatchSummary {
	s := &BatchSummary{
		GeneratedAt: time.Now().UTC(),
		Total:       len(outcomes),
		Entries:     make([]BatchEntry, 0, len(outcomes)),
	}

	var sum float64
	for _, out := range outcomes {
		entry := BatchEntry{URL: out.URL}
		switch {
		case out.Result != nil:
			s.Succeeded++
			sum += out.Result.OverallScore
			entry.Title = out.Result.Document.Title
			entry.OverallScore = out.Result.OverallScore
			entry.Recommendation = out.Result.Summary.Recommendation
		case out.Failure != nil:
			s.Failed++
			entry.ErrorKind = out.Failure.ErrorKind
			entry.Stage = out.Failure.Stage
			entry.Message = out.Failure.Message
		default:
			s.Failed++
			entry.ErrorKind = model.ErrorKindInternal
		}
		s.Entries = append(s.Entries, entry)
	}
	if s.Succeeded > 0 {
		s.AverageScore = math.Round(sum/float64(s.Succeeded)*100) / 100
	}
	return s
}

// FailureCounts returns the number of failures per error kind.
func (s *BatchSummary) FailureCounts() map[model.ErrorKind]int {
	counts := make(map[model.ErrorKind]int)
	for _, e := range s.Entries {
		if e.ErrorKind != "" {
			counts[e.ErrorKind]++
		}
	}
	return counts
}
