package metrics

import "strings"

// ParagraphStats describes paragraph lengths in words.
type ParagraphStats struct {
	Count     int
	MeanWords float64
	MaxWords  int

	// LongCount is the number of paragraphs with more words than the threshold.
	LongCount int

	// LongFraction is LongCount / Count.
	LongFraction float64
}

// ParagraphLengths measures paragraphs against a long-paragraph threshold.
func ParagraphLengths(paragraphs []string, threshold int) ParagraphStats {
	stats := ParagraphStats{Count: len(paragraphs)}
	if len(paragraphs) == 0 {
		return stats
	}

	total := 0
	for _, p := range paragraphs {
		n := len(strings.Fields(p))
		total += n
		if n > stats.MaxWords {
			stats.MaxWords = n
		}
		if n > threshold {
			stats.LongCount++
		}
	}
	stats.MeanWords = float64(total) / float64(len(paragraphs))
	stats.LongFraction = float64(stats.LongCount) / float64(len(paragraphs))
	return stats
}
