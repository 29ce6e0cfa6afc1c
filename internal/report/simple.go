package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nao1215/docscore/internal/model"
)

const (
	ruleWidth = 70

	// defaultSuggestionLimit is the number of suggestions shown per
	// criterion unless verbose output is enabled.
	defaultSuggestionLimit = 3
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds the metric breakdown and every suggestion.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the result in human-readable format.
func (w *SimpleWriter) Write(result *model.AnalysisResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeCriteria(&sb, result)
	w.writeSummary(&sb, result.Summary)
	writeRule(&sb, "=")

	return io.WriteString(w.output, sb.String())
}

// WriteBatch outputs every successful result followed by a batch summary.
func (w *SimpleWriter) WriteBatch(outcomes []model.Outcome) (int, error) {
	var total int
	for _, out := range outcomes {
		if out.Result == nil {
			continue
		}
		n, err := w.Write(out.Result)
		total += n
		if err != nil {
			return total, err
		}
	}

	var sb strings.Builder
	w.writeBatchSummary(&sb, NewBatchSummary(outcomes))
	n, err := io.WriteString(w.output, sb.String())
	return total + n, err
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.AnalysisResult) {
	sb.WriteString("\n")
	writeRule(sb, "=")
	sb.WriteString("                     DOCUMENTATION QUALITY REPORT\n")
	writeRule(sb, "=")
	sb.WriteString("\n")

	fmt.Fprintf(sb, "URL:            %s\n", result.URL)
	if result.Document.Title != "" {
		fmt.Fprintf(sb, "Title:          %s\n", result.Document.Title)
	}
	fmt.Fprintf(sb, "Analyzed:       %s\n", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Words:          %d\n", result.Document.WordCount)
	fmt.Fprintf(sb, "Overall Score:  %.2f/10\n", result.OverallScore)
	if result.AISupplemented {
		sb.WriteString("AI Review:      included\n")
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCriteria(sb *strings.Builder, result *model.AnalysisResult) {
	writeSection(sb, "CRITERIA")

	for _, r := range result.Criteria() {
		fmt.Fprintf(sb, "  %-14s %5.2f  %s\n", r.Criterion.DisplayName(), r.Score, scoreBar(r.Score))
	}
	sb.WriteString("\n")

	for _, r := range result.Criteria() {
		if len(r.Suggestions) == 0 && !w.verbose {
			continue
		}
		fmt.Fprintf(sb, "[%s]\n", r.Criterion.DisplayName())

		suggestions := r.Suggestions
		if !w.verbose && len(suggestions) > defaultSuggestionLimit {
			suggestions = suggestions[:defaultSuggestionLimit]
		}
		for _, s := range suggestions {
			fmt.Fprintf(sb, "  * %s\n", s)
		}
		if w.verbose {
			for _, key := range sortedKeys(r.Breakdown) {
				fmt.Fprintf(sb, "    %s: %g\n", key, r.Breakdown[key])
			}
			if r.AIFindings != nil {
				for _, note := range r.AIFindings.Notes {
					fmt.Fprintf(sb, "    reviewer (%s): %s\n", r.AIFindings.Severity, note)
				}
			}
		}
		sb.WriteString("\n")
	}
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, summary model.Summary) {
	writeSection(sb, "SUMMARY")

	writeList(sb, "Strengths", summary.Strengths)
	writeList(sb, "Weaknesses", summary.Weaknesses)
	writeList(sb, "Priority Improvements", summary.PriorityImprovements)
	fmt.Fprintf(sb, "Recommendation: %s\n\n", summary.Recommendation)
}

func (w *SimpleWriter) writeBatchSummary(sb *strings.Builder, s *BatchSummary) {
	sb.WriteString("\n")
	writeRule(sb, "=")
	sb.WriteString("                            BATCH SUMMARY\n")
	writeRule(sb, "=")
	sb.WriteString("\n")

	fmt.Fprintf(sb, "Total:          %d\n", s.Total)
	fmt.Fprintf(sb, "Succeeded:      %d\n", s.Succeeded)
	fmt.Fprintf(sb, "Failed:         %d\n", s.Failed)
	if s.Succeeded > 0 {
		fmt.Fprintf(sb, "Average Score:  %.2f/10\n", s.AverageScore)
	}
	sb.WriteString("\n")

	for i, e := range s.Entries {
		if e.ErrorKind != "" {
			fmt.Fprintf(sb, "  %2d. [FAILED] %s\n      %s", i+1, e.URL, e.ErrorKind)
			if e.Stage != "" {
				fmt.Fprintf(sb, " at %s", e.Stage)
			}
			if e.Message != "" {
				fmt.Fprintf(sb, ": %s", e.Message)
			}
			sb.WriteString("\n")
			continue
		}
		fmt.Fprintf(sb, "  %2d. [%5.2f] %s\n", i+1, e.OverallScore, e.URL)
	}
	sb.WriteString("\n")
	writeRule(sb, "=")
}

func writeRule(sb *strings.Builder, char string) {
	sb.WriteString(strings.Repeat(char, ruleWidth))
	sb.WriteString("\n")
}

func writeSection(sb *strings.Builder, title string) {
	writeRule(sb, "-")
	sb.WriteString(title)
	sb.WriteString("\n")
	writeRule(sb, "-")
	sb.WriteString("\n")
}

func writeList(sb *strings.Builder, title string, items []string) {
	fmt.Fprintf(sb, "%s:\n", title)
	if len(items) == 0 {
		sb.WriteString("  (none)\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(sb, "  - %s\n", item)
	}
	sb.WriteString("\n")
}

// scoreBar renders a score as a ten character bar.
func scoreBar(score float64) string {
	filled := int(score + 0.5)
	filled = max(0, min(10, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
