package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nao1215/docscore/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format for documentation
// and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Documentation Quality Report")
	md.PlainText("")
	w.writeResult(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs a batch summary followed by each successful result.
func (w *MarkdownWriter) WriteBatch(outcomes []model.Outcome) (int, error) {
	md := markdown.NewMarkdown(w.output)
	summary := NewBatchSummary(outcomes)

	md.H1("Documentation Quality Batch Report")
	md.PlainText("")
	w.writeBatchSummary(md, summary)

	for _, out := range outcomes {
		if out.Result == nil {
			continue
		}
		md.HorizontalRule()
		md.PlainText("")
		md.H2(out.Result.URL)
		md.PlainText("")
		w.writeResult(md, out.Result)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeResult writes the overview, scores, suggestions and summary of
// one result.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, result *model.AnalysisResult) {
	title := result.Document.Title
	if title == "" {
		title = "-"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", result.URL},
			{"Title", escapeCell(title)},
			{"Analyzed", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
			{"Words", fmt.Sprint(result.Document.WordCount)},
			{"Overall Score", fmt.Sprintf("**%.2f**/10", result.OverallScore)},
		},
	})
	md.PlainText("")
	w.writeAlert(md, result)

	rows := make([][]string, 0, len(model.Criteria))
	for _, r := range result.Criteria() {
		top := r.TopSuggestion()
		if top == "" {
			top = "-"
		}
		rows = append(rows, []string{
			r.Criterion.DisplayName(),
			fmt.Sprintf("%.2f", r.Score),
			escapeCell(truncateString(top, 90)),
		})
	}
	md.PlainText("**Scores**")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Criterion", "Score", "Top Suggestion"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeSuggestions(md, result)
	w.writeSummary(md, result.Summary)
}

// writeAlert writes an alert matching the recommendation tier: a tip for
// the highest tier, a caution for the lowest, a note for the second and a
// warning for any tier in between.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.AnalysisResult) {
	s := result.Summary
	switch {
	case s.Tier == 0:
		md.Tip(s.Recommendation)
	case s.Tier >= s.TierCount-1:
		md.Cautionf("%s Overall score %.2f/10.", s.Recommendation, result.OverallScore)
	case s.Tier == 1:
		md.Note(s.Recommendation)
	default:
		md.Warningf("%s Overall score %.2f/10.", s.Recommendation, result.OverallScore)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeSuggestions(md *markdown.Markdown, result *model.AnalysisResult) {
	var summaries []string
	for _, r := range result.Criteria() {
		if r.Summary != "" {
			summaries = append(summaries, r.Summary)
		}
	}
	if len(summaries) > 0 {
		md.PlainText("**Criterion summaries**")
		md.PlainText("")
		md.BulletList(summaries...)
		md.PlainText("")
	}

	for _, r := range result.Criteria() {
		if len(r.Suggestions) == 0 {
			continue
		}
		md.PlainTextf("**%s suggestions**", r.Criterion.DisplayName())
		md.PlainText("")
		md.BulletList(r.Suggestions...)
		md.PlainText("")

		if r.AIFindings != nil && len(r.AIFindings.Notes) > 0 {
			md.Details(
				fmt.Sprintf("Reviewer notes (%s severity)", r.AIFindings.Severity),
				strings.Join(r.AIFindings.Notes, "\n\n"),
			)
			md.PlainText("")
		}
	}
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, summary model.Summary) {
	sections := []struct {
		title string
		items []string
	}{
		{"Strengths", summary.Strengths},
		{"Weaknesses", summary.Weaknesses},
		{"Priority Improvements", summary.PriorityImprovements},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		md.PlainTextf("**%s**", s.title)
		md.PlainText("")
		md.BulletList(s.items...)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeBatchSummary(md *markdown.Markdown, s *BatchSummary) {
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", s.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"URLs", fmt.Sprint(s.Total)},
			{"Succeeded", fmt.Sprint(s.Succeeded)},
			{"Failed", fmt.Sprint(s.Failed)},
			{"Average Score", fmt.Sprintf("%.2f", s.AverageScore)},
		},
	})
	md.PlainText("")

	if s.Total > 0 {
		w.writePieChart(md, s)
	}
	if s.Failed > 0 {
		md.Importantf("%d of %d URL(s) could not be analyzed.", s.Failed, s.Total)
		md.PlainText("")
	}

	rows := make([][]string, len(s.Entries))
	for i, e := range s.Entries {
		score, detail := "-", e.Recommendation
		if e.ErrorKind != "" {
			detail = string(e.ErrorKind)
			if e.Stage != "" {
				detail += " at " + e.Stage
			}
		} else {
			score = fmt.Sprintf("%.2f", e.OverallScore)
		}
		rows[i] = []string{fmt.Sprint(i + 1), e.URL, score, escapeCell(truncateString(detail, 70))}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "URL", "Score", "Result"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of recommendation tiers and
// failure kinds.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *BatchSummary) {
	counts := make(map[string]uint64)
	for _, e := range s.Entries {
		label := e.Recommendation
		if e.ErrorKind != "" {
			label = string(e.ErrorKind)
		}
		counts[truncateString(label, 40)]++
	}
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Outcome Distribution"),
		piechart.WithShowData(true),
	)
	for _, l := range labels {
		chart.LabelAndIntValue(l, counts[l])
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [docscore](https://github.com/nao1215/docscore)*")
}

// escapeCell keeps table cell text from breaking the row.
func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", "\\|"), "\n", " ")
}

// truncateString truncates a string to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
