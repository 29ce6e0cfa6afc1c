package scoring

import (
	"context"
	"strings"

	"github.com/nao1215/docscore/internal/ai"
	"github.com/nao1215/docscore/internal/metrics"
	"github.com/nao1215/docscore/internal/model"
)

// Structure score weights.
const (
	hierarchyWeight  = 0.4
	paragraphWeight  = 0.35
	introOutroWeight = 0.25
)

// minTransitions is the number of transition words expected in a page
// longer than 300 words.
const minTransitions = 2

// sectionCheckRange is how many headings at each end of the page are
// checked for introduction and conclusion terms.
const sectionCheckRange = 3

var (
	introTerms      = []string{"introduction", "overview", "getting started", "about", "what is"}
	conclusionTerms = []string{"conclusion", "summary", "next steps", "what's next", "see also", "related"}
)

// StructureAnalyzer scores heading hierarchy and paragraph layout.
type StructureAnalyzer struct {
	settings Settings
}

// NewStructureAnalyzer creates a StructureAnalyzer.
func NewStructureAnalyzer(s Settings) *StructureAnalyzer {
	return &StructureAnalyzer{settings: s}
}

// Criterion returns model.CriterionStructure.
func (a *StructureAnalyzer) Criterion() model.Criterion {
	return model.CriterionStructure
}

// Analyze blends the heading hierarchy score, the share of paragraphs
// within the length threshold and the presence of introduction and
// conclusion sections.
func (a *StructureAnalyzer) Analyze(ctx context.Context, doc *model.Document, sup ai.Supplementer) model.CriterionResult {
	h := metrics.HeadingHierarchy(doc.HeadingLevels())
	p := metrics.ParagraphLengths(doc.Paragraphs, a.settings.LongParagraphWords)
	hasIntro := headingMatches(firstHeadings(doc.Headings), introTerms)
	hasConclusion := headingMatches(lastHeadings(doc.Headings), conclusionTerms)
	transitions := metrics.Transitions(doc.FullText)
	findings := requestSupplement(ctx, sup, doc, a.Criterion(), a.settings.ExcerptBudget)

	// Without paragraphs there is nothing to judge, so compliance is neutral.
	compliance := 5.0
	if p.Count > 0 {
		compliance = 10 * (1 - p.LongFraction)
	}
	introOutro := 5*bool01(hasIntro) + 5*bool01(hasConclusion)

	breakdown := map[string]float64{
		"heading_count":         float64(h.Count),
		"hierarchy_score":       round2(h.Score),
		"has_gaps":              bool01(h.HasGaps),
		"gap_count":             float64(h.GapCount),
		"has_top_anchor":        bool01(h.HasTopAnchor),
		"paragraph_count":       float64(p.Count),
		"avg_paragraph_words":   round2(p.MeanWords),
		"max_paragraph_words":   float64(p.MaxWords),
		"long_paragraph_count":  float64(p.LongCount),
		"paragraph_compliance":  round2(compliance),
		"has_introduction":      bool01(hasIntro),
		"has_conclusion":        bool01(hasConclusion),
		"list_count":            float64(len(doc.Lists)),
		"transition_word_count": float64(transitions),
	}

	var sg suggestions
	switch {
	case h.Count == 0:
		sg.add(9, "Add headings to break the content into scannable sections.")
	case h.Count < 3 && doc.WordCount > 300:
		sg.add(5, "Add more headings to break up %d words of content and improve scannability.", doc.WordCount)
	}
	if h.HasGaps {
		sg.add(7, "Fix %d heading hierarchy gap(s). Do not skip levels, for example from H1 to H3 without an H2.", h.GapCount)
	}
	if h.Count > 0 && !h.HasTopAnchor {
		sg.add(6, "Start the page with an H1 or H2 heading so readers see the topic first.")
	}
	if p.LongCount > 0 {
		sg.add(5+min(3, float64(p.LongCount)),
			"Break up %d paragraph(s) longer than %d words (the longest has %d words). Aim for 50-100 words per paragraph.",
			p.LongCount, a.settings.LongParagraphWords, p.MaxWords)
	}
	if !hasIntro {
		sg.add(3, "Add a clear introduction or overview section to orient readers.")
	}
	if !hasConclusion {
		sg.add(2, "Consider adding a summary or next steps section.")
	}
	if len(doc.Lists) == 0 && doc.WordCount > 300 {
		sg.add(3, "Use bullet points or numbered lists to break up dense text.")
	}
	if transitions < minTransitions && doc.WordCount > 300 {
		sg.add(2, "Connect sections and steps with transition words like \"next\" or \"as a result\".")
	}
	if t := flaggedTerms(findings); t != "" {
		sg.add(4, "Reorganize sections a reviewer found hard to follow: %s.", t)
	}
	mergeSupplement(breakdown, &sg, findings)

	score := hierarchyWeight*h.Score + paragraphWeight*compliance + introOutroWeight*introOutro
	return model.CriterionResult{
		Criterion:   a.Criterion(),
		Score:       finalScore(score),
		Breakdown:   breakdown,
		Suggestions: sg.ordered(),
		AIFindings:  findings,
	}
}

func firstHeadings(headings []model.Heading) []model.Heading {
	return headings[:min(sectionCheckRange, len(headings))]
}

func lastHeadings(headings []model.Heading) []model.Heading {
	return headings[max(0, len(headings)-sectionCheckRange):]
}

// headingMatches reports whether any heading contains one of terms.
func headingMatches(headings []model.Heading, terms []string) bool {
	for _, h := range headings {
		text := strings.ToLower(h.Text)
		for _, term := range terms {
			if strings.Contains(text, term) {
				return true
			}
		}
	}
	return false
}
