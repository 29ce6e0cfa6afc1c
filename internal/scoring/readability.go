package scoring

import (
	"context"

	"github.com/nao1215/docscore/internal/ai"
	"github.com/nao1215/docscore/internal/metrics"
	"github.com/nao1215/docscore/internal/model"
)

// Readability score weights.
const (
	fleschWeight = 0.4
	gradeWeight  = 0.3
	jargonWeight = 0.3
)

// ReadabilityAnalyzer scores how easy the text is to read.
type ReadabilityAnalyzer struct {
	settings Settings
}

// NewReadabilityAnalyzer creates a ReadabilityAnalyzer.
func NewReadabilityAnalyzer(s Settings) *ReadabilityAnalyzer {
	return &ReadabilityAnalyzer{settings: s}
}

// Criterion returns model.CriterionReadability.
func (a *ReadabilityAnalyzer) Criterion() model.Criterion {
	return model.CriterionReadability
}

// Analyze blends Flesch reading ease, distance from the target grade
// band and technical term density.
func (a *ReadabilityAnalyzer) Analyze(ctx context.Context, doc *model.Document, sup ai.Supplementer) model.CriterionResult {
	rd := metrics.ComputeReadability(doc.FullText)
	terms := metrics.TechnicalTerms(doc.FullText, a.settings.Jargon)
	findings := requestSupplement(ctx, sup, doc, a.Criterion(), a.settings.ExcerptBudget)

	breakdown := map[string]float64{
		"sentence_count":              float64(rd.Sentences),
		"word_count":                  float64(rd.Words),
		"avg_sentence_length":         round2(rd.AvgSentenceLength),
		"avg_syllables_per_word":      round2(rd.AvgSyllablesPerWord),
		"complex_word_ratio":          round2(rd.ComplexWordRatio),
		"flesch_reading_ease":         round2(rd.FleschReadingEase),
		"flesch_kincaid_grade":        round2(rd.FleschKincaidGrade),
		"gunning_fog":                 round2(rd.GunningFog),
		"coleman_liau":                round2(rd.ColemanLiau),
		"automated_readability_index": round2(rd.AutomatedReadability),
		"smog_index":                  round2(rd.SMOG),
		"technical_term_density":      round2(terms.Density),
	}

	var sg suggestions
	var score float64
	if rd.Sentences == 0 || rd.Words == 0 {
		sg.add(10, "No readable sentences were found. Add explanatory prose to the page.")
	} else {
		flesch := metrics.Clamp(rd.FleschReadingEase/10, 0, 10)
		grade := a.gradeComponent(rd.FleschKincaidGrade)
		jargon := metrics.Clamp(10-terms.Density*50, 0, 10)
		breakdown["flesch_component"] = round2(flesch)
		breakdown["grade_component"] = round2(grade)
		breakdown["jargon_component"] = round2(jargon)
		score = fleschWeight*flesch + gradeWeight*grade + jargonWeight*jargon
		a.suggest(&sg, rd, terms)
	}

	if t := flaggedTerms(findings); t != "" {
		sg.add(5, "Explain or replace terms a reviewer found unclear: %s.", t)
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

// gradeComponent is 10 inside the target band. Grades above the band
// cost 2 points per grade; grades below it cost 1.
func (a *ReadabilityAnalyzer) gradeComponent(grade float64) float64 {
	switch {
	case grade > a.settings.TargetGradeMax:
		return metrics.Clamp(10-2*(grade-a.settings.TargetGradeMax), 0, 10)
	case grade < a.settings.TargetGradeMin:
		return metrics.Clamp(10-(a.settings.TargetGradeMin-grade), 0, 10)
	default:
		return 10
	}
}

func (a *ReadabilityAnalyzer) suggest(sg *suggestions, rd metrics.Readability, terms metrics.TermStats) {
	switch fre := rd.FleschReadingEase; {
	case fre < 30:
		sg.add(9, "Text is very difficult to read (Flesch reading ease %.1f). Use simpler words and shorter sentences.", fre)
	case fre < 50:
		sg.add(7, "Text is fairly difficult to read (Flesch reading ease %.1f). Simplify vocabulary and sentence structure.", fre)
	case fre < 60:
		sg.add(4, "Readability is standard (Flesch reading ease %.1f) but could be improved for a broader audience.", fre)
	}

	if grade := rd.FleschKincaidGrade; grade > a.settings.TargetGradeMax {
		over := grade - a.settings.TargetGradeMax
		sg.add(5+min(3, over/2), "Content is written at grade %.1f. Aim for grade %g-%g to reach a broader audience.",
			grade, a.settings.TargetGradeMin, a.settings.TargetGradeMax)
	}

	switch avg := rd.AvgSentenceLength; {
	case avg > 25:
		sg.add(6, "Average sentence length is %.1f words. Break long sentences into shorter ones (aim for 15-20 words).", avg)
	case avg > 20:
		sg.add(4, "Some sentences are long (%.1f words on average). Consider splitting complex sentences.", avg)
	}

	switch d := terms.Density; {
	case d > 0.05:
		sg.add(6, "High technical term density (%.1f%%). Define technical terms or explain them inline.", d*100)
	case d > 0.03:
		sg.add(3, "Consider adding a glossary or inline explanations for technical terms (%.1f%% of words).", d*100)
	}

	if rd.AvgSyllablesPerWord > 1.7 {
		sg.add(3, "Use shorter, simpler words where possible (%.2f syllables per word on average).", rd.AvgSyllablesPerWord)
	}
}
