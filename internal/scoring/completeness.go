package scoring

import (
	"context"

	"github.com/nao1215/docscore/internal/ai"
	"github.com/nao1215/docscore/internal/metrics"
	"github.com/nao1215/docscore/internal/model"
)

// Completeness score weights.
const (
	examplesWeight   = 0.3
	stepsWeight      = 0.3
	codeWeight       = 0.2
	referencesWeight = 0.2
)

// technicalDensity is the technical term density above which a page is
// expected to contain code.
const technicalDensity = 0.02

// CompletenessAnalyzer scores examples, instructions, code and references.
type CompletenessAnalyzer struct {
	settings Settings
}

// NewCompletenessAnalyzer creates a CompletenessAnalyzer.
func NewCompletenessAnalyzer(s Settings) *CompletenessAnalyzer {
	return &CompletenessAnalyzer{settings: s}
}

// Criterion returns model.CriterionCompleteness.
func (a *CompletenessAnalyzer) Criterion() model.Criterion {
	return model.CriterionCompleteness
}

// Analyze blends example coverage, step-by-step instructions, code
// blocks and links to related material.
func (a *CompletenessAnalyzer) Analyze(ctx context.Context, doc *model.Document, sup ai.Supplementer) model.CriterionResult {
	pres := metrics.Presence(doc)
	terms := metrics.TechnicalTerms(doc.FullText, a.settings.Jargon)
	technical := terms.Density >= technicalDensity || pres.HasSteps
	findings := requestSupplement(ctx, sup, doc, a.Criterion(), a.settings.ExcerptBudget)

	examples := metrics.Clamp(2.5*float64(pres.ExampleMentions+pres.CodeBlocks), 0, 10)
	steps := 10 * bool01(pres.HasSteps)
	code := 10 * bool01(pres.HasCode)
	if !pres.HasCode && !technical {
		// Prose pages are not expected to contain code.
		code = 5
	}
	references := metrics.Clamp(2*float64(pres.Links), 0, 10)

	breakdown := map[string]float64{
		"has_examples":        bool01(pres.HasExamples),
		"example_mentions":    float64(pres.ExampleMentions),
		"has_steps":           bool01(pres.HasSteps),
		"step_markers":        float64(pres.StepMarkers),
		"ordered_list_count":  float64(pres.OrderedLists),
		"has_code_blocks":     bool01(pres.HasCode),
		"code_block_count":    float64(pres.CodeBlocks),
		"code_has_comments":   bool01(pres.HasCodeComments),
		"link_count":          float64(pres.Links),
		"image_count":         float64(pres.Images),
		"images_missing_alt":  float64(doc.ImagesWithoutAlt()),
		"has_prerequisites":   bool01(pres.PrerequisiteMentions > 0),
		"has_troubleshooting": bool01(pres.TroubleshootingMentions > 0),
		"examples_score":      round2(examples),
		"steps_score":         round2(steps),
		"code_score":          round2(code),
		"references_score":    round2(references),
	}

	var sg suggestions
	switch {
	case !pres.HasExamples:
		sg.add(8, "Add practical examples to illustrate concepts and usage.")
	case pres.ExampleMentions+pres.CodeBlocks < 2:
		sg.add(3, "Include more diverse examples to cover different use cases.")
	}
	if !pres.HasSteps {
		sg.add(7, "Provide clear step-by-step instructions, for example as a numbered list.")
	}
	if !pres.HasCode && technical {
		sg.add(6, "Include code examples for technical instructions.")
	}
	if pres.HasCode && !pres.HasCodeComments {
		sg.add(2, "Comment the code examples so readers know what each part does.")
	}
	if pres.Links == 0 {
		sg.add(4, "Include links to related documentation and resources.")
	}
	if pres.HasSteps && pres.PrerequisiteMentions == 0 {
		sg.add(3, "State prerequisites and requirements before the first step.")
	}
	if pres.TroubleshootingMentions == 0 && doc.WordCount > 300 {
		sg.add(2, "Add a troubleshooting section for common issues.")
	}
	if pres.Images == 0 && doc.WordCount > 500 {
		sg.add(2, "Add screenshots or diagrams to support explanations.")
	}
	if missing := doc.ImagesWithoutAlt(); missing > 0 {
		sg.add(2, "Add alt text to %d image(s).", missing)
	}
	if t := flaggedTerms(findings); t != "" {
		sg.add(5, "Cover topics a reviewer found missing: %s.", t)
	}
	mergeSupplement(breakdown, &sg, findings)

	score := examplesWeight*examples + stepsWeight*steps + codeWeight*code + referencesWeight*references
	return model.CriterionResult{
		Criterion:   a.Criterion(),
		Score:       finalScore(score),
		Breakdown:   breakdown,
		Suggestions: sg.ordered(),
		AIFindings:  findings,
	}
}
