package metrics

import (
	"regexp"

	"github.com/nao1215/docscore/internal/model"
)

// MinStepMarkers is the number of step markers that indicate
// step-by-step instructions without an ordered list.
const MinStepMarkers = 2

var (
	examplePhrases = NewPhraseSet(
		"for example", "for instance", "e.g.", "such as",
		"example", "examples", "sample", "samples",
	)

	stepNumber             = regexp.MustCompile(`(?i)\bstep\s+\d+\b`)
	numberedStart          = regexp.MustCompile(`^\s*\d+[.)]\s+\S`)
	sequenceStart          = regexp.MustCompile(`(?i)^\s*(first|second|third|next|then|finally|lastly),?\s`)
	prerequisitePhrases    = NewPhraseSet("prerequisite", "prerequisites", "requirements", "before you begin", "before you start", "you will need", "you'll need", "requires")
	codeComment            = regexp.MustCompile(`(?m)(?:^|\s)(?://|(?:#|--)\s)|/\*[\s\S]*?\*/|<!--[\s\S]*?-->`)
	troubleshootingPhrases = NewPhraseSet("troubleshooting", "troubleshoot", "common issues", "common problems", "known issues", "faq", "if you encounter", "error message")
)

// PresenceStats describes examples, steps, code and references in a document.
type PresenceStats struct {
	ExampleMentions int
	StepMarkers     int
	OrderedLists    int
	CodeBlocks      int
	Images          int
	Links           int

	// CodeBlocksWithLanguage counts code blocks with a known language.
	CodeBlocksWithLanguage int

	// CommentedCodeBlocks counts code blocks containing a line, block or
	// markup comment.
	CommentedCodeBlocks int

	PrerequisiteMentions    int
	TroubleshootingMentions int

	HasExamples bool
	HasSteps    bool
	HasCode     bool

	HasCodeComments bool
}

// Presence detects examples, step-by-step instructions and code in doc.
// Steps are present when the document has an ordered list or at least
// MinStepMarkers step markers ("Step 1", "1.", "First,").
func Presence(doc *model.Document) PresenceStats {
	stats := PresenceStats{
		OrderedLists: doc.OrderedListCount(),
		CodeBlocks:   len(doc.CodeBlocks),
		Images:       len(doc.Images),
		Links:        len(doc.Links),
	}

	for _, cb := range doc.CodeBlocks {
		if cb.Language != nil {
			stats.CodeBlocksWithLanguage++
		}
		if codeComment.MatchString(cb.Content) {
			stats.CommentedCodeBlocks++
		}
	}

	stats.ExampleMentions = examplePhrases.Count(doc.FullText)
	stats.PrerequisiteMentions = prerequisitePhrases.Count(doc.FullText)
	stats.TroubleshootingMentions = troubleshootingPhrases.Count(doc.FullText)

	stats.StepMarkers = len(stepNumber.FindAllStringIndex(doc.FullText, -1))
	for _, p := range doc.Paragraphs {
		if numberedStart.MatchString(p) || sequenceStart.MatchString(p) {
			stats.StepMarkers++
		}
	}
	for _, l := range doc.Lists {
		if l.Ordered {
			continue
		}
		for _, item := range l.Items {
			if numberedStart.MatchString(item) || sequenceStart.MatchString(item) {
				stats.StepMarkers++
			}
		}
	}

	stats.HasExamples = stats.ExampleMentions > 0 || stats.CodeBlocks > 0
	stats.HasSteps = stats.OrderedLists > 0 || stats.StepMarkers >= MinStepMarkers
	stats.HasCode = stats.CodeBlocks > 0
	stats.HasCodeComments = stats.CommentedCodeBlocks > 0
	return stats
}
