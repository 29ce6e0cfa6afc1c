package ai

import (
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/nao1215/docscore/internal/model"
)

// responseFormat is appended to every default prompt.
const responseFormat = `
Answer in exactly this format and nothing else:
SEVERITY: low|medium|high
TERMS: term one; term two
NOTES:
- first note
- second note

Use at most five notes. Leave TERMS empty when nothing needs to be flagged.`

// defaultPrompts are the prompt templates per criterion. Templates
// receive PromptData.
var defaultPrompts = map[model.Criterion]string{
	model.CriterionReadability: `You are reviewing technical documentation for readability by non-expert users.
Identify jargon that is not explained, sentences that are hard to follow, and words a simpler word could replace.

Excerpt:
{{.Excerpt}}
` + responseFormat,

	model.CriterionStructure: `You are reviewing the organization of technical documentation.
The excerpt starts with the heading outline. Judge whether the order of sections is logical, whether headings describe their content, and whether information is easy to scan.

Excerpt:
{{.Excerpt}}
` + responseFormat,

	model.CriterionCompleteness: `You are reviewing technical documentation for completeness.
Judge whether a reader can finish the described task: missing prerequisites, missing steps, missing examples, and unanswered questions. Put missing topics in TERMS.

Excerpt:
{{.Excerpt}}
` + responseFormat,

	model.CriterionStyle: `You are reviewing technical documentation against a style guide that asks for a clear, concise, customer-focused voice.
Judge tone, directness, consistent terminology and use of active voice. Put inconsistent or unclear terms in TERMS.

Excerpt:
{{.Excerpt}}
` + responseFormat,
}

// PromptData is the data passed to prompt templates.
type PromptData struct {
	// Criterion is the display name of the criterion, such as "Style".
	Criterion string

	// Excerpt is the truncated document excerpt.
	Excerpt string
}

// parsePrompts compiles the default templates overlaid with overrides,
// which are keyed by criterion identifier.
func parsePrompts(overrides map[string]string) (map[model.Criterion]*template.Template, error) {
	prompts := make(map[model.Criterion]*template.Template, len(model.Criteria))
	for _, c := range model.Criteria {
		text := defaultPrompts[c]
		if override, ok := overrides[c.String()]; ok && strings.TrimSpace(override) != "" {
			text = override
		}
		tmpl, err := template.New(c.String()).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("invalid prompt template for %s: %w", c, err)
		}
		prompts[c] = tmpl
	}
	return prompts, nil
}

// BuildExcerpt returns the text sent for review. The structure criterion
// gets the heading outline before the text; the others get the text
// alone. The result is at most budget characters.
func BuildExcerpt(doc *model.Document, criterion model.Criterion, budget int) string {
	if criterion != model.CriterionStructure || len(doc.Headings) == 0 {
		return Truncate(doc.FullText, budget)
	}

	var sb strings.Builder
	sb.WriteString("Outline:\n")
	for _, h := range doc.Headings {
		sb.WriteString(strings.Repeat("  ", max(h.Level-1, 0)))
		fmt.Fprintf(&sb, "H%d: %s\n", h.Level, h.Text)
	}
	sb.WriteString("\nText:\n")
	sb.WriteString(doc.FullText)
	return Truncate(sb.String(), budget)
}

// Truncate shortens s to at most limit runes without splitting a rune.
// A limit of 0 or less returns s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
