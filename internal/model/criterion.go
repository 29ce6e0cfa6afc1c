package model

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Criterion identifies one of the four scoring dimensions.
type Criterion int

const (
	// CriterionReadability scores how easy the text is to read.
	CriterionReadability Criterion = iota

	// CriterionStructure scores heading hierarchy and paragraph layout.
	CriterionStructure

	// CriterionCompleteness scores examples, steps, code and references.
	CriterionCompleteness

	// CriterionStyle scores voice, tone and consistency.
	CriterionStyle
)

// Criteria lists every criterion in canonical order.
// Reports, summaries and tie-breaking all follow this order.
var Criteria = []Criterion{
	CriterionReadability,
	CriterionStructure,
	CriterionCompleteness,
	CriterionStyle,
}

// String returns the lowercase identifier used in JSON and configuration.
func (c Criterion) String() string {
	switch c {
	case CriterionReadability:
		return "readability"
	case CriterionStructure:
		return "structure"
	case CriterionCompleteness:
		return "completeness"
	case CriterionStyle:
		return "style"
	default:
		return "unknown"
	}
}

// DisplayName returns the title-cased name for human readable output.
func (c Criterion) DisplayName() string {
	return cases.Title(language.English).String(c.String())
}

// ParseCriterion returns the criterion for an identifier such as "style".
func ParseCriterion(s string) (Criterion, bool) {
	for _, c := range Criteria {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}
