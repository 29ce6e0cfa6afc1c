package pipeline

import "github.com/nao1215/docscore/internal/model"

// State carries the data produced by the steps for a single URL.
type State struct {
	// URL is the page being analyzed.
	URL string

	// HTML is the fetched page body.
	HTML []byte

	// Document is the extracted content.
	Document *model.Document

	// Results holds the criterion results in canonical order.
	Results []model.CriterionResult

	// Result is the final analysis.
	Result *model.AnalysisResult

	// PerformedSteps lists the steps that completed, in order.
	PerformedSteps []string
}

// NewState creates the state for url.
func NewState(url string) *State {
	return &State{
		URL:            url,
		PerformedSteps: make([]string, 0, 4),
	}
}
