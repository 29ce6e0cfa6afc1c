package model

import "encoding/json"

// ErrorKind classifies why a URL could not be analyzed.
type ErrorKind string

const (
	// ErrorKindNetwork means the page could not be fetched.
	ErrorKindNetwork ErrorKind = "NetworkError"

	// ErrorKindInsufficientContent means the page had too little text.
	ErrorKindInsufficientContent ErrorKind = "InsufficientContentError"

	// ErrorKindExtraction means no extraction strategy found enough content.
	ErrorKindExtraction ErrorKind = "ExtractionError"

	// ErrorKindAISupplement is logged by the AI client and never
	// reaches a Failure; it exists so logs and failures share one taxonomy.
	ErrorKindAISupplement ErrorKind = "AiSupplementError"

	// ErrorKindConfig means the configuration was rejected.
	ErrorKindConfig ErrorKind = "ConfigError"

	// ErrorKindCancelled means the URL was cancelled before it finished.
	ErrorKindCancelled ErrorKind = "Cancelled"

	// ErrorKindInternal covers errors that match no other kind.
	ErrorKindInternal ErrorKind = "InternalError"
)

// Failure records why a URL in a batch produced no result.
type Failure struct {
	URL       string    `json:"url"`
	ErrorKind ErrorKind `json:"error_kind"`
	Message   string    `json:"message"`

	// Stage is the pipeline step that failed (fetch, extract, score, aggregate).
	Stage string `json:"stage,omitempty"`

	// StatusCode is the last HTTP status for network failures.
	StatusCode int `json:"status_code,omitempty"`
}

// Outcome is a single batch entry. Exactly one of Result and Failure is set.
type Outcome struct {
	URL     string
	Result  *AnalysisResult
	Failure *Failure

	// Document is the extracted content when extraction succeeded. It is
	// not serialized with the outcome.
	Document *Document
}

// OK reports whether the outcome holds a result.
func (o Outcome) OK() bool {
	return o.Result != nil
}

// MarshalJSON writes the result or the failure record directly, so a
// batch serializes as a flat array of results and failure records.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Result != nil {
		return json.Marshal(o.Result)
	}
	if o.Failure != nil {
		return json.Marshal(o.Failure)
	}
	return json.Marshal(Failure{URL: o.URL, ErrorKind: ErrorKindInternal, Message: "no result"})
}
