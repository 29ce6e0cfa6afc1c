package ai

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nao1215/docscore/internal/model"
)

// maxNotes caps the number of notes kept from one response.
const maxNotes = 5

var bulletRegex = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s*`)

var codeFenceRegex = regexp.MustCompile("(?s)^\\s*```[A-Za-z]*\\s*(.+?)\\s*```\\s*$")

// stripMarkdownCodeBlock removes a code fence wrapping the whole text.
func stripMarkdownCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if matches := codeFenceRegex.FindStringSubmatch(s); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return s
}

// ParseFindings parses the tagged review format:
//
//	SEVERITY: low|medium|high
//	TERMS: term one; term two
//	NOTES:
//	- first note
//
// Field names are case-insensitive and SEVERITY is required.
func ParseFindings(text string) (*model.AIFindings, error) {
	findings := &model.AIFindings{
		Notes:        make([]string, 0),
		FlaggedTerms: make([]string, 0),
	}
	hasSeverity := false
	inNotes := false

	for _, line := range strings.Split(stripMarkdownCodeBlock(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if key, value, ok := splitField(line); ok {
			inNotes = false
			switch key {
			case "severity":
				sev, err := model.ParseSeverity(strings.Trim(value, "*_ ."))
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
				}
				findings.Severity = sev
				hasSeverity = true
			case "terms":
				findings.FlaggedTerms = splitTerms(value)
			case "notes":
				inNotes = true
				addNote(findings, value)
			}
			continue
		}

		if inNotes {
			addNote(findings, bulletRegex.ReplaceAllString(line, ""))
		}
	}

	if !hasSeverity {
		return nil, fmt.Errorf("%w: missing SEVERITY", ErrMalformedResponse)
	}
	return findings, nil
}

// splitField splits "KEY: value" for the known keys. Markdown emphasis
// around the key is ignored.
func splitField(line string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	k = strings.ToLower(strings.Trim(strings.TrimSpace(k), "*_#- "))
	switch k {
	case "severity", "terms", "notes":
		return k, strings.TrimSpace(strings.Trim(strings.TrimSpace(v), "*_")), true
	default:
		return "", "", false
	}
}

// splitTerms splits a ';' or ',' separated list, dropping placeholders.
func splitTerms(value string) []string {
	terms := make([]string, 0)
	for _, t := range strings.FieldsFunc(value, func(r rune) bool { return r == ';' || r == ',' }) {
		t = strings.Trim(strings.TrimSpace(t), "\"'`")
		switch strings.ToLower(t) {
		case "", "none", "n/a", "-":
			continue
		}
		terms = append(terms, t)
	}
	return terms
}

// addNote appends a non-empty note until maxNotes is reached.
func addNote(f *model.AIFindings, note string) {
	note = strings.TrimSpace(note)
	if note == "" || len(f.Notes) >= maxNotes {
		return
	}
	f.Notes = append(f.Notes, note)
}
