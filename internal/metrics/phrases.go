package metrics

import (
	"regexp"
	"sort"
	"strings"
)

// PhraseSet counts case-insensitive, word-bounded occurrences of phrases.
type PhraseSet struct {
	re *regexp.Regexp
}

// NewPhraseSet compiles phrases into a single matcher. Longer phrases are
// preferred when two phrases overlap at the same position.
func NewPhraseSet(phrases ...string) *PhraseSet {
	quoted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(p)))
	}
	if len(quoted) == 0 {
		return &PhraseSet{}
	}
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return &PhraseSet{re: regexp.MustCompile(`(?i)(?:^|[^\pL\pN])(` + strings.Join(quoted, "|") + `)(?:[^\pL\pN]|$)`)}
}

// Count returns the number of non-overlapping phrase occurrences in text.
func (p *PhraseSet) Count(text string) int {
	if p.re == nil || text == "" {
		return 0
	}
	count := 0
	for i := 0; i < len(text); {
		loc := p.re.FindStringSubmatchIndex(text[i:])
		if loc == nil {
			break
		}
		count++
		// Resume right after the phrase so a shared delimiter can start
		// the next match.
		i += loc[3]
	}
	return count
}

// Contains reports whether any phrase occurs in text.
func (p *PhraseSet) Contains(text string) bool {
	return p.re != nil && p.re.MatchString(text)
}

