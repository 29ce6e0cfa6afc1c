package metrics

import "strings"

var (
	fillerWords = NewPhraseSet(
		"very", "really", "quite", "just", "basically", "actually", "simply",
		"obviously", "clearly", "literally", "somewhat", "fairly", "of course",
	)
	secondPerson = NewPhraseSet("you", "your", "yours", "you'll", "you're", "you've")
	firstPlural  = NewPhraseSet("we", "our", "ours", "we'll", "we're", "we've", "us")
)

// terminologyVariants groups spellings of the same term. Using more than
// one spelling in a document is an inconsistency.
var terminologyVariants = [][]string{
	{"email", "e-mail"},
	{"website", "web site"},
	{"setup", "set-up"},
	{"login", "log-in"},
	{"backend", "back-end"},
	{"frontend", "front-end"},
	{"filename", "file name"},
	{"online", "on-line"},
}

// variantMatchers holds one compiled PhraseSet per entry of terminologyVariants.
var variantMatchers = func() [][]*PhraseSet {
	out := make([][]*PhraseSet, len(terminologyVariants))
	for i, group := range terminologyVariants {
		out[i] = make([]*PhraseSet, len(group))
		for j, variant := range group {
			out[i][j] = NewPhraseSet(variant)
		}
	}
	return out
}()

// ToneStats describes filler words, reader focus and terminology.
type ToneStats struct {
	Words int

	FillerCount int

	// FillerDensity is FillerCount / Words.
	FillerDensity float64

	SecondPerson      int
	FirstPersonPlural int

	// UserFocus is SecondPerson / (SecondPerson + FirstPersonPlural), or 0
	// when neither is used.
	UserFocus float64

	// InconsistentTerms lists variant groups used with more than one
	// spelling, formatted as "email / e-mail".
	InconsistentTerms []string
}

// Tone computes filler density, reader focus and terminology consistency.
func Tone(text string) ToneStats {
	stats := ToneStats{
		Words:             len(Words(text)),
		FillerCount:       fillerWords.Count(text),
		SecondPerson:      secondPerson.Count(text),
		FirstPersonPlural: firstPlural.Count(text),
		InconsistentTerms: make([]string, 0),
	}
	stats.FillerDensity = ratio(float64(stats.FillerCount), float64(stats.Words))
	stats.UserFocus = ratio(float64(stats.SecondPerson), float64(stats.SecondPerson+stats.FirstPersonPlural))

	for i, group := range terminologyVariants {
		used := make([]string, 0, len(group))
		for j, variant := range group {
			if variantMatchers[i][j].Contains(text) {
				used = append(used, variant)
			}
		}
		if len(used) > 1 {
			stats.InconsistentTerms = append(stats.InconsistentTerms, strings.Join(used, " / "))
		}
	}
	return stats
}
