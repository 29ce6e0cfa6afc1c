package metrics

import (
	"regexp"
	"strings"
	"unicode"
)

// abbreviations are tokens whose trailing period does not end a sentence.
var abbreviations = map[string]bool{
	"e.g": true, "i.e": true, "etc": true, "vs": true, "cf": true,
	"mr": true, "mrs": true, "ms": true, "dr": true, "approx": true,
	"fig": true,
}

// stepLabel matches a sentence prefix that is only a step label, such as
// "Step 1" or a bare leading "2".
var stepLabel = regexp.MustCompile(`(?i)^(?:step\s+)?\d{1,3}$`)

// Sentences splits text on runs of '.', '!' and '?' that are followed by
// whitespace or the end of the text. Trailing text without terminal
// punctuation forms a final sentence. Fragments without any letter or
// digit are dropped.
func Sentences(text string) []string {
	runes := []rune(text)
	sentences := make([]string, 0, len(runes)/80+1)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		end := i
		for end+1 < len(runes) && isTerminal(runes[end+1]) {
			end++
		}
		atEnd := end+1 == len(runes)
		if !atEnd && !unicode.IsSpace(runes[end+1]) {
			i = end
			continue
		}
		if !atEnd && runes[i] == '.' && end == i && !endsSentence(runes, start, i) {
			i = end
			continue
		}
		if s := strings.TrimSpace(string(runes[start : end+1])); hasAlphanumeric(s) {
			sentences = append(sentences, s)
		}
		start = end + 1
		i = end
	}

	if tail := strings.TrimSpace(string(runes[start:])); hasAlphanumeric(tail) {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// endsSentence reports whether the period at runes[dot] closes the
// sentence that began at start. Abbreviations, "No." before a number and
// step labels such as "Step 1." do not.
func endsSentence(runes []rune, start, dot int) bool {
	prefix := runes[start:dot]
	if isAbbreviation(prefix) || stepLabel.MatchString(strings.TrimSpace(string(prefix))) {
		return false
	}
	if lastToken(prefix) == "no" {
		next := dot + 1
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next < len(runes) && unicode.IsDigit(runes[next]) {
			return false
		}
	}
	return true
}

// isAbbreviation reports whether the last token of prefix is a known
// abbreviation, ignoring leading punctuation such as '('.
func isAbbreviation(prefix []rune) bool {
	return abbreviations[lastToken(prefix)]
}

// lastToken returns the lower-cased last whitespace-delimited token of
// prefix without leading non-letters.
func lastToken(prefix []rune) string {
	i := len(prefix)
	for i > 0 && !unicode.IsSpace(prefix[i-1]) {
		i--
	}
	return strings.ToLower(strings.TrimLeftFunc(string(prefix[i:]), func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
}

func hasAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Words returns the whitespace-delimited tokens of text with surrounding
// punctuation trimmed. Tokens without a letter or digit are dropped.
func Words(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := trimToken(f)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// trimToken removes leading and trailing characters that are neither
// letters nor digits.
func trimToken(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Syllables estimates the syllable count of a word by counting vowel
// groups (a, e, i, o, u, y) and discounting a silent trailing 'e'.
// Words with letters or digits count at least one syllable.
func Syllables(word string) int {
	w := strings.ToLower(trimToken(word))
	if w == "" {
		return 0
	}

	count := 0
	prevVowel := false
	letters := 0
	for _, r := range w {
		if !unicode.IsLetter(r) {
			prevVowel = false
			continue
		}
		letters++
		vowel := isVowel(r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if letters > 2 && strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") &&
		!strings.HasSuffix(w, "ee") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	default:
		return false
	}
}

// ratio returns num/den, or 0 when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
