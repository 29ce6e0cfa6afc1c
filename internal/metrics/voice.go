package metrics

import (
	"regexp"
	"strings"
)

// passiveAuxiliary matches a form of "to be" (or "to get") followed by an
// optional adverb and a candidate participle.
var passiveAuxiliary = regexp.MustCompile(`(?i)\b(?:am|is|are|was|were|be|been|being|get|gets|got|gotten)\s+(?:[a-z]+ly\s+)?([a-z]+)\b`)

// irregularParticiples are past participles that do not end in -ed.
var irregularParticiples = map[string]bool{
	"written": true, "taken": true, "given": true, "shown": true, "seen": true,
	"done": true, "made": true, "sent": true, "built": true, "found": true,
	"known": true, "chosen": true, "driven": true, "hidden": true, "broken": true,
	"forgotten": true, "kept": true, "held": true, "left": true, "lost": true,
	"paid": true, "said": true, "sold": true, "told": true, "brought": true,
	"bought": true, "caught": true, "taught": true, "thought": true, "run": true,
	"understood": true, "begun": true, "drawn": true, "eaten": true, "fed": true,
	"frozen": true, "spoken": true, "stolen": true, "thrown": true, "worn": true,
	"read": true, "set": true, "put": true, "cut": true, "shut": true, "split": true,
}

// notParticiples end in -ed but are not participles.
var notParticiples = map[string]bool{
	"need": true, "speed": true, "feed": true, "seed": true, "indeed": true,
	"bed": true, "red": true, "shed": true,
}

// DefaultImperatives are verbs that start direct instructions.
var DefaultImperatives = []string{
	"add", "apply", "attach", "avoid", "build", "call", "change", "check",
	"choose", "click", "clone", "close", "configure", "connect", "copy",
	"create", "define", "delete", "deploy", "disable", "download", "drag",
	"edit", "enable", "ensure", "enter", "execute", "find", "follow",
	"generate", "go", "import", "include", "initialize", "insert", "install",
	"keep", "launch", "learn", "list", "load", "log", "make", "move",
	"navigate", "note", "open", "paste", "press", "provide", "read",
	"refer", "register", "remove", "replace", "restart", "review", "run",
	"save", "scroll", "see", "select", "set", "sign", "specify", "start",
	"stop", "submit", "tap", "test", "try", "type", "update", "upload",
	"use", "verify", "view", "visit", "wait", "write",
}

var listMarker = regexp.MustCompile(`^(?:\d+[.)]|[-*•])\s+`)

// VoiceStats describes passive voice and direct instruction usage.
type VoiceStats struct {
	Sentences  int
	Passive    int
	Imperative int

	// PassiveRatio is Passive / Sentences.
	PassiveRatio float64

	// ActionRatio is Imperative / Sentences.
	ActionRatio float64

	// PassiveExamples holds up to three passive sentences.
	PassiveExamples []string
}

// Voice measures passive and imperative sentences. imperatives may be nil
// to use DefaultImperatives.
func Voice(sentences []string, imperatives []string) VoiceStats {
	if imperatives == nil {
		imperatives = DefaultImperatives
	}
	verbs := make(map[string]bool, len(imperatives))
	for _, v := range imperatives {
		verbs[v] = true
	}

	stats := VoiceStats{Sentences: len(sentences), PassiveExamples: make([]string, 0, 3)}
	for _, s := range sentences {
		if IsPassive(s) {
			stats.Passive++
			if len(stats.PassiveExamples) < 3 {
				stats.PassiveExamples = append(stats.PassiveExamples, s)
			}
		}
		if verbs[leadingVerb(s)] {
			stats.Imperative++
		}
	}
	stats.PassiveRatio = ratio(float64(stats.Passive), float64(stats.Sentences))
	stats.ActionRatio = ratio(float64(stats.Imperative), float64(stats.Sentences))
	return stats
}

// IsPassive reports whether a sentence contains a passive construction.
func IsPassive(sentence string) bool {
	for _, m := range passiveAuxiliary.FindAllStringSubmatch(sentence, -1) {
		word := strings.ToLower(m[1])
		if notParticiples[word] {
			continue
		}
		if irregularParticiples[word] || (len(word) >= 4 && strings.HasSuffix(word, "ed")) {
			return true
		}
	}
	return false
}

// leadingVerb returns the lowercased word that starts the instruction in a
// sentence. List markers, "Please" and a leading "To ..., " purpose clause
// are skipped.
func leadingVerb(sentence string) string {
	s := strings.TrimSpace(listMarker.ReplaceAllString(strings.TrimSpace(sentence), ""))
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "to ") {
		if i := strings.Index(s, ","); i > 0 {
			s = s[i+1:]
		}
	}
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	first := strings.ToLower(words[0])
	if first == "please" && len(words) > 1 {
		first = strings.ToLower(words[1])
	}
	return first
}
