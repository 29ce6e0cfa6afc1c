package metrics

// transitionPhrases signal how one idea leads to the next.
var transitionPhrases = NewPhraseSet(
	"first", "second", "third", "next", "then", "finally", "lastly",
	"however", "therefore", "furthermore", "moreover", "additionally",
	"in contrast", "on the other hand", "as a result", "consequently",
)

// Transitions returns the number of transition words and phrases in text.
func Transitions(text string) int {
	return transitionPhrases.Count(text)
}
