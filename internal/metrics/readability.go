package metrics

import (
	"math"
	"unicode"
)

// ComplexSyllables is the syllable count at which a word is complex.
const ComplexSyllables = 3

// Readability holds the counts and indices computed from a text.
type Readability struct {
	Sentences    int
	Words        int
	Syllables    int
	ComplexWords int
	Letters      int

	AvgSentenceLength   float64
	AvgSyllablesPerWord float64
	ComplexWordRatio    float64

	// FleschReadingEase is typically 0-100; higher is easier.
	FleschReadingEase float64

	// FleschKincaidGrade is a US school grade level.
	FleschKincaidGrade float64

	// GunningFog is the years of education needed on first reading.
	GunningFog float64

	ColemanLiau          float64
	AutomatedReadability float64
	SMOG                 float64
}

// ComputeReadability computes readability indices for text.
// All indices are 0 when the text has no sentences or no words.
func ComputeReadability(text string) Readability {
	r := Readability{}
	sentences := Sentences(text)
	words := Words(text)
	r.Sentences = len(sentences)
	r.Words = len(words)
	if r.Sentences == 0 || r.Words == 0 {
		return r
	}

	for _, w := range words {
		s := Syllables(w)
		r.Syllables += s
		if s >= ComplexSyllables {
			r.ComplexWords++
		}
		for _, c := range w {
			if unicode.IsLetter(c) || unicode.IsDigit(c) {
				r.Letters++
			}
		}
	}

	ws := float64(r.Words) / float64(r.Sentences)
	sw := float64(r.Syllables) / float64(r.Words)
	cw := float64(r.ComplexWords) / float64(r.Words)

	r.AvgSentenceLength = ws
	r.AvgSyllablesPerWord = sw
	r.ComplexWordRatio = cw

	r.FleschReadingEase = 206.835 - 1.015*ws - 84.6*sw
	r.FleschKincaidGrade = 0.39*ws + 11.8*sw - 15.59
	r.GunningFog = 0.4 * (ws + 100*cw)

	lettersPer100 := float64(r.Letters) / float64(r.Words) * 100
	sentencesPer100 := float64(r.Sentences) / float64(r.Words) * 100
	r.ColemanLiau = 0.0588*lettersPer100 - 0.296*sentencesPer100 - 15.8
	r.AutomatedReadability = 4.71*(float64(r.Letters)/float64(r.Words)) + 0.5*ws - 21.43
	r.SMOG = 1.0430*math.Sqrt(float64(r.ComplexWords)*(30/float64(r.Sentences))) + 3.1291

	return r
}
