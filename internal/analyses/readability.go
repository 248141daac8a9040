package analyses

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"resume-quality/internal/rules"
)

var (
	sentenceBreak = regexp.MustCompile(`[.!?\n]+`)
	readableWord  = regexp.MustCompile(`[A-Za-z]+(?:['’][A-Za-z]+)*`)
)

// Readability returns the Flesch reading ease of text clamped to [0,100].
// Lines without terminal punctuation count as sentences. Empty text is neutral.
func Readability(text string) int {
	var sentences, words, syllables int
	for _, chunk := range sentenceBreak.Split(text, -1) {
		found := readableWord.FindAllString(chunk, -1)
		if len(found) == 0 {
			continue
		}
		sentences++
		words += len(found)
		for _, w := range found {
			syllables += countSyllables(w)
		}
	}
	if words == 0 {
		return rules.NeutralScore
	}
	ease := 206.835 - 1.015*(float64(words)/float64(sentences)) - 84.6*(float64(syllables)/float64(words))
	return clamp(int(math.Round(ease)))
}

// countSyllables approximates syllables as vowel groups, discounting a silent final e.
func countSyllables(word string) int {
	w := strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	if count == 0 {
		return 1
	}
	return count
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
