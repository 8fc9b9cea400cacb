// Package frequency counts word and phrase occurrences over a token sequence.
package frequency

import "strings"

// PhraseLen is the number of consecutive words in a Phrase.
const PhraseLen = 3

// Phrase is an ordered triple of consecutive words.
type Phrase [PhraseLen]string

// String joins the phrase words with single spaces.
func (p Phrase) String() string {
	return strings.Join(p[:], " ")
}

// CountWords returns the number of occurrences of each distinct token.
func CountWords(tokens []string) map[string]int {
	counts := make(map[string]int)
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}

// CountPhrases slides a window of PhraseLen words over tokens with stride 1
// and counts each distinct window. Fewer than PhraseLen tokens yields an empty
// map.
func CountPhrases(tokens []string) map[Phrase]int {
	counts := make(map[Phrase]int)
	for i := 0; i+PhraseLen <= len(tokens); i++ {
		counts[Phrase{tokens[i], tokens[i+1], tokens[i+2]}]++
	}
	return counts
}
