package frequency

import (
	"cmp"
	"slices"
)

// WordCount pairs a word with its count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// PhraseCount pairs a phrase with its count.
type PhraseCount struct {
	Phrase Phrase `json:"phrase"`
	Count  int    `json:"count"`
}

// TopWords returns the n most frequent words, highest count first. Equal
// counts are ordered by word. n <= 0 returns every entry.
func TopWords(counts map[string]int, n int) []WordCount {
	out := make([]WordCount, 0, len(counts))
	for word, c := range counts {
		out = append(out, WordCount{Word: word, Count: c})
	}
	slices.SortFunc(out, func(a, b WordCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return truncate(out, n)
}

// TopPhrases returns the n most frequent phrases, highest count first. Equal
// counts are ordered word by word. n <= 0 returns every entry.
func TopPhrases(counts map[Phrase]int, n int) []PhraseCount {
	out := make([]PhraseCount, 0, len(counts))
	for phrase, c := range counts {
		out = append(out, PhraseCount{Phrase: phrase, Count: c})
	}
	slices.SortFunc(out, func(a, b PhraseCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return slices.Compare(a.Phrase[:], b.Phrase[:])
	})
	return truncate(out, n)
}

func truncate[T any](s []T, n int) []T {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n]
}
