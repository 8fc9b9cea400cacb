// Package tokenize splits extracted text into lowercase word tokens.
package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words returns the maximal runs of word characters in text, lower-cased, in
// the order they appear. Letters, numbers and underscore are word characters
// in any script; everything else separates words and is dropped.
//
// Lowercasing follows the full Unicode mapping, so a word-final capital sigma
// becomes ς and İ becomes "i̇".
func Words(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})

	// A Caser keeps state and is not safe for concurrent use.
	lower := cases.Lower(language.Und)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		words = append(words, lower.String(field))
	}
	return words
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
