// Package extract locates the region of a document bounded by two delimiter
// patterns.
package extract

import (
	"regexp"
)

// regionGroup names the capture between the delimiters so that groups inside
// caller patterns do not shift its index.
const regionGroup = "textmine_region"

// Between returns the text strictly between startPattern and endPattern.
//
// Both patterns are regular expression fragments and are used as given, so
// callers must escape metacharacters they mean literally. The region is the
// shortest span after a start match that ends at an end match, and "." inside
// the patterns also matches newlines. The document must contain exactly one
// such region; otherwise a *BoundaryError is returned.
func Between(document, startPattern, endPattern string) (string, error) {
	re, err := compile(startPattern, endPattern)
	if err != nil {
		return "", err
	}

	matches := re.FindAllStringSubmatch(document, -1)
	if len(matches) != 1 {
		return "", &BoundaryError{
			StartPattern: startPattern,
			EndPattern:   endPattern,
			Matches:      len(matches),
		}
	}

	return matches[0][re.SubexpIndex(regionGroup)], nil
}

func compile(startPattern, endPattern string) (*regexp.Regexp, error) {
	expr := "(?s)" + startPattern + "(?P<" + regionGroup + ">.*?)" + endPattern
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: expr, Cause: err}
	}
	return re, nil
}
