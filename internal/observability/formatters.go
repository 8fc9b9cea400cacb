// Package observability provides formatted output and logging for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/text-mining/internal/frequency"
	"github.com/jonathan/text-mining/internal/ingestion"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// countWidth is the column reserved for counts in ranked lists
	countWidth = 8
)

// Printer handles formatted output of pipeline results
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// rankedLine renders "#1  label ....... count" fitted to the box.
func rankedLine(rank int, label string, count int) string {
	prefix := fmt.Sprintf("#%-3d", rank)
	labelWidth := boxWidth - 4 - len(prefix) - countWidth
	return fmt.Sprintf("%s%-*s%*d", prefix, labelWidth, truncate(label, labelWidth), countWidth, count)
}

// PrintTopWords outputs the most common words with their counts.
func (p *Printer) PrintTopWords(words []frequency.WordCount) {
	var sb strings.Builder
	if len(words) == 0 {
		sb.WriteString("(no words)")
	}
	for i, wc := range words {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(rankedLine(i+1, wc.Word, wc.Count))
	}
	p.printBox(fmt.Sprintf("MOST COMMON WORDS (top %d)", len(words)), sb.String())
}

// PrintTopPhrases outputs the most common 3-word phrases with their counts.
func (p *Printer) PrintTopPhrases(phrases []frequency.PhraseCount) {
	var sb strings.Builder
	if len(phrases) == 0 {
		sb.WriteString("(no phrases)")
	}
	for i, pc := range phrases {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(rankedLine(i+1, pc.Phrase.String(), pc.Count))
	}
	p.printBox(fmt.Sprintf("MOST COMMON PHRASES (top %d)", len(phrases)), sb.String())
}

// PrintDocument outputs where the document came from and how much of it was counted.
func (p *Printer) PrintDocument(doc *ingestion.Metadata, tokens, distinctWords, distinctPhrases int) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	if doc.URL != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", doc.URL))
	}
	sb.WriteString(fmt.Sprintf("Path:     %s\n", doc.Path))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes\n", doc.Bytes))
	sb.WriteString(fmt.Sprintf("SHA256:   %s\n", doc.Hash))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Tokens:   %d\n", tokens))
	sb.WriteString(fmt.Sprintf("Words:    %d distinct\n", distinctWords))
	sb.WriteString(fmt.Sprintf("Phrases:  %d distinct", distinctPhrases))

	p.printBox("DOCUMENT", sb.String())
}
