// Package report renders pipeline results as schema-checked JSON.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/text-mining/internal/frequency"
	"github.com/jonathan/text-mining/internal/ingestion"
	"github.com/jonathan/text-mining/internal/pipeline"
	"github.com/jonathan/text-mining/internal/schemas"
)

// Report summarizes one run for machine consumption.
type Report struct {
	RunID           string                  `json:"run_id"`
	Document        *ingestion.Metadata     `json:"document"`
	Tokens          int                     `json:"tokens"`
	DistinctWords   int                     `json:"distinct_words"`
	DistinctPhrases int                     `json:"distinct_phrases"`
	TopWords        []frequency.WordCount   `json:"top_words"`
	TopPhrases      []frequency.PhraseCount `json:"top_phrases"`
}

// New builds a Report holding the top most common words and phrases of
// result. top <= 0 keeps every entry.
func New(result *pipeline.Result, top int) *Report {
	return &Report{
		RunID:           result.RunID.String(),
		Document:        result.Document,
		Tokens:          result.Tokens,
		DistinctWords:   len(result.Words),
		DistinctPhrases: len(result.Phrases),
		TopWords:        frequency.TopWords(result.Words, top),
		TopPhrases:      frequency.TopPhrases(result.Phrases, top),
	}
}

// JSON marshals the report with indentation and checks it against the report
// schema.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := schemas.ValidateReport(data); err != nil {
		return nil, fmt.Errorf("report does not match schema: %w", err)
	}
	return data, nil
}
