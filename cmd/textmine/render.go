package main

import (
	"fmt"
	"io"

	"github.com/jonathan/text-mining/internal/config"
	"github.com/jonathan/text-mining/internal/frequency"
	"github.com/jonathan/text-mining/internal/observability"
	"github.com/jonathan/text-mining/internal/pipeline"
	"github.com/jonathan/text-mining/internal/report"
)

// render writes result to w in the configured format.
func render(w io.Writer, cfg config.Config, result *pipeline.Result) error {
	if cfg.Format == "json" {
		data, err := report.New(result, cfg.Top).JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	printer := observability.NewPrinter(w)
	if cfg.Verbose {
		printer.PrintDocument(result.Document, result.Tokens, len(result.Words), len(result.Phrases))
	}
	printer.PrintTopWords(frequency.TopWords(result.Words, cfg.Top))
	printer.PrintTopPhrases(frequency.TopPhrases(result.Phrases, cfg.Top))
	return nil
}
