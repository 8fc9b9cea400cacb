// Package pipeline composes retrieval, extraction, tokenization and counting
// into a single run over one document.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/text-mining/internal/extract"
	"github.com/jonathan/text-mining/internal/fetch"
	"github.com/jonathan/text-mining/internal/frequency"
	"github.com/jonathan/text-mining/internal/ingestion"
	"github.com/jonathan/text-mining/internal/observability"
	"github.com/jonathan/text-mining/internal/tokenize"
)

// ErrInvalidOptions is returned when Options fail validation.
var ErrInvalidOptions = errors.New("invalid pipeline options")

// Retriever fetches a document into a local directory and returns its path.
type Retriever interface {
	Download(ctx context.Context, url, destDir string) (string, error)
}

// Reader loads a stored document as text.
type Reader interface {
	ReadDocument(path string) (string, error)
}

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step names reported through ProgressEvent.
const (
	StepDownload = "download"
	StepRead     = "read"
	StepExtract  = "extract"
	StepTokenize = "tokenize"
	StepCount    = "count"
)

// Options holds the inputs of a run.
type Options struct {
	URL          string `validate:"required,url"`
	DestDir      string `validate:"required"`
	StartPattern string `validate:"required"`
	EndPattern   string `validate:"required"`
}

// Counts holds the frequency maps computed from one token sequence.
type Counts struct {
	Tokens  int
	Words   map[string]int
	Phrases map[frequency.Phrase]int
}

// Result is the outcome of a successful run.
type Result struct {
	RunID    uuid.UUID
	Document *ingestion.Metadata
	Counts
}

// Pipeline runs documents through extraction and counting. It holds no
// per-run state and may be reused.
type Pipeline struct {
	Retriever  Retriever
	Reader     Reader
	OnProgress ProgressCallback
	Logger     *slog.Logger
}

// New returns a Pipeline that downloads over HTTP with opts and reads from
// the local filesystem.
func New(opts *fetch.Options) *Pipeline {
	return &Pipeline{
		Retriever: fetch.NewDownloader(opts),
		Reader:    ingestion.FileReader{},
	}
}

// Run downloads and analyzes a document with the default collaborators.
func Run(ctx context.Context, opts Options) (*Result, error) {
	return New(nil).Run(ctx, opts)
}

var validate = validator.New()

// Run downloads opts.URL into opts.DestDir, reads it and counts the words and
// phrases between the delimiters. The first failing stage's error is returned
// as is and no partial result is produced.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	runID := uuid.New()
	log := p.logger().With("run_id", runID.String())

	p.emit(runID, StepDownload, fmt.Sprintf("Downloading %s...", opts.URL))
	path, err := p.Retriever.Download(ctx, opts.URL, opts.DestDir)
	if err != nil {
		return nil, err
	}
	log.Debug("document downloaded", "url", opts.URL, "path", path)

	return p.analyzeFile(ctx, runID, log, opts.URL, path, opts.StartPattern, opts.EndPattern)
}

// RunFile analyzes a document already stored at path, skipping retrieval.
func (p *Pipeline) RunFile(ctx context.Context, path, startPattern, endPattern string) (*Result, error) {
	if path == "" || startPattern == "" || endPattern == "" {
		return nil, fmt.Errorf("%w: path and both delimiter patterns are required", ErrInvalidOptions)
	}

	runID := uuid.New()
	log := p.logger().With("run_id", runID.String())
	return p.analyzeFile(ctx, runID, log, "", path, startPattern, endPattern)
}

func (p *Pipeline) analyzeFile(ctx context.Context, runID uuid.UUID, log *slog.Logger, url, path, startPattern, endPattern string) (*Result, error) {
	p.emit(runID, StepRead, fmt.Sprintf("Reading %s...", path))
	content, err := p.Reader.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	log.Debug("document read", "path", path, "bytes", len(content))

	p.emit(runID, StepExtract, "Extracting delimited text...")
	text, err := extract.Between(content, startPattern, endPattern)
	if err != nil {
		return nil, err
	}
	log.Debug("region extracted", "chars", len(text))

	p.emit(runID, StepTokenize, "Tokenizing...")
	tokens := tokenize.Words(text)
	log.Debug("text tokenized", "tokens", len(tokens))

	p.emit(runID, StepCount, "Counting words and phrases...")
	counts, err := countTokens(ctx, tokens)
	if err != nil {
		return nil, err
	}
	log.Debug("frequencies counted", "distinct_words", len(counts.Words), "distinct_phrases", len(counts.Phrases))

	return &Result{
		RunID:    runID,
		Document: ingestion.NewMetadata(content, url, path),
		Counts:   *counts,
	}, nil
}

// Analyze extracts the region between the delimiters of an in-memory
// document and counts its words and phrases.
func Analyze(ctx context.Context, document, startPattern, endPattern string) (*Counts, error) {
	text, err := extract.Between(document, startPattern, endPattern)
	if err != nil {
		return nil, err
	}
	return countTokens(ctx, tokenize.Words(text))
}

// countTokens computes both frequency maps concurrently; each goroutine only
// reads tokens and owns the map it builds.
func countTokens(ctx context.Context, tokens []string) (*Counts, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var words map[string]int
	var phrases map[frequency.Phrase]int

	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		words = frequency.CountWords(tokens)
		return nil
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		phrases = frequency.CountPhrases(tokens)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("counting failed: %w", err)
	}

	return &Counts{
		Tokens:  len(tokens),
		Words:   words,
		Phrases: phrases,
	}, nil
}

func (p *Pipeline) emit(runID uuid.UUID, step, message string) {
	if p.OnProgress != nil {
		p.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID.String(),
		})
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return observability.WithComponent("pipeline")
}
