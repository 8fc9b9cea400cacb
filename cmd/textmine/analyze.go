package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/text-mining/internal/config"
	"github.com/jonathan/text-mining/internal/observability"
	"github.com/jonathan/text-mining/internal/pipeline"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	flags := &commandFlags{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Download a document and print its most common words and phrases",
		Long: `Downloads the document at --url into --dest, extracts the text between the
--start and --end delimiter regexes, and prints the --top most common words and
3-word phrases.

The delimiters must bound exactly one region of the document. Configuration can be
loaded from a file using --config; command-line flags override its values.`,
		Example: `  textmine analyze
  textmine analyze --url https://www.gutenberg.org/files/1342/1342-0.txt \
    --start '\*\*\* START OF THE PROJECT GUTENBERG EBOOK PRIDE AND PREJUDICE \*\*\*' \
    --end '\*\*\* END OF THE PROJECT GUTENBERG EBOOK PRIDE AND PREJUDICE \*\*\*' --top 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := root.prepare(cmd, flags); err != nil {
				return err
			}
			return runAnalyze(cmd, root.cfg)
		},
	}

	flags.bindSource(cmd)
	flags.bindAnalysis(cmd)

	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg config.Config) error {
	p := newPipeline(cfg)

	var (
		result *pipeline.Result
		err    error
	)
	if cfg.File != "" {
		result, err = p.RunFile(cmd.Context(), cfg.File, cfg.StartDelim, cfg.EndDelim)
	} else {
		result, err = p.Run(cmd.Context(), pipeline.Options{
			URL:          cfg.URL,
			DestDir:      cfg.DestDir,
			StartPattern: cfg.StartDelim,
			EndPattern:   cfg.EndDelim,
		})
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return render(cmd.OutOrStdout(), cfg, result)
}

// newPipeline wires the default collaborators and, in verbose mode, logs
// each stage as it starts.
func newPipeline(cfg config.Config) *pipeline.Pipeline {
	p := pipeline.New(fetchOptions(cfg))
	if cfg.Verbose {
		log := observability.WithComponent("cli")
		p.OnProgress = func(event pipeline.ProgressEvent) {
			log.Info(event.Message, slog.String("step", event.Step), slog.String("run_id", event.RunID))
		}
	}
	return p
}
