package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newCountCmd(root *rootOptions) *cobra.Command {
	flags := &commandFlags{}

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the most common words and phrases of a local document",
		Long:  "Like analyze, but reads an already stored document from --file instead of downloading it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := root.prepare(cmd, flags); err != nil {
				return err
			}
			cfg := root.cfg
			if cfg.File == "" {
				return errors.New("--file must be provided")
			}

			result, err := newPipeline(cfg).RunFile(cmd.Context(), cfg.File, cfg.StartDelim, cfg.EndDelim)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			return render(cmd.OutOrStdout(), cfg, result)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "i", "", "Path to the stored document")
	flags.bindAnalysis(cmd)

	return cmd
}
