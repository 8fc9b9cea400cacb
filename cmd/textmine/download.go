package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/text-mining/internal/fetch"
)

func newDownloadCmd(root *rootOptions) *cobra.Command {
	flags := &commandFlags{}

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a document without analyzing it",
		Long:  "Downloads --url into --dest, named after the last segment of the URL path, and prints the stored path.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := root.prepare(cmd, flags); err != nil {
				return err
			}
			cfg := root.cfg

			path, err := fetch.Download(cmd.Context(), cfg.URL, cfg.DestDir, fetchOptions(cfg))
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	flags.bindSource(cmd)

	return cmd
}
