package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/text-mining/internal/schemas"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the report written by --format json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), string(schemas.ReportSchema()))
			return err
		},
	}
}
