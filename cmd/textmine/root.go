package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/text-mining/internal/config"
	"github.com/jonathan/text-mining/internal/observability"
)

// rootOptions holds the persistent flags and the configuration resolved for
// the command being run.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "textmine",
		Short: "Word and phrase frequencies for delimited text documents",
		Long: `textmine downloads a plain-text document, extracts the region between two
delimiter regular expressions, and reports the most common words and 3-word phrases.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a JSON or YAML config file (flags override its values)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")

	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newCountCmd(opts))
	cmd.AddCommand(newDownloadCmd(opts))
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

// prepare resolves the configuration for cmd and installs the logger.
func (o *rootOptions) prepare(cmd *cobra.Command, flags *commandFlags) error {
	cfg, err := o.loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	o.cfg = cfg

	level := cfg.LogLevel
	if cfg.Verbose && !cmd.Flags().Changed("log-level") {
		level = "debug"
	}
	observability.SetupLogger(cmd.ErrOrStderr(), level, cfg.LogFormat)
	return nil
}
