package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/text-mining/internal/config"
	"github.com/jonathan/text-mining/internal/fetch"
)

// commandFlags are the per-command flags that map onto config fields. Each
// command binds only the ones it exposes.
type commandFlags struct {
	url        string
	destDir    string
	file       string
	startDelim string
	endDelim   string
	top        int
	format     string
	timeout    int
	verbose    bool
}

func (f *commandFlags) bindSource(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.url, "url", "u", "", "URL of the document to download (default: Frankenstein on Project Gutenberg)")
	cmd.Flags().StringVarP(&f.destDir, "dest", "d", "", "Directory the document is downloaded to (default: OS temp dir)")
	cmd.Flags().IntVar(&f.timeout, "timeout", 0, "Download timeout in seconds (default 60)")
}

func (f *commandFlags) bindAnalysis(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.startDelim, "start", "s", "", "Start delimiter regex (escape metacharacters meant literally)")
	cmd.Flags().StringVarP(&f.endDelim, "end", "e", "", "End delimiter regex (escape metacharacters meant literally)")
	cmd.Flags().IntVarP(&f.top, "top", "n", 0, "Number of most common words and phrases to print (default 3)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: text or json")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print document details and debug logs")
}

// loadConfig builds the effective configuration: the config file, then
// TEXTMINE_* environment variables, then explicitly set flags, with defaults
// for whatever is still empty.
func (o *rootOptions) loadConfig(cmd *cobra.Command, flags *commandFlags) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg.ApplyEnv()

	if flags != nil {
		applyFlags(cmd, flags, &cfg)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// applyFlags copies only the flags that were explicitly set.
func applyFlags(cmd *cobra.Command, flags *commandFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("url") {
		cfg.URL = flags.url
		cfg.File = ""
	}
	if changed("dest") {
		cfg.DestDir = flags.destDir
	}
	if changed("file") {
		cfg.File = flags.file
		cfg.URL = ""
	}
	if changed("start") {
		cfg.StartDelim = flags.startDelim
	}
	if changed("end") {
		cfg.EndDelim = flags.endDelim
	}
	if changed("top") {
		cfg.Top = flags.top
	}
	if changed("format") {
		cfg.Format = flags.format
	}
	if changed("timeout") {
		cfg.TimeoutSeconds = flags.timeout
	}
	if changed("verbose") {
		cfg.Verbose = flags.verbose
	}
}

// fetchOptions converts the retrieval settings of cfg.
func fetchOptions(cfg config.Config) *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Timeout = cfg.Timeout()
	if cfg.UserAgent != "" {
		opts.UserAgent = cfg.UserAgent
	}
	return opts
}
