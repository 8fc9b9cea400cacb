// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults reproduce the classic Frankenstein run.
const (
	DefaultURL            = "http://www.gutenberg.org/files/84/84-0.txt"
	DefaultStartDelim     = `\*\*\* START OF THE PROJECT GUTENBERG EBOOK FRANKENSTEIN \*\*\*`
	DefaultEndDelim       = `\*\*\* END OF THE PROJECT GUTENBERG EBOOK FRANKENSTEIN \*\*\*`
	DefaultTop            = 3
	DefaultTimeoutSeconds = 60
)

// Config represents the CLI configuration that can be loaded from a JSON or
// YAML file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Source. File replaces the download and is mutually exclusive with URL.
	URL     string `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	DestDir string `json:"dest_dir,omitempty" yaml:"dest_dir,omitempty"`
	File    string `json:"file,omitempty" yaml:"file,omitempty" validate:"excluded_with=URL"`

	// Delimiters are regular expression fragments, not literals.
	StartDelim string `json:"start_delim,omitempty" yaml:"start_delim,omitempty"`
	EndDelim   string `json:"end_delim,omitempty" yaml:"end_delim,omitempty"`

	// Output
	Top    int    `json:"top,omitempty" yaml:"top,omitempty" validate:"gte=0"`
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=text json"`

	// Retrieval
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"gte=0"`
	UserAgent      string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`

	// Diagnostics
	Verbose   bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=text json"`
}

// Defaults returns the configuration used when nothing else is provided.
func Defaults() Config {
	return Config{
		URL:            DefaultURL,
		DestDir:        os.TempDir(),
		StartDelim:     DefaultStartDelim,
		EndDelim:       DefaultEndDelim,
		Top:            DefaultTop,
		Format:         "text",
		TimeoutSeconds: DefaultTimeoutSeconds,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension (.yaml/.yml, anything else is JSON).
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from TEXTMINE_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TEXTMINE_URL"); v != "" {
		c.URL = v
	}
	if v := os.Getenv("TEXTMINE_DEST_DIR"); v != "" {
		c.DestDir = v
	}
	if v := os.Getenv("TEXTMINE_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("TEXTMINE_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("TEXTMINE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TEXTMINE_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their config file names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config error: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("'%s' %s", fe.Field(), describe(fe)))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "url":
		return "must be an absolute URL"
	case "gte":
		return "must be non-negative"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "excluded_with":
		return "and 'url' are mutually exclusive"
	default:
		return "failed '" + fe.Tag() + "' check"
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// A local file replaces the download entirely.
	if result.URL == "" && result.File == "" {
		result.URL = defaults.URL
	}
	if result.DestDir == "" {
		result.DestDir = defaults.DestDir
	}
	if result.StartDelim == "" {
		result.StartDelim = defaults.StartDelim
	}
	if result.EndDelim == "" {
		result.EndDelim = defaults.EndDelim
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.Top == 0 {
		result.Top = defaults.Top
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout returns the retrieval timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
