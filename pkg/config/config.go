package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/locfold/pkg/errors"
	"github.com/arthur-debert/locfold/pkg/locale"
	"github.com/arthur-debert/locfold/pkg/normalize"
)

// Config is the effective locfold configuration.
type Config struct {
	ResourceRoot string          `koanf:"resource_root" toml:"resource_root"`
	Locale       LocaleConfig    `koanf:"locale" toml:"locale"`
	Merge        MergeConfig     `koanf:"merge" toml:"merge"`
	Normalize    NormalizeConfig `koanf:"normalize" toml:"normalize"`
	Output       OutputConfig    `koanf:"output" toml:"output"`

	// Sources lists the configuration files that were loaded, in order.
	Sources []string `koanf:"-" toml:"-"`
}

// LocaleConfig describes the locale directory grammar.
type LocaleConfig struct {
	Prefix        string `koanf:"prefix" toml:"prefix"`
	RegionPattern string `koanf:"region_pattern" toml:"region_pattern"`
}

// MergeConfig holds the consolidation policy.
type MergeConfig struct {
	Exceptions []string `koanf:"exceptions" toml:"exceptions"`
}

// NormalizeConfig holds the text normalizer settings.
type NormalizeConfig struct {
	Find        string   `koanf:"find" toml:"find"`
	Replace     string   `koanf:"replace" toml:"replace"`
	Extensions  []string `koanf:"extensions" toml:"extensions"`
	ValidateXML bool     `koanf:"validate_xml" toml:"validate_xml"`
}

// OutputConfig selects how reports are rendered.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"`
}

// OutputFormats are the accepted values of output.format.
var OutputFormats = []string{"auto", "term", "text", "json", "yaml"}

// Grammar builds the locale grammar described by the configuration.
func (c *Config) Grammar() (*locale.Grammar, error) {
	return locale.NewGrammar(c.Locale.Prefix, c.Locale.RegionPattern)
}

// ExceptionSet returns the configured exception set.
func (c *Config) ExceptionSet() locale.ExceptionSet {
	return locale.NewExceptionSet(c.Merge.Exceptions...)
}

// NormalizeOptions returns the normalizer options for a run.
func (c *Config) NormalizeOptions(dryRun bool) normalize.Options {
	return normalize.Options{
		Find:        c.Normalize.Find,
		Replace:     c.Normalize.Replace,
		Extensions:  c.Normalize.Extensions,
		ValidateXML: c.Normalize.ValidateXML,
		DryRun:      dryRun,
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	g, err := c.Grammar()
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid locale settings")
	}

	if invalid := c.ExceptionSet().Validate(g); len(invalid) > 0 {
		return errors.Newf(errors.ErrConfigValid, "exceptions are not variant directory names: %s",
			strings.Join(invalid, ", ")).
			WithDetail("exceptions", invalid)
	}

	if c.Normalize.Find == "" {
		return errors.New(errors.ErrConfigValid, "normalize.find must not be empty")
	}

	for _, ext := range c.Normalize.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.Newf(errors.ErrConfigValid, "extension %q must start with a dot", ext)
		}
	}

	if !validFormat(c.Output.Format) {
		return errors.Newf(errors.ErrConfigValid, "unknown output format %q (want one of %s)",
			c.Output.Format, strings.Join(OutputFormats, ", "))
	}
	return nil
}

func validFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// String returns a short description for logging.
func (c *Config) String() string {
	return fmt.Sprintf("root=%s prefix=%s exceptions=%d", c.ResourceRoot, c.Locale.Prefix, len(c.Merge.Exceptions))
}
