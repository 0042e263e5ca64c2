package config

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"
)

var sortKeys = []string{"alpha", "standard_deviation", "skewness", "kurtosis"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.HistogramLength < 1 {
		return errors.New("analysis.histogram_length must be at least 1")
	}
	if c.Analysis.SimilarLimit < 0 {
		return errors.New("analysis.similar_limit must be 0 (all) or positive")
	}
	if c.Analysis.SummaryWindow < 1 {
		return errors.New("analysis.summary_window must be at least 1")
	}
	if c.Analysis.Workers < 0 {
		return errors.New("analysis.workers must be 0 (one per CPU) or positive")
	}
	return nil
}

func (c *Config) validateExport() error {
	if utf8.RuneCountInString(c.Export.Delimiter) != 1 {
		return fmt.Errorf("export.delimiter must be a single character, got %q", c.Export.Delimiter)
	}
	if c.Export.Delimiter == c.Export.DecimalSeparator {
		return errors.New("export.delimiter and export.decimal_separator must differ")
	}
	if !slices.Contains(sortKeys, c.Export.SortKey) {
		return fmt.Errorf("export.sort_key: unsupported value %q", c.Export.SortKey)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
