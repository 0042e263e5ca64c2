package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("WORDASSOC_WORKSPACE"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Workspace = value
	}
	if value, ok := os.LookupEnv("WORDASSOC_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	if value, ok := os.LookupEnv("WORDASSOC_WORKERS"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			c.Analysis.Workers = n
		}
	}
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.Workspace) == "" {
		c.Paths.Workspace = defaultWorkspace
	}
	var err error
	if c.Paths.Workspace, err = expandPath(c.Paths.Workspace); err != nil {
		return fmt.Errorf("paths.workspace: %w", err)
	}
	return nil
}

func (c *Config) normalizeExport() {
	if c.Export.Delimiter == "" {
		c.Export.Delimiter = defaultDelimiter
	}
	if c.Export.DecimalSeparator == "" {
		c.Export.DecimalSeparator = defaultDecimalSeparator
	}
	c.Export.SortKey = strings.ToLower(strings.TrimSpace(c.Export.SortKey))
	if c.Export.SortKey == "" {
		c.Export.SortKey = defaultSortKey
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
