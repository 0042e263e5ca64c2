package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wordassoc/internal/analysis"
	"wordassoc/internal/config"
	"wordassoc/internal/db"
	"wordassoc/internal/logging"
	"wordassoc/internal/workspace"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *zap.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if _, err := workspace.EnsureAt(cfg.Paths.Workspace); err != nil {
			c.configErr = fmt.Errorf("prepare workspace: %w", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *zap.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.config)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) close() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func (c *commandContext) openSurvey(kind string) (*workspace.Survey, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return workspace.OpenSurvey(cfg.Paths.Workspace, kind)
}

// withLock runs fn while holding the survey's lock.
func (c *commandContext) withLock(survey *workspace.Survey, fn func() error) error {
	unlock, err := survey.Lock()
	if errors.Is(err, workspace.ErrLocked) {
		return fmt.Errorf("survey %q is busy; another wordassoc command is running", survey.Kind)
	}
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

func (c *commandContext) analysisOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	if c.config != nil {
		opts.HistogramLength = c.config.Analysis.HistogramLength
		opts.SimilarLimit = c.config.Analysis.SimilarLimit
		opts.FoldCase = c.config.Analysis.FoldCase
		opts.Workers = c.config.Analysis.Workers
	}
	opts.Logger = c.ensureLogger()
	return opts
}

// loadSurveyData reads the stored answers and directives of a kind.
func (c *commandContext) loadSurveyData(survey *workspace.Survey) ([]analysis.RawResponse, analysis.Directives, error) {
	responses, err := db.LoadResponses(survey.DBPath, survey.Kind)
	if err != nil {
		return nil, analysis.Directives{}, fmt.Errorf("load answers: %w", err)
	}
	if len(responses) == 0 {
		return nil, analysis.Directives{}, fmt.Errorf("no answers stored for %q; run `wordassoc import %s <file>` first", survey.Kind, survey.Kind)
	}
	dir, err := db.LoadDirectives(survey.DBPath, survey.Kind)
	if err != nil {
		return nil, analysis.Directives{}, fmt.Errorf("load directives: %w", err)
	}
	return responses, dir, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
