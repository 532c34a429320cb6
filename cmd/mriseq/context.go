package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mriseq/internal/config"
	"mriseq/internal/logging"
	"mriseq/internal/sequence"
	"mriseq/internal/snapshot"
)

type commandContext struct {
	configFlag       *string
	referenceDirFlag *string
	logLevelFlag     *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, referenceDirFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:       configFlag,
		referenceDirFlag: referenceDirFlag,
		logLevelFlag:     logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if dir := flagValue(c.referenceDirFlag); dir != "" {
			expanded, err := config.ExpandPath(dir)
			if err != nil {
				c.configErr = fmt.Errorf("resolve --reference-dir: %w", err)
				return
			}
			cfg.Reference.Dir = expanded
		}
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the run logger once. Console output goes to the
// command's stderr; every record carries the run's correlation ID.
func (c *commandContext) ensureLogger(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		opts := logging.OptionsFromConfig(cfg)
		opts.Writer = cmd.ErrOrStderr()
		logger, err := logging.New(opts)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger.With(logging.String(logging.FieldCorrelationID, uuid.NewString()))
	})
	return c.logger, c.loggerErr
}

// loadClassifier builds a classifier from the configured reference source.
func (c *commandContext) loadClassifier(cmd *cobra.Command) (*sequence.Classifier, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Reference.Source == config.SourceSnapshot {
		return c.loadSnapshotClassifier(cmd.Context(), cfg, logger)
	}
	return c.loadCSVClassifier(cfg, logger)
}

func (c *commandContext) loadCSVClassifier(cfg *config.Config, logger *slog.Logger) (*sequence.Classifier, error) {
	classifier, err := sequence.Load(cfg.Reference.Dir, sequence.LoadOptions{
		FileName:  cfg.Reference.FileName,
		Delimiter: cfg.DelimiterRune(),
		Charset:   cfg.Reference.Charset,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load reference table: %w", err)
	}
	return classifier, nil
}

func (c *commandContext) loadSnapshotClassifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sequence.Classifier, error) {
	store, err := snapshot.Open(ctx, cfg.Snapshot.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("open reference snapshot: %w", err)
	}
	defer store.Close()
	classifier, err := store.Classifier(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("load reference snapshot: %w", err)
	}
	return classifier, nil
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
