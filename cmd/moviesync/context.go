package main

import (
	"log/slog"

	"MovieSync/internal/config"
	"MovieSync/internal/logging"
)

// commandContext lazily loads configuration and the logger once per
// invocation, after flag parsing has resolved the config path.
type commandContext struct {
	configFlag *string

	cfg    *config.Config
	logger *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensure() (config.Config, *slog.Logger) {
	if c.cfg == nil {
		var cfg config.Config
		if *c.configFlag != "" {
			cfg = config.LoadPath(*c.configFlag)
		} else {
			cfg = config.Load()
		}
		c.cfg = &cfg
		c.logger = logging.New(cfg.Logging.Level)
	}
	return *c.cfg, c.logger
}
