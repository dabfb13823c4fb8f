package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/seedmix/internal/config"
	"github.com/lox/seedmix/internal/secret"
	"github.com/lox/seedmix/internal/worldgen"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"seedmix.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`

	out    io.Writer
	errOut io.Writer
}

type runtime struct {
	cfg     *config.Config
	logger  *log.Logger
	store   *secret.Store
	deriver *worldgen.Deriver
}

func (g *Globals) setup() (*runtime, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := log.NewWithOptions(g.errOut, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
		Prefix:          "seedmix",
	})
	store := secret.NewStore(secret.NewFileStorage(), secret.WithLogger(logger))

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		deriver: worldgen.NewDeriver(store, cfg.Layout(), logger),
	}, nil
}
