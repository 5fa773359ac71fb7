// Package commands implements the chainsql subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/chainsql/internal/config"
	"github.com/leapstack-labs/chainsql/internal/metrics"
	"github.com/leapstack-labs/chainsql/pkg/helper"
	"github.com/spf13/cobra"
)

type configKey struct{}

type loggerKey struct{}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetConfig retrieves the config from the command context. It falls back to
// the defaults when the root command did not load one.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok && c != nil {
		return c
	}
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

const pushTimeout = 5 * time.Second

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg     *config.Config
	Logger  *slog.Logger
	Helper  *helper.Helper
	Metrics *metrics.Collector
}

// NewCommandContext creates a CommandContext with a connected helper.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc, err := NewCommandContextWithoutConnection(cmd)
	if err != nil {
		return nil, nil, err
	}

	if err := cc.Helper.Connect(cmd.Context()); err != nil {
		cc.pushMetrics()
		return nil, nil, err
	}
	cleanup := func() {
		if err := cc.Helper.Disconnect(); err != nil {
			cc.Logger.Warn("failed to close connection", slog.String("error", err.Error()))
		}
		cc.pushMetrics()
	}
	return cc, cleanup, nil
}

// NewCommandContextWithoutConnection creates a CommandContext whose helper
// has not connected. Useful for dry runs.
func NewCommandContextWithoutConnection(cmd *cobra.Command) (*CommandContext, error) {
	cfg := GetConfig(cmd.Context())
	logger := GetLogger(cmd.Context())

	h, err := helper.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create helper: %w", err)
	}
	m := metrics.New()
	h.SetMetrics(m)
	return &CommandContext{Cfg: cfg, Logger: logger, Helper: h, Metrics: m}, nil
}

// pushMetrics sends the collected metrics to the configured Pushgateway.
// A failed push is logged, never returned.
func (cc *CommandContext) pushMetrics() {
	gw := cc.Cfg.Metrics.PushGateway
	if gw == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()
	if err := cc.Metrics.Push(ctx, gw, cc.Cfg.Metrics.Job); err != nil {
		cc.Logger.Warn("failed to push metrics", slog.String("pushgateway", gw), slog.String("error", err.Error()))
		return
	}
	cc.Logger.Debug("metrics pushed", slog.String("pushgateway", gw))
}
