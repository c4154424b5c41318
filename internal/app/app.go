// Package app assembles the engine and API from configuration.
package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"barodeal/api"
	"barodeal/core/fee"
	"barodeal/core/schedule"
	"barodeal/core/types"
	"barodeal/internal/config"
	apperrors "barodeal/internal/errors"
	"barodeal/internal/logging"
)

// LoadTable returns the schedule table named by cfg, or the embedded one.
func LoadTable(cfg *config.Config) (*schedule.Table, error) {
	if cfg.Schedule.Path != "" {
		return schedule.LoadFile(cfg.Schedule.Path)
	}
	return schedule.Default()
}

// NewEngine builds the fee engine from the schedule settings in cfg.
func NewEngine(cfg *config.Config) (*fee.Engine, error) {
	table, err := LoadTable(cfg)
	if err != nil {
		return nil, err
	}

	opts := []fee.Option{fee.WithLogger(logging.Named("fee"))}
	if cfg.Schedule.Region != "" {
		region, ok := types.ParseRegion(cfg.Schedule.Region)
		if !ok {
			return nil, apperrors.Newf(apperrors.TypeConfig, "unknown region %q", cfg.Schedule.Region)
		}
		opts = append(opts, fee.WithDefaultRegion(region))
	}
	return fee.NewEngine(table, opts...), nil
}

// NewServer builds the HTTP API over a fresh engine.
func NewServer(cfg *config.Config, version string) (*api.Server, error) {
	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewServer(engine, api.Config{
		Version:   version,
		RateLimit: cfg.Server.RateLimit,
		Burst:     cfg.Server.Burst,
	}), nil
}

// Serve runs the API on cfg.Server.Addr until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config, version string) error {
	server, err := NewServer(cfg, version)
	if err != nil {
		return err
	}
	return server.ListenAndServe(ctx, cfg.Server.Addr)
}
