package config

import (
	"fmt"
	"strings"

	"github.com/xtding233/gamerand/internal/random"
	"github.com/xtding233/gamerand/internal/seed"
)

// Validate checks semantic constraints of a Config.
func Validate(cfg Config) error {
	var errs []string

	switch cfg.Engine {
	case random.KindFast, random.KindSystem:
	default:
		errs = append(errs, fmt.Sprintf("engine must be one of: fast, system (got %q)", cfg.Engine))
	}

	validStrategy := func(s seed.Strategy) bool {
		switch s {
		case seed.StrategyCrypto, seed.StrategyTime, seed.StrategyIdentifier, StrategyFixed:
			return true
		}
		return false
	}
	if !validStrategy(cfg.Seed.Strategy) {
		errs = append(errs, "seed.strategy must be one of: crypto, time, identifier, fixed")
	}
	if cfg.Seed.Strategy == StrategyFixed && cfg.Seed.Value == nil {
		errs = append(errs, "seed.value is required for strategy=fixed")
	}
	if cfg.Seed.Fallback != "" {
		if !validStrategy(cfg.Seed.Fallback) {
			errs = append(errs, "seed.fallback must be one of: crypto, time, identifier, fixed")
		}
		if cfg.Seed.Fallback == StrategyFixed && cfg.Seed.Value == nil {
			errs = append(errs, "seed.value is required for fallback=fixed")
		}
	}

	if cfg.HTTPListen == "" && cfg.GRPCListen == "" {
		errs = append(errs, "at least one of http_listen, grpc_listen must be set")
	}
	if cfg.WatchInterval < 0 {
		errs = append(errs, "watch_interval must be >= 0")
	}
	if cfg.MaxProfile <= 0 {
		errs = append(errs, "max_profile must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
