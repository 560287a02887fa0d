// types.go
package config

import (
	"time"

	"github.com/xtding233/gamerand/internal/random"
	"github.com/xtding233/gamerand/internal/seed"
)

// Config is the service configuration. YAML provides the base layer and
// GAMERAND_* environment variables override it.
type Config struct {
	Engine random.Kind `yaml:"engine" env:"GAMERAND_ENGINE"`
	Seed   SeedConfig  `yaml:"seed" envPrefix:"GAMERAND_SEED_"`

	HTTPListen string `yaml:"http_listen" env:"GAMERAND_HTTP_LISTEN"`
	GRPCListen string `yaml:"grpc_listen" env:"GAMERAND_GRPC_LISTEN"`
	Metrics    bool   `yaml:"metrics" env:"GAMERAND_METRICS"`

	// WatchInterval enables config hot-reload when > 0.
	WatchInterval time.Duration `yaml:"watch_interval" env:"GAMERAND_WATCH_INTERVAL"`

	// MaxProfile caps the n accepted by the stats endpoints.
	MaxProfile int `yaml:"max_profile" env:"GAMERAND_MAX_PROFILE"`
}

type SeedConfig struct {
	Strategy seed.Strategy `yaml:"strategy" env:"STRATEGY"` // crypto | time | identifier | fixed
	Value    *int32        `yaml:"value,omitempty" env:"VALUE"`
	Fallback seed.Strategy `yaml:"fallback,omitempty" env:"FALLBACK"`
}

// StrategyFixed seeds from SeedConfig.Value.
const StrategyFixed seed.Strategy = "fixed"

// Defaults returns the configuration used when no file or env is given.
func Defaults() Config {
	return Config{
		Engine:     random.KindFast,
		Seed:       SeedConfig{Strategy: seed.StrategyCrypto},
		HTTPListen: ":8080",
		GRPCListen: ":9090",
		Metrics:    true,
		MaxProfile: 1_000_000,
	}
}
