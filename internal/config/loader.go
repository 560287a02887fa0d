package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/gamerand/internal/random"
	"github.com/xtding233/gamerand/internal/seed"
)

// Load builds a Config from defaults, the YAML file at path (optional,
// may be empty or missing) and environment overrides, then validates it.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := readYAML(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readYAML decodes path over cfg. Missing files leave cfg unchanged.
func readYAML(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(b, cfg)
}

// SeedFunc resolves the configured seed strategy and optional fallback.
func (c Config) SeedFunc() (seed.Func, error) {
	primary, err := resolveStrategy(c.Seed.Strategy, c.Seed.Value)
	if err != nil {
		return nil, err
	}
	if c.Seed.Fallback == "" {
		return primary, nil
	}
	fallback, err := resolveStrategy(c.Seed.Fallback, c.Seed.Value)
	if err != nil {
		return nil, err
	}
	return seed.WithFallback(primary, fallback), nil
}

func resolveStrategy(name seed.Strategy, value *int32) (seed.Func, error) {
	if name == StrategyFixed {
		if value == nil {
			return nil, errors.New("seed.value is required for strategy=fixed")
		}
		return seed.Fixed(*value), nil
	}
	return seed.ByName(name)
}

// NewEngine builds the configured engine, seeded by the configured strategy.
func (c Config) NewEngine() (random.Engine, error) {
	src, err := c.SeedFunc()
	if err != nil {
		return nil, err
	}
	return random.NewFromSource(c.Engine, src)
}
