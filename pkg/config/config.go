// Package config loads and validates the engine configuration from
// yaml. Zero-valued fields take declared defaults, and validation
// reports every violated constraint at once.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/indicator"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/logger"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/marketmaking"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/strategy"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

var validate = validator.New()

// EngineConfig tunes the indicator engine and order book metrics.
type EngineConfig struct {
	// CacheTTLSeconds is how long computed indicator values stay
	// servable from the cache.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds" default:"30" validate:"min=1"`
	// CacheBucketSeconds is the time-bucket granularity of cache keys.
	CacheBucketSeconds int `yaml:"cache_bucket_seconds" default:"60" validate:"min=1"`
	// DepthLevels is the book depth used by imbalance and weighted-mid
	// metrics.
	DepthLevels int `yaml:"depth_levels" default:"5" validate:"min=1"`
}

// CacheTTL returns the cache TTL as a duration.
func (e EngineConfig) CacheTTL() time.Duration {
	return time.Duration(e.CacheTTLSeconds) * time.Second
}

// CacheBucket returns the cache key bucket as a duration.
func (e EngineConfig) CacheBucket() time.Duration {
	return time.Duration(e.CacheBucketSeconds) * time.Second
}

// Config is the full configuration surface of the decision engine.
// Strategies maps strategy names to their recognized options; the
// option keys per strategy are documented on the strategy config
// structs.
type Config struct {
	Engine       EngineConfig              `yaml:"engine"`
	Strategies   map[string]map[string]any `yaml:"strategies"`
	MarketMaking marketmaking.ASParameters `yaml:"market_making"`
}

// Default returns the configuration used when no file is given: all
// built-in strategies with default options and default quoting
// parameters.
func Default() Config {
	config := Config{
		Strategies: map[string]map[string]any{
			"rsi":      {},
			"macd":     {},
			"momentum": {},
			"mfi":      {},
			"vwap":     {},
		},
	}

	// Defaults cannot fail on the zero config.
	_ = defaults.Set(&config.Engine)
	_ = defaults.Set(&config.MarketMaking)

	return config
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "read config %s", path)
	}

	return Parse(raw)
}

// Parse unmarshals yaml configuration, fills defaults into zero-valued
// fields and validates the result.
func Parse(raw []byte) (Config, error) {
	var config Config

	if err := yaml.Unmarshal(raw, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "parse config", err)
	}

	if err := defaults.Set(&config.Engine); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "config defaults", err)
	}

	if err := defaults.Set(&config.MarketMaking); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "config defaults", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks every constraint and reports all violations in one
// error.
func (c Config) Validate() error {
	var violations []string

	if err := validate.Struct(c.Engine); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fe := range fieldErrors {
				violations = append(violations, fmt.Sprintf("engine.%s violates %s=%s (got %v)",
					fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
			}
		} else {
			violations = append(violations, err.Error())
		}
	}

	if err := c.MarketMaking.Validate(); err != nil {
		violations = append(violations, err.Error())
	}

	if len(violations) == 0 {
		return nil
	}

	return errors.Newf(errors.ErrCodeInvalidConfiguration,
		"config: %s", strings.Join(violations, "; "))
}

// BuildStrategies constructs the configured strategies through the
// registry, in sorted name order.
func (c Config) BuildStrategies(registry *strategy.Registry, engine *indicator.Engine) ([]strategy.Strategy, error) {
	names := make([]string, 0, len(c.Strategies))
	for name := range c.Strategies {
		names = append(names, name)
	}
	sort.Strings(names)

	strategies := make([]strategy.Strategy, 0, len(names))
	for _, name := range names {
		strat, err := registry.Create(name, engine, c.Strategies[name])
		if err != nil {
			return nil, err
		}

		strategies = append(strategies, strat)
	}

	return strategies, nil
}

// BuildEngine constructs an indicator engine with the configured cache
// behavior.
func (c Config) BuildEngine() *indicator.Engine {
	return indicator.NewEngine(indicator.NewDefaultRegistry(),
		indicator.WithCacheTTL(c.Engine.CacheTTL()),
		indicator.WithCacheBucket(c.Engine.CacheBucket()))
}

// BuildTracker constructs a book tracker using the configured depth
// levels.
func (c Config) BuildTracker(log *logger.Logger) *marketmaking.BookTracker {
	return marketmaking.NewBookTracker(log, marketmaking.WithDepthLevels(c.Engine.DepthLevels))
}
