package strategy

import (
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/indicator"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// Factory builds a strategy from its recognized options.
type Factory func(engine *indicator.Engine, options map[string]any) (Strategy, error)

// Registry maps strategy names to factories.
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// NewDefaultRegistry creates a registry with every built-in strategy
// registered.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()

	registry.Register("rsi", func(engine *indicator.Engine, options map[string]any) (Strategy, error) {
		var config RSIConfig
		if err := decodeOptions(options, &config); err != nil {
			return nil, err
		}

		return NewRSIStrategy(engine, config)
	})

	registry.Register("macd", func(engine *indicator.Engine, options map[string]any) (Strategy, error) {
		var config MACDConfig
		if err := decodeOptions(options, &config); err != nil {
			return nil, err
		}

		return NewMACDStrategy(engine, config)
	})

	registry.Register("momentum", func(engine *indicator.Engine, options map[string]any) (Strategy, error) {
		var config MomentumConfig
		if err := decodeOptions(options, &config); err != nil {
			return nil, err
		}

		return NewMomentumStrategy(engine, config)
	})

	registry.Register("mfi", func(engine *indicator.Engine, options map[string]any) (Strategy, error) {
		var config MFIConfig
		if err := decodeOptions(options, &config); err != nil {
			return nil, err
		}

		return NewMFIStrategy(engine, config)
	})

	registry.Register("vwap", func(engine *indicator.Engine, options map[string]any) (Strategy, error) {
		var config VWAPConfig
		if err := decodeOptions(options, &config); err != nil {
			return nil, err
		}

		return NewVWAPStrategy(engine, config)
	})

	return registry
}

// Register adds a strategy factory under the given name, replacing any
// existing registration.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[name] = factory
}

// Create builds a strategy by name from its recognized options.
func (r *Registry) Create(name string, engine *indicator.Engine, options map[string]any) (Strategy, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy,
			"Create: strategy %s not registered", name)
	}

	return factory(engine, options)
}

// List returns the registered strategy names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// decodeOptions maps loosely-typed options onto a config struct
// through a yaml round trip, so option values follow the same coercion
// rules as file-based configuration.
func decodeOptions(options map[string]any, out any) error {
	if len(options) == 0 {
		return nil
	}

	raw, err := yaml.Marshal(options)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "encode strategy options", err)
	}

	if err := yaml.Unmarshal(raw, out); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "decode strategy options", err)
	}

	return nil
}
