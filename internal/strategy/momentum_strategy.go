package strategy

import (
	"fmt"

	"github.com/creasty/defaults"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/indicator"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// momentumConfidenceScale maps percent change onto confidence: a 5
// percent move saturates the 0.95 cap.
const momentumConfidenceScale = 5.0

// MomentumConfig holds the recognized options of the momentum strategy.
type MomentumConfig struct {
	// BuyThreshold is the percent change above which to buy.
	BuyThreshold float64 `yaml:"buy_threshold" default:"2" validate:"gt=0"`
	// SellThreshold is the percent change below which to sell.
	SellThreshold float64 `yaml:"sell_threshold" default:"-2" validate:"lt=0"`
	// VolatilityFilter is the max tolerated return volatility before
	// forcing a Hold regardless of momentum.
	VolatilityFilter float64 `yaml:"volatility_filter" default:"0.15" validate:"gt=0"`
	// VolatilityPeriod is the lookback of the volatility estimate.
	VolatilityPeriod int `yaml:"volatility_period" default:"10" validate:"min=2"`
	// MinVolume is the bar volume under which confidence is penalized.
	MinVolume float64 `yaml:"min_volume" default:"100000" validate:"min=0"`
}

// MomentumStrategy trades intrabar percent change, filtered by recent
// return volatility.
type MomentumStrategy struct {
	engine *indicator.Engine
	config MomentumConfig
}

// NewMomentumStrategy creates a momentum strategy. Zero-valued config
// fields take their defaults.
func NewMomentumStrategy(engine *indicator.Engine, config MomentumConfig) (*MomentumStrategy, error) {
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "momentum strategy defaults", err)
	}

	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "momentum strategy config", err)
	}

	return &MomentumStrategy{
		engine: engine,
		config: config,
	}, nil
}

// Name returns the strategy identifier.
func (s *MomentumStrategy) Name() string {
	return "momentum"
}

// Config returns the recognized options and their current values.
func (s *MomentumStrategy) Config() map[string]any {
	return map[string]any{
		"buy_threshold":     s.config.BuyThreshold,
		"sell_threshold":    s.config.SellThreshold,
		"volatility_filter": s.config.VolatilityFilter,
		"volatility_period": s.config.VolatilityPeriod,
		"min_volume":        s.config.MinVolume,
	}
}

// Analyze trades the bar's open-to-close percent change. Volatility at
// or above the filter forces a Hold. Confidence scales with the move
// size up to 0.95 and is reduced by 0.7 on thin volume.
func (s *MomentumStrategy) Analyze(current types.MarketData, history []types.MarketData) types.Signal {
	if current.Open == 0 {
		return errorHold(s.Name(), current,
			errors.New(errors.ErrCodeInvalidBar, "zero open price"))
	}

	volatility, err := s.engine.Volatility(current.Symbol, series(current, history), s.config.VolatilityPeriod)
	if err != nil {
		return errorHold(s.Name(), current, err)
	}

	percentChange := (current.Close - current.Open) / current.Open * 100

	if volatility >= s.config.VolatilityFilter {
		return holdSignal(s.Name(), current, 0,
			fmt.Sprintf("High Volatility %.4f (filter %.2f), momentum %.2f%% FILTERED",
				volatility, s.config.VolatilityFilter, percentChange))
	}

	if percentChange <= s.config.BuyThreshold && percentChange >= s.config.SellThreshold {
		return holdSignal(s.Name(), current, 0.3,
			fmt.Sprintf("Momentum %.2f%% NEUTRAL", percentChange))
	}

	confidence := capConfidence(abs(percentChange)/momentumConfidenceScale, 0.95)

	lowVolume := current.Volume < s.config.MinVolume
	if lowVolume {
		confidence *= 0.7
	}

	if percentChange > s.config.BuyThreshold {
		reason := fmt.Sprintf("Momentum %.2f%% STRONG UPWARD", percentChange)
		if lowVolume {
			reason += ", Low Volume"
		}

		return buySignal(s.Name(), current, confidence, reason, 0.98, 1.05)
	}

	reason := fmt.Sprintf("Momentum %.2f%% STRONG DOWNWARD", percentChange)
	if lowVolume {
		reason += ", Low Volume"
	}

	return sellSignal(s.Name(), current, confidence, reason, 1.02, 0.95)
}
