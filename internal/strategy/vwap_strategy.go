package strategy

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/moznion/go-optional"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/indicator"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// vwapConfidenceScale maps percent deviation onto confidence: a 2.7%
// deviation or more saturates the 0.9 cap.
const vwapConfidenceScale = 3.0

// Stops for the VWAP strategy anchor on the VWAP itself rather than
// the entry price, since the VWAP is the reversion target.
const (
	vwapBuyStopLossPct    = 0.99
	vwapBuyTakeProfitPct  = 1.03
	vwapSellStopLossPct   = 1.01
	vwapSellTakeProfitPct = 0.97
)

// VWAPConfig holds the recognized options of the VWAP strategy.
type VWAPConfig struct {
	// Period is the VWAP rolling window length.
	Period int `yaml:"period" default:"20" validate:"min=1"`
	// VWAPDistance is the percent deviation from the VWAP a bar must
	// exceed before the strategy trades.
	VWAPDistance float64 `yaml:"vwap_distance" default:"1" validate:"gt=0"`
	// MinVolume is the bar volume under which confidence is penalized.
	MinVolume float64 `yaml:"min_volume" default:"50000" validate:"min=0"`
}

// VWAPStrategy trades reversion toward the volume-weighted average
// price: it buys below the VWAP and sells above it once the deviation
// clears the configured distance.
type VWAPStrategy struct {
	engine *indicator.Engine
	config VWAPConfig
}

// NewVWAPStrategy creates a VWAP strategy. Zero-valued config fields
// take their defaults.
func NewVWAPStrategy(engine *indicator.Engine, config VWAPConfig) (*VWAPStrategy, error) {
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "vwap strategy defaults", err)
	}

	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "vwap strategy config", err)
	}

	return &VWAPStrategy{
		engine: engine,
		config: config,
	}, nil
}

// Name returns the strategy identifier.
func (s *VWAPStrategy) Name() string {
	return "vwap"
}

// Config returns the recognized options and their current values.
func (s *VWAPStrategy) Config() map[string]any {
	return map[string]any{
		"period":        s.config.Period,
		"vwap_distance": s.config.VWAPDistance,
		"min_volume":    s.config.MinVolume,
	}
}

// Analyze buys when price sits below the VWAP and sells above it, but
// only once the percent deviation exceeds the configured distance.
// Confidence scales with the deviation and is reduced by 0.6 on thin
// volume. Stops and targets anchor on the VWAP.
func (s *VWAPStrategy) Analyze(current types.MarketData, history []types.MarketData) types.Signal {
	vwap, err := s.engine.VWAP(current.Symbol, series(current, history), s.config.Period)
	if err != nil {
		return errorHold(s.Name(), current, err)
	}

	if vwap <= 0 {
		return errorHold(s.Name(), current, errors.Newf(errors.ErrCodeIndicatorCalculation,
			"Analyze: non-positive VWAP %.4f for %s", vwap, current.Symbol))
	}

	deviation := abs(current.Close-vwap) / vwap * 100

	if deviation <= s.config.VWAPDistance {
		return holdSignal(s.Name(), current, 0.3,
			fmt.Sprintf("Price %.2f, VWAP %.2f, Dev %.2f%%", current.Close, vwap, deviation))
	}

	confidence := capConfidence(deviation/vwapConfidenceScale, 0.9)

	lowVolume := current.Volume < s.config.MinVolume
	if lowVolume {
		confidence *= 0.6
	}

	if current.Close < vwap {
		reason := fmt.Sprintf("Price below VWAP by %.2f%%", deviation)
		if lowVolume {
			reason += ", Low Volume"
		}

		return types.Signal{
			Symbol:     current.Symbol,
			Time:       current.Time,
			Action:     types.SignalActionBuy,
			Confidence: confidence,
			Reason:     reason,
			Strategy:   s.Name(),
			EntryPrice: current.Close,
			StopLoss:   optional.Some(vwap * vwapBuyStopLossPct),
			TakeProfit: optional.Some(vwap * vwapBuyTakeProfitPct),
		}
	}

	reason := fmt.Sprintf("Price above VWAP by %.2f%%", deviation)
	if lowVolume {
		reason += ", Low Volume"
	}

	return types.Signal{
		Symbol:     current.Symbol,
		Time:       current.Time,
		Action:     types.SignalActionSell,
		Confidence: confidence,
		Reason:     reason,
		Strategy:   s.Name(),
		EntryPrice: current.Close,
		StopLoss:   optional.Some(vwap * vwapSellStopLossPct),
		TakeProfit: optional.Some(vwap * vwapSellTakeProfitPct),
	}
}
