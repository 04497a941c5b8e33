package strategy

import (
	"fmt"

	"github.com/creasty/defaults"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/indicator"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// mfiLowVolumePenalty is lighter than the 0.7 used elsewhere: the MFI
// is already volume-weighted.
const mfiLowVolumePenalty = 0.8

// MFIConfig holds the recognized options of the MFI strategy.
type MFIConfig struct {
	// Period is the MFI lookback length.
	Period int `yaml:"period" default:"14" validate:"min=1"`
	// OversoldThreshold is the buy trigger.
	OversoldThreshold float64 `yaml:"oversold_threshold" default:"20" validate:"gt=0,lt=100"`
	// OverboughtThreshold is the sell trigger.
	OverboughtThreshold float64 `yaml:"overbought_threshold" default:"80" validate:"gt=0,lt=100,gtfield=OversoldThreshold"`
	// MinVolume is the bar volume under which confidence is penalized.
	MinVolume float64 `yaml:"min_volume" default:"100000" validate:"min=0"`
}

// MFIStrategy trades money-flow extremes.
type MFIStrategy struct {
	engine *indicator.Engine
	config MFIConfig
}

// NewMFIStrategy creates an MFI strategy. Zero-valued config fields
// take their defaults.
func NewMFIStrategy(engine *indicator.Engine, config MFIConfig) (*MFIStrategy, error) {
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "mfi strategy defaults", err)
	}

	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "mfi strategy config", err)
	}

	return &MFIStrategy{
		engine: engine,
		config: config,
	}, nil
}

// Name returns the strategy identifier.
func (s *MFIStrategy) Name() string {
	return "mfi"
}

// Config returns the recognized options and their current values.
func (s *MFIStrategy) Config() map[string]any {
	return map[string]any{
		"period":               s.config.Period,
		"oversold_threshold":   s.config.OversoldThreshold,
		"overbought_threshold": s.config.OverboughtThreshold,
		"min_volume":           s.config.MinVolume,
	}
}

// Analyze buys when money flows out past the oversold threshold and
// sells heavy buying past the overbought threshold. Confidence scales
// with the depth past the threshold, reduced by 0.8 on thin volume.
func (s *MFIStrategy) Analyze(current types.MarketData, history []types.MarketData) types.Signal {
	mfi, err := s.engine.MFI(current.Symbol, series(current, history), s.config.Period)
	if err != nil {
		return errorHold(s.Name(), current, err)
	}

	lowVolume := current.Volume < s.config.MinVolume

	switch {
	case mfi < s.config.OversoldThreshold:
		confidence := capConfidence((s.config.OversoldThreshold-mfi)/s.config.OversoldThreshold, 0.9)
		if lowVolume {
			confidence *= mfiLowVolumePenalty
		}

		reason := fmt.Sprintf("MFI %.2f OVERSOLD, Money flowing out", mfi)
		if lowVolume {
			reason += ", Low Volume"
		}

		return buySignal(s.Name(), current, confidence, reason, buyStopLossPct, buyTakeProfitPct)

	case mfi > s.config.OverboughtThreshold:
		confidence := capConfidence((mfi-s.config.OverboughtThreshold)/(100-s.config.OverboughtThreshold), 0.9)
		if lowVolume {
			confidence *= mfiLowVolumePenalty
		}

		reason := fmt.Sprintf("MFI %.2f OVERBOUGHT, Heavy buying", mfi)
		if lowVolume {
			reason += ", Low Volume"
		}

		return sellSignal(s.Name(), current, confidence, reason, sellStopLossPct, sellTakeProfitPct)

	default:
		return holdSignal(s.Name(), current, 0.35,
			fmt.Sprintf("MFI %.2f NEUTRAL, Balanced money flow", mfi))
	}
}
