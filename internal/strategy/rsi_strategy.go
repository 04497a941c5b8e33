package strategy

import (
	"fmt"

	"github.com/creasty/defaults"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/indicator"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// RSIConfig holds the recognized options of the RSI strategy.
type RSIConfig struct {
	// Period is the RSI lookback length.
	Period int `yaml:"period" default:"14" validate:"min=1"`
	// OversoldThreshold is the buy trigger.
	OversoldThreshold float64 `yaml:"oversold_threshold" default:"30" validate:"gt=0,lt=100"`
	// OverboughtThreshold is the sell trigger.
	OverboughtThreshold float64 `yaml:"overbought_threshold" default:"70" validate:"gt=0,lt=100,gtfield=OversoldThreshold"`
}

// RSIStrategy buys oversold and sells overbought conditions on the
// Wilder RSI.
type RSIStrategy struct {
	engine *indicator.Engine
	config RSIConfig
}

// NewRSIStrategy creates an RSI strategy. Zero-valued config fields
// take their defaults.
func NewRSIStrategy(engine *indicator.Engine, config RSIConfig) (*RSIStrategy, error) {
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "rsi strategy defaults", err)
	}

	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "rsi strategy config", err)
	}

	return &RSIStrategy{
		engine: engine,
		config: config,
	}, nil
}

// Name returns the strategy identifier.
func (s *RSIStrategy) Name() string {
	return "rsi"
}

// Config returns the recognized options and their current values.
func (s *RSIStrategy) Config() map[string]any {
	return map[string]any{
		"period":               s.config.Period,
		"oversold_threshold":   s.config.OversoldThreshold,
		"overbought_threshold": s.config.OverboughtThreshold,
	}
}

// Analyze buys below the oversold threshold and sells above the
// overbought threshold. Confidence scales with the depth past the
// threshold and caps at 0.9.
func (s *RSIStrategy) Analyze(current types.MarketData, history []types.MarketData) types.Signal {
	rsi, err := s.engine.RSI(current.Symbol, series(current, history), s.config.Period)
	if err != nil {
		return errorHold(s.Name(), current, err)
	}

	switch {
	case rsi < s.config.OversoldThreshold:
		confidence := capConfidence((s.config.OversoldThreshold-rsi)/s.config.OversoldThreshold, 0.9)
		reason := fmt.Sprintf("RSI %.2f OVERSOLD (threshold %.1f)", rsi, s.config.OversoldThreshold)

		return buySignal(s.Name(), current, confidence, reason, buyStopLossPct, buyTakeProfitPct)

	case rsi > s.config.OverboughtThreshold:
		confidence := capConfidence((rsi-s.config.OverboughtThreshold)/(100-s.config.OverboughtThreshold), 0.9)
		reason := fmt.Sprintf("RSI %.2f OVERBOUGHT (threshold %.1f)", rsi, s.config.OverboughtThreshold)

		return sellSignal(s.Name(), current, confidence, reason, sellStopLossPct, sellTakeProfitPct)

	default:
		return holdSignal(s.Name(), current, 0.4, fmt.Sprintf("RSI %.2f NEUTRAL", rsi))
	}
}
