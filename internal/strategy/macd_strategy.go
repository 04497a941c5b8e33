package strategy

import (
	"fmt"

	"github.com/creasty/defaults"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/indicator"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// macdConfidenceScale maps histogram magnitude onto confidence: a
// histogram of 0.001 or more of price units saturates the 0.9 cap.
const macdConfidenceScale = 0.001

// MACDConfig holds the recognized options of the MACD strategy.
type MACDConfig struct {
	// FastPeriod is the short EMA length.
	FastPeriod int `yaml:"fast_period" default:"12" validate:"min=1"`
	// SlowPeriod is the long EMA length.
	SlowPeriod int `yaml:"slow_period" default:"26" validate:"min=1,gtfield=FastPeriod"`
	// SignalPeriod is the EMA length of the signal line.
	SignalPeriod int `yaml:"signal_period" default:"9" validate:"min=1"`
	// BuyThreshold is the histogram level the bullish side must exceed.
	BuyThreshold float64 `yaml:"buy_threshold" default:"0.0001" validate:"gte=0"`
	// SellThreshold is the histogram level the bearish side must break.
	SellThreshold float64 `yaml:"sell_threshold" default:"-0.0001" validate:"lte=0"`
	// MinVolume is the bar volume under which confidence is penalized.
	MinVolume float64 `yaml:"min_volume" default:"100000" validate:"min=0"`
}

// MACDStrategy trades the sign of the MACD histogram.
type MACDStrategy struct {
	engine *indicator.Engine
	config MACDConfig
}

// NewMACDStrategy creates a MACD strategy. Zero-valued config fields
// take their defaults; the default thresholds hold inside a 1e-4
// histogram band around zero so noise does not trade.
func NewMACDStrategy(engine *indicator.Engine, config MACDConfig) (*MACDStrategy, error) {
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "macd strategy defaults", err)
	}

	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "macd strategy config", err)
	}

	return &MACDStrategy{
		engine: engine,
		config: config,
	}, nil
}

// Name returns the strategy identifier.
func (s *MACDStrategy) Name() string {
	return "macd"
}

// Config returns the recognized options and their current values.
func (s *MACDStrategy) Config() map[string]any {
	return map[string]any{
		"fast_period":    s.config.FastPeriod,
		"slow_period":    s.config.SlowPeriod,
		"signal_period":  s.config.SignalPeriod,
		"buy_threshold":  s.config.BuyThreshold,
		"sell_threshold": s.config.SellThreshold,
		"min_volume":     s.config.MinVolume,
	}
}

// Analyze buys a positive histogram and sells a negative one.
// Confidence scales with histogram magnitude and is reduced by 0.7 on
// thin volume.
func (s *MACDStrategy) Analyze(current types.MarketData, history []types.MarketData) types.Signal {
	result, err := s.engine.MACD(current.Symbol, series(current, history),
		s.config.FastPeriod, s.config.SlowPeriod, s.config.SignalPeriod)
	if err != nil {
		return errorHold(s.Name(), current, err)
	}

	histogram := result.Histogram

	if histogram <= s.config.BuyThreshold && histogram >= s.config.SellThreshold {
		return holdSignal(s.Name(), current, 0.3,
			fmt.Sprintf("MACD histogram %.5f NEUTRAL", histogram))
	}

	confidence := capConfidence(abs(histogram)/macdConfidenceScale, 0.9)

	lowVolume := current.Volume < s.config.MinVolume
	if lowVolume {
		confidence *= 0.7
	}

	if histogram > s.config.BuyThreshold {
		reason := fmt.Sprintf("MACD histogram %.5f BULLISH CROSSOVER", histogram)
		if lowVolume {
			reason += ", Low Volume"
		}

		return buySignal(s.Name(), current, confidence, reason, buyStopLossPct, buyTakeProfitPct)
	}

	reason := fmt.Sprintf("MACD histogram %.5f BEARISH CROSSOVER", histogram)
	if lowVolume {
		reason += ", Low Volume"
	}

	return sellSignal(s.Name(), current, confidence, reason, sellStopLossPct, sellTakeProfitPct)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
