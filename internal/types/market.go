package types

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// MarketData represents a single OHLCV candle for a symbol.
// Instances are produced by the external ingestion layer and are
// immutable once created.
type MarketData struct {
	Symbol string    `yaml:"symbol" json:"symbol" validate:"required"`
	Time   time.Time `yaml:"time" json:"time" validate:"required"`
	Open   float64   `yaml:"open" json:"open" validate:"gt=0"`
	High   float64   `yaml:"high" json:"high" validate:"gt=0"`
	Low    float64   `yaml:"low" json:"low" validate:"gt=0"`
	Close  float64   `yaml:"close" json:"close" validate:"gt=0"`
	Volume float64   `yaml:"volume" json:"volume" validate:"gte=0"`
}

// TypicalPrice returns (high + low + close) / 3.
func (m MarketData) TypicalPrice() float64 {
	return (m.High + m.Low + m.Close) / 3
}

// Range returns the high-low range of the bar.
func (m MarketData) Range() float64 {
	return m.High - m.Low
}

// Validate checks the structural tags plus the OHLC relationships:
// high >= max(open, close) and low <= min(open, close).
func (m *MarketData) Validate() error {
	validate := validator.New()
	if err := validate.Struct(m); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidBar, "invalid market data", err)
	}

	if m.High < m.Open || m.High < m.Close {
		return errors.Newf(errors.ErrCodeInvalidBar,
			"high %.8f is below open %.8f or close %.8f for %s", m.High, m.Open, m.Close, m.Symbol)
	}

	if m.Low > m.Open || m.Low > m.Close {
		return errors.Newf(errors.ErrCodeInvalidBar,
			"low %.8f is above open %.8f or close %.8f for %s", m.Low, m.Open, m.Close, m.Symbol)
	}

	return nil
}

// ValidateSeries checks that a bar series is non-empty, single-symbol,
// and strictly increasing in time. Indicator inputs must satisfy this.
func ValidateSeries(bars []MarketData) error {
	if len(bars) == 0 {
		return errors.New(errors.ErrCodeEmptySeries, "empty market data series")
	}

	symbol := bars[0].Symbol
	for i := 1; i < len(bars); i++ {
		if bars[i].Symbol != symbol {
			return errors.Newf(errors.ErrCodeUnorderedSeries,
				"mixed symbols in series: %s and %s", symbol, bars[i].Symbol)
		}

		if !bars[i].Time.After(bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeUnorderedSeries,
				"series for %s is not strictly increasing at index %d", symbol, i)
		}
	}

	return nil
}
