package indicator

import (
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// SMA implements the simple moving average of closing prices.
type SMA struct {
	period int
}

// NewSMA creates an SMA indicator with a default 20 period.
func NewSMA() Indicator {
	return &SMA{
		period: 20,
	}
}

// Name returns the name of the indicator.
func (s *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Config configures the SMA. Expects one int parameter: the period.
func (s *SMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"sma requires exactly 1 parameter (period), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"sma period must be an int, got %T", params[0])
	}

	if period < 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"sma period must be at least 1, got %d", period)
	}

	s.period = period

	return nil
}

// Compute returns the SMA of the latest window as a float64.
func (s *SMA) Compute(bars []types.MarketData) (any, error) {
	return s.Value(bars)
}

// Value calculates the arithmetic mean of the last period closes.
func (s *SMA) Value(bars []types.MarketData) (float64, error) {
	if err := requireBars(bars, s.period, s.Name()); err != nil {
		return 0, err
	}

	return mean(closes(tail(bars, s.period))), nil
}
