package indicator

import (
	"math"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// WilliamsR implements the Williams %R momentum oscillator.
type WilliamsR struct {
	period int
}

// NewWilliamsR creates a Williams %R indicator with the standard 14
// period.
func NewWilliamsR() Indicator {
	return &WilliamsR{
		period: 14,
	}
}

// Name returns the name of the indicator.
func (w *WilliamsR) Name() types.IndicatorType {
	return types.IndicatorTypeWilliamsR
}

// Config configures the oscillator. Expects one int parameter: the
// period.
func (w *WilliamsR) Config(params ...any) error {
	if len(params) != 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"williams_r requires exactly 1 parameter (period), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"williams_r period must be an int, got %T", params[0])
	}

	if period < 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"williams_r period must be at least 1, got %d", period)
	}

	w.period = period

	return nil
}

// Compute returns Williams %R as a float64 in [-100, 0].
func (w *WilliamsR) Compute(bars []types.MarketData) (any, error) {
	return w.Value(bars)
}

// Value positions the latest close inside the period high/low range,
// mapped onto [-100, 0]. A zero range returns the midpoint -50.
func (w *WilliamsR) Value(bars []types.MarketData) (float64, error) {
	if err := requireBars(bars, w.period, w.Name()); err != nil {
		return 0, err
	}

	window := tail(bars, w.period)

	highest := math.Inf(-1)
	lowest := math.Inf(1)
	for _, bar := range window {
		highest = math.Max(highest, bar.High)
		lowest = math.Min(lowest, bar.Low)
	}

	if highest == lowest {
		return -50, nil
	}

	latest := window[len(window)-1].Close

	return -100 * (highest - latest) / (highest - lowest), nil
}
