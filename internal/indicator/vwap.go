package indicator

import (
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// VWAP implements the volume-weighted average price over a rolling
// window of bars.
type VWAP struct {
	period int
}

// NewVWAP creates a VWAP indicator with a default 20 period.
func NewVWAP() Indicator {
	return &VWAP{
		period: 20,
	}
}

// Name returns the name of the indicator.
func (v *VWAP) Name() types.IndicatorType {
	return types.IndicatorTypeVWAP
}

// Config configures the VWAP. Expects one int parameter: the period.
func (v *VWAP) Config(params ...any) error {
	if len(params) != 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"vwap requires exactly 1 parameter (period), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"vwap period must be an int, got %T", params[0])
	}

	if period < 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"vwap period must be at least 1, got %d", period)
	}

	v.period = period

	return nil
}

// Compute returns the VWAP of the window as a float64.
func (v *VWAP) Compute(bars []types.MarketData) (any, error) {
	return v.Value(bars)
}

// Value weights each bar's typical price by its volume. A window with
// zero total volume falls back to the mean of typical prices.
func (v *VWAP) Value(bars []types.MarketData) (float64, error) {
	if err := requireBars(bars, v.period, v.Name()); err != nil {
		return 0, err
	}

	window := tail(bars, v.period)

	weighted := 0.0
	totalVolume := 0.0

	for _, bar := range window {
		weighted += bar.TypicalPrice() * bar.Volume
		totalVolume += bar.Volume
	}

	if totalVolume == 0 {
		typical := make([]float64, len(window))
		for i, bar := range window {
			typical[i] = bar.TypicalPrice()
		}

		return mean(typical), nil
	}

	return weighted / totalVolume, nil
}
