package indicator

import (
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// BollingerBands implements the classic SMA plus/minus a standard
// deviation envelope.
type BollingerBands struct {
	period     int
	multiplier float64
}

// NewBollingerBands creates a Bollinger Bands indicator with the
// standard 20 period and 2.0 multiplier.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		period:     20,
		multiplier: 2.0,
	}
}

// Name returns the name of the indicator.
func (b *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Config configures the bands. Expects an int period and a float64
// standard deviation multiplier.
func (b *BollingerBands) Config(params ...any) error {
	if len(params) != 2 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"bollinger_bands requires exactly 2 parameters (period, multiplier), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"bollinger_bands period must be an int, got %T", params[0])
	}

	if period < 2 {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"bollinger_bands period must be at least 2, got %d", period)
	}

	multiplier, ok := params[1].(float64)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"bollinger_bands multiplier must be a float64, got %T", params[1])
	}

	if multiplier <= 0 {
		return errors.Newf(errors.ErrCodeInvalidMultiplier,
			"bollinger_bands multiplier must be positive, got %f", multiplier)
	}

	b.period = period
	b.multiplier = multiplier

	return nil
}

// Compute returns a types.BollingerBandsResult for the latest window.
func (b *BollingerBands) Compute(bars []types.MarketData) (any, error) {
	return b.Value(bars)
}

// Value centers the bands on the SMA of the last period closes and
// offsets each band by multiplier standard deviations.
func (b *BollingerBands) Value(bars []types.MarketData) (types.BollingerBandsResult, error) {
	if err := requireBars(bars, b.period, b.Name()); err != nil {
		return types.BollingerBandsResult{}, err
	}

	window := closes(tail(bars, b.period))

	middle := mean(window)
	offset := b.multiplier * populationStdDev(window)

	return types.BollingerBandsResult{
		Upper:  middle + offset,
		Middle: middle,
		Lower:  middle - offset,
	}, nil
}
