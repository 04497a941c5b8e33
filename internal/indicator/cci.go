package indicator

import (
	"math"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// cciScale is Lambert's constant keeping roughly 70-80 percent of CCI
// values inside [-100, 100].
const cciScale = 0.015

// CCI implements the Commodity Channel Index.
type CCI struct {
	period int
}

// NewCCI creates a CCI indicator with the standard 20 period.
func NewCCI() Indicator {
	return &CCI{
		period: 20,
	}
}

// Name returns the name of the indicator.
func (c *CCI) Name() types.IndicatorType {
	return types.IndicatorTypeCCI
}

// Config configures the CCI. Expects one int parameter: the period.
func (c *CCI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"cci requires exactly 1 parameter (period), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"cci period must be an int, got %T", params[0])
	}

	if period < 2 {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"cci period must be at least 2, got %d", period)
	}

	c.period = period

	return nil
}

// Compute returns the CCI as a float64.
func (c *CCI) Compute(bars []types.MarketData) (any, error) {
	return c.Value(bars)
}

// Value measures how far the latest typical price sits from its period
// mean, scaled by the mean absolute deviation. Zero deviation (a flat
// window) returns 0.
func (c *CCI) Value(bars []types.MarketData) (float64, error) {
	if err := requireBars(bars, c.period, c.Name()); err != nil {
		return 0, err
	}

	window := tail(bars, c.period)

	typical := make([]float64, len(window))
	for i, bar := range window {
		typical[i] = bar.TypicalPrice()
	}

	m := mean(typical)

	meanDeviation := 0.0
	for _, tp := range typical {
		meanDeviation += math.Abs(tp - m)
	}
	meanDeviation /= float64(len(typical))

	if meanDeviation == 0 {
		return 0, nil
	}

	return (typical[len(typical)-1] - m) / (cciScale * meanDeviation), nil
}
