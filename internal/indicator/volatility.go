package indicator

import (
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// Volatility measures the standard deviation of fractional
// bar-over-bar returns.
type Volatility struct {
	period int
}

// NewVolatility creates a Volatility indicator with a default 10 period.
func NewVolatility() Indicator {
	return &Volatility{
		period: 10,
	}
}

// Name returns the name of the indicator.
func (v *Volatility) Name() types.IndicatorType {
	return types.IndicatorTypeVolatility
}

// Config configures the volatility window. Expects one int parameter:
// the number of returns to measure.
func (v *Volatility) Config(params ...any) error {
	if len(params) != 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"volatility requires exactly 1 parameter (period), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"volatility period must be an int, got %T", params[0])
	}

	if period < 2 {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"volatility period must be at least 2, got %d", period)
	}

	v.period = period

	return nil
}

// Compute returns the return volatility as a float64 fraction.
func (v *Volatility) Compute(bars []types.MarketData) (any, error) {
	return v.Value(bars)
}

// Value calculates the population standard deviation of the last
// period fractional returns. A flat series yields 0.
func (v *Volatility) Value(bars []types.MarketData) (float64, error) {
	if err := requireBars(bars, v.period+1, v.Name()); err != nil {
		return 0, err
	}

	returns := periodReturns(closes(tail(bars, v.period+1)))

	return populationStdDev(returns), nil
}
