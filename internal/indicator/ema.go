package indicator

import (
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// EMA implements the exponential moving average of closing prices.
type EMA struct {
	period int
}

// NewEMA creates an EMA indicator with a default 20 period.
func NewEMA() Indicator {
	return &EMA{
		period: 20,
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA. Expects one int parameter: the period.
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"ema requires exactly 1 parameter (period), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"ema period must be an int, got %T", params[0])
	}

	if period < 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"ema period must be at least 1, got %d", period)
	}

	e.period = period

	return nil
}

// Compute returns the EMA of the series as a float64.
func (e *EMA) Compute(bars []types.MarketData) (any, error) {
	return e.Value(bars)
}

// Value seeds the average with the SMA of the first period closes, then
// folds every later close in with alpha = 2/(period+1).
func (e *EMA) Value(bars []types.MarketData) (float64, error) {
	if err := requireBars(bars, e.period, e.Name()); err != nil {
		return 0, err
	}

	closeValues := closes(bars)
	alpha := 2.0 / float64(e.period+1)

	ema := mean(closeValues[:e.period])
	for i := e.period; i < len(closeValues); i++ {
		ema = closeValues[i]*alpha + ema*(1-alpha)
	}

	return ema, nil
}
