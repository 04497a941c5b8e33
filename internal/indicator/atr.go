package indicator

import (
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// ATR implements the Average True Range with Wilder smoothing.
type ATR struct {
	period int
}

// NewATR creates an ATR indicator with the standard 14 period.
func NewATR() Indicator {
	return &ATR{
		period: 14,
	}
}

// Name returns the name of the indicator.
func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Config configures the ATR. Expects one int parameter: the period.
func (a *ATR) Config(params ...any) error {
	if len(params) != 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"atr requires exactly 1 parameter (period), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"atr period must be an int, got %T", params[0])
	}

	if period < 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"atr period must be at least 1, got %d", period)
	}

	a.period = period

	return nil
}

// Compute returns the ATR of the latest bar as a float64.
func (a *ATR) Compute(bars []types.MarketData) (any, error) {
	return a.Value(bars)
}

// Value seeds the average with a simple mean of the first period true
// ranges, then folds every later bar in with Wilder smoothing.
func (a *ATR) Value(bars []types.MarketData) (float64, error) {
	if err := requireBars(bars, a.period+1, a.Name()); err != nil {
		return 0, err
	}

	trueRanges := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		trueRanges = append(trueRanges, trueRange(bars[i], bars[i-1]))
	}

	atr := mean(trueRanges[:a.period])
	for i := a.period; i < len(trueRanges); i++ {
		atr = (atr*float64(a.period-1) + trueRanges[i]) / float64(a.period)
	}

	return atr, nil
}
