package indicator

import (
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// RSI implements the Relative Strength Index with Wilder smoothing.
type RSI struct {
	period int
}

// NewRSI creates an RSI indicator with the standard 14 period.
func NewRSI() Indicator {
	return &RSI{
		period: 14,
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI. Expects one int parameter: the period.
func (r *RSI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"rsi requires exactly 1 parameter (period), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"rsi period must be an int, got %T", params[0])
	}

	if period < 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"rsi period must be at least 1, got %d", period)
	}

	r.period = period

	return nil
}

// Compute returns the RSI of the latest bar as a float64 in [0, 100].
func (r *RSI) Compute(bars []types.MarketData) (any, error) {
	return r.Value(bars)
}

// Value calculates the RSI over the bar series. The first average uses
// a simple mean of the first period's gains and losses; every later
// bar folds in with Wilder smoothing. A series with no losses pegs the
// index at 100.
func (r *RSI) Value(bars []types.MarketData) (float64, error) {
	if err := requireBars(bars, r.period+1, r.Name()); err != nil {
		return 0, err
	}

	closeValues := closes(bars)

	gains := make([]float64, 0, len(closeValues)-1)
	losses := make([]float64, 0, len(closeValues)-1)

	for i := 1; i < len(closeValues); i++ {
		change := closeValues[i] - closeValues[i-1]
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}

	avgGain := mean(gains[:r.period])
	avgLoss := mean(losses[:r.period])

	for i := r.period; i < len(gains); i++ {
		avgGain = (avgGain*float64(r.period-1) + gains[i]) / float64(r.period)
		avgLoss = (avgLoss*float64(r.period-1) + losses[i]) / float64(r.period)
	}

	if avgLoss == 0 {
		return 100, nil
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs), nil
}
