package indicator

import (
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// MACD implements Moving Average Convergence Divergence.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a MACD indicator with the standard 12/26/9 periods.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   12,
		slowPeriod:   26,
		signalPeriod: 9,
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD. Expects three int parameters: fast
// period, slow period and signal period.
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"macd requires exactly 3 parameters (fast, slow, signal), got %d", len(params))
	}

	periods := make([]int, 3)
	for i, p := range params {
		period, ok := p.(int)
		if !ok {
			return errors.Newf(errors.ErrCodeInvalidType,
				"macd periods must be ints, got %T", p)
		}

		if period < 1 {
			return errors.Newf(errors.ErrCodeInvalidPeriod,
				"macd periods must be at least 1, got %d", period)
		}

		periods[i] = period
	}

	if periods[0] >= periods[1] {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"macd fast period %d must be shorter than slow period %d", periods[0], periods[1])
	}

	m.fastPeriod = periods[0]
	m.slowPeriod = periods[1]
	m.signalPeriod = periods[2]

	return nil
}

// Compute returns a types.MACDResult for the latest bar.
func (m *MACD) Compute(bars []types.MarketData) (any, error) {
	return m.Value(bars)
}

// Value derives the MACD line as fast EMA minus slow EMA over the full
// close series, the signal line as an EMA of the MACD line, and the
// histogram as their difference.
func (m *MACD) Value(bars []types.MarketData) (types.MACDResult, error) {
	if err := requireBars(bars, m.slowPeriod+m.signalPeriod, m.Name()); err != nil {
		return types.MACDResult{}, err
	}

	closeValues := closes(bars)

	fast := emaSeries(closeValues, m.fastPeriod)
	slow := emaSeries(closeValues, m.slowPeriod)

	macdLine := make([]float64, len(closeValues))
	for i := range closeValues {
		macdLine[i] = fast[i] - slow[i]
	}

	signalLine := emaSeries(macdLine, m.signalPeriod)

	last := len(closeValues) - 1

	return types.MACDResult{
		MACD:      macdLine[last],
		Signal:    signalLine[last],
		Histogram: macdLine[last] - signalLine[last],
	}, nil
}
