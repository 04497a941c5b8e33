package indicator

import (
	"math"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// requireBars enforces the minimum-input contract shared by all
// indicators. Too few bars is a caller error and is never defaulted.
func requireBars(bars []types.MarketData, required int, name types.IndicatorType) error {
	if len(bars) >= required {
		return nil
	}

	symbol := ""
	if len(bars) > 0 {
		symbol = bars[0].Symbol
	}

	return errors.NewInsufficientDataErrorf(required, len(bars), symbol,
		"%s requires at least %d bars, got %d", name, required, len(bars))
}

func closes(bars []types.MarketData) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}

	return out
}

// tail returns the last n elements of bars.
func tail(bars []types.MarketData, n int) []types.MarketData {
	if n >= len(bars) {
		return bars
	}

	return bars[len(bars)-n:]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// populationStdDev returns the population standard deviation of values.
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	m := mean(values)
	variance := 0.0

	for _, v := range values {
		d := v - m
		variance += d * d
	}

	return math.Sqrt(variance / float64(len(values)))
}

// periodReturns converts a close series into period-over-period
// fractional returns.
func periodReturns(closeValues []float64) []float64 {
	if len(closeValues) < 2 {
		return nil
	}

	out := make([]float64, 0, len(closeValues)-1)
	for i := 1; i < len(closeValues); i++ {
		if closeValues[i-1] == 0 {
			out = append(out, 0)
			continue
		}

		out = append(out, (closeValues[i]-closeValues[i-1])/closeValues[i-1])
	}

	return out
}

// emaSeries computes the full EMA series with alpha = 2/(period+1),
// seeded at the first value. This matches the pandas ewm recursion with
// adjust=false that the MACD composition relies on.
func emaSeries(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}

	alpha := 2.0 / float64(period+1)
	out := make([]float64, len(values))
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = values[i]*alpha + out[i-1]*(1-alpha)
	}

	return out
}

// trueRange returns the true range of bar i given its predecessor:
// max(high-low, |high-prevClose|, |low-prevClose|).
func trueRange(cur, prev types.MarketData) float64 {
	hl := cur.High - cur.Low
	hc := math.Abs(cur.High - prev.Close)
	lc := math.Abs(cur.Low - prev.Close)

	return math.Max(hl, math.Max(hc, lc))
}
