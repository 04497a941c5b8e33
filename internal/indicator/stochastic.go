package indicator

import (
	"math"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// Stochastic implements the stochastic oscillator with smoothed %K and
// a %D signal line.
type Stochastic struct {
	kPeriod int
	smoothK int
	smoothD int
}

// NewStochastic creates a stochastic oscillator with the standard
// 14/3/3 configuration.
func NewStochastic() Indicator {
	return &Stochastic{
		kPeriod: 14,
		smoothK: 3,
		smoothD: 3,
	}
}

// Name returns the name of the indicator.
func (s *Stochastic) Name() types.IndicatorType {
	return types.IndicatorTypeStochastic
}

// Config configures the oscillator. Expects three int parameters: the
// %K lookback, the %K smoothing window and the %D smoothing window.
func (s *Stochastic) Config(params ...any) error {
	if len(params) != 3 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"stochastic requires exactly 3 parameters (kPeriod, smoothK, smoothD), got %d", len(params))
	}

	periods := make([]int, 3)
	for i, p := range params {
		period, ok := p.(int)
		if !ok {
			return errors.Newf(errors.ErrCodeInvalidType,
				"stochastic periods must be ints, got %T", p)
		}

		if period < 1 {
			return errors.Newf(errors.ErrCodeInvalidPeriod,
				"stochastic periods must be at least 1, got %d", period)
		}

		periods[i] = period
	}

	s.kPeriod = periods[0]
	s.smoothK = periods[1]
	s.smoothD = periods[2]

	return nil
}

// Compute returns a types.StochasticResult for the latest bar.
func (s *Stochastic) Compute(bars []types.MarketData) (any, error) {
	return s.Value(bars)
}

// Value positions each close inside its kPeriod high/low range to form
// raw %K, smooths it over smoothK bars, then averages the smoothed
// series over smoothD bars for %D. A zero high/low range pins raw %K
// at the neutral 50.
func (s *Stochastic) Value(bars []types.MarketData) (types.StochasticResult, error) {
	required := s.kPeriod + s.smoothK + s.smoothD - 2
	if err := requireBars(bars, required, s.Name()); err != nil {
		return types.StochasticResult{}, err
	}

	// Raw %K values for the last smoothK+smoothD-1 bars.
	rawCount := s.smoothK + s.smoothD - 1
	rawK := make([]float64, 0, rawCount)

	for i := len(bars) - rawCount; i < len(bars); i++ {
		window := bars[i-s.kPeriod+1 : i+1]

		highest := math.Inf(-1)
		lowest := math.Inf(1)
		for _, bar := range window {
			highest = math.Max(highest, bar.High)
			lowest = math.Min(lowest, bar.Low)
		}

		if highest == lowest {
			rawK = append(rawK, 50)
			continue
		}

		rawK = append(rawK, 100*(bars[i].Close-lowest)/(highest-lowest))
	}

	smoothedK := make([]float64, 0, s.smoothD)
	for i := s.smoothK - 1; i < len(rawK); i++ {
		smoothedK = append(smoothedK, mean(rawK[i-s.smoothK+1:i+1]))
	}

	return types.StochasticResult{
		PercentK: smoothedK[len(smoothedK)-1],
		PercentD: mean(smoothedK),
	}, nil
}
