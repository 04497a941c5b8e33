package indicator

import (
	"math"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// ADX implements the Average Directional Index with both directional
// indicator lines.
type ADX struct {
	period int
}

// NewADX creates an ADX indicator with the standard 14 period.
func NewADX() Indicator {
	return &ADX{
		period: 14,
	}
}

// Name returns the name of the indicator.
func (a *ADX) Name() types.IndicatorType {
	return types.IndicatorTypeADX
}

// Config configures the ADX. Expects one int parameter: the period.
func (a *ADX) Config(params ...any) error {
	if len(params) != 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"adx requires exactly 1 parameter (period), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"adx period must be an int, got %T", params[0])
	}

	if period < 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"adx period must be at least 1, got %d", period)
	}

	a.period = period

	return nil
}

// Compute returns a types.ADXResult for the latest bar.
func (a *ADX) Compute(bars []types.MarketData) (any, error) {
	return a.Value(bars)
}

// Value runs the Wilder directional-movement recursion: +DM/-DM and
// true range are Wilder-smoothed into +DI/-DI, each bar's DX is
// derived from the DI spread, and the ADX is the Wilder-smoothed DX.
// Needs 2*period+1 bars so the DX average has a full period to seed.
func (a *ADX) Value(bars []types.MarketData) (types.ADXResult, error) {
	if err := requireBars(bars, 2*a.period+1, a.Name()); err != nil {
		return types.ADXResult{}, err
	}

	n := len(bars) - 1
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	trueRanges := make([]float64, n)

	for i := 1; i < len(bars); i++ {
		upMove := bars[i].High - bars[i-1].High
		downMove := bars[i-1].Low - bars[i].Low

		if upMove > downMove && upMove > 0 {
			plusDM[i-1] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i-1] = downMove
		}

		trueRanges[i-1] = trueRange(bars[i], bars[i-1])
	}

	period := float64(a.period)

	smoothPlus := mean(plusDM[:a.period]) * period
	smoothMinus := mean(minusDM[:a.period]) * period
	smoothTR := mean(trueRanges[:a.period]) * period

	di := func(dm, tr float64) float64 {
		if tr == 0 {
			return 0
		}
		return 100 * dm / tr
	}

	dx := func(plusDI, minusDI float64) float64 {
		if plusDI+minusDI == 0 {
			return 0
		}
		return 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
	}

	plusDI := di(smoothPlus, smoothTR)
	minusDI := di(smoothMinus, smoothTR)

	dxValues := []float64{dx(plusDI, minusDI)}

	for i := a.period; i < n; i++ {
		smoothPlus = smoothPlus - smoothPlus/period + plusDM[i]
		smoothMinus = smoothMinus - smoothMinus/period + minusDM[i]
		smoothTR = smoothTR - smoothTR/period + trueRanges[i]

		plusDI = di(smoothPlus, smoothTR)
		minusDI = di(smoothMinus, smoothTR)
		dxValues = append(dxValues, dx(plusDI, minusDI))
	}

	adx := mean(dxValues[:a.period])
	for i := a.period; i < len(dxValues); i++ {
		adx = (adx*(period-1) + dxValues[i]) / period
	}

	return types.ADXResult{
		ADX:     adx,
		PlusDI:  plusDI,
		MinusDI: minusDI,
	}, nil
}
