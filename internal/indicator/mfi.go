package indicator

import (
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// MFI implements the Money Flow Index, a volume-weighted RSI analogue.
type MFI struct {
	period int
}

// NewMFI creates an MFI indicator with the standard 14 period.
func NewMFI() Indicator {
	return &MFI{
		period: 14,
	}
}

// Name returns the name of the indicator.
func (m *MFI) Name() types.IndicatorType {
	return types.IndicatorTypeMFI
}

// Config configures the MFI. Expects one int parameter: the period.
func (m *MFI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"mfi requires exactly 1 parameter (period), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidType,
			"mfi period must be an int, got %T", params[0])
	}

	if period < 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"mfi period must be at least 1, got %d", period)
	}

	m.period = period

	return nil
}

// Compute returns the MFI of the latest bar as a float64 in [0, 100].
func (m *MFI) Compute(bars []types.MarketData) (any, error) {
	return m.Value(bars)
}

// Value classifies each bar's raw money flow (typical price times
// volume) as positive or negative by the direction of typical price,
// then maps the flow ratio onto [0, 100]. A window with no flow in
// either direction returns the neutral 50.
func (m *MFI) Value(bars []types.MarketData) (float64, error) {
	if err := requireBars(bars, m.period+1, m.Name()); err != nil {
		return 0, err
	}

	window := tail(bars, m.period+1)

	positiveFlow := 0.0
	negativeFlow := 0.0

	for i := 1; i < len(window); i++ {
		tp := window[i].TypicalPrice()
		prevTP := window[i-1].TypicalPrice()
		flow := tp * window[i].Volume

		switch {
		case tp > prevTP:
			positiveFlow += flow
		case tp < prevTP:
			negativeFlow += flow
		}
	}

	if positiveFlow+negativeFlow == 0 {
		return 50, nil
	}

	if negativeFlow == 0 {
		return 100, nil
	}

	ratio := positiveFlow / negativeFlow

	return 100 - 100/(1+ratio), nil
}
