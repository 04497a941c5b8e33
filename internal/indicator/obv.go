package indicator

import (
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// OBV implements cumulative On-Balance Volume.
type OBV struct{}

// NewOBV creates an OBV indicator. OBV has no parameters.
func NewOBV() Indicator {
	return &OBV{}
}

// Name returns the name of the indicator.
func (o *OBV) Name() types.IndicatorType {
	return types.IndicatorTypeOBV
}

// Config rejects all parameters: OBV is parameterless.
func (o *OBV) Config(params ...any) error {
	if len(params) != 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"obv takes no parameters, got %d", len(params))
	}

	return nil
}

// Compute returns the cumulative OBV as a float64.
func (o *OBV) Compute(bars []types.MarketData) (any, error) {
	return o.Value(bars)
}

// Value accumulates volume signed by the close-over-close direction,
// starting from zero at the first bar. Unchanged closes add nothing.
func (o *OBV) Value(bars []types.MarketData) (float64, error) {
	if err := requireBars(bars, 2, o.Name()); err != nil {
		return 0, err
	}

	obv := 0.0
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			obv += bars[i].Volume
		case bars[i].Close < bars[i-1].Close:
			obv -= bars[i].Volume
		}
	}

	return obv, nil
}
