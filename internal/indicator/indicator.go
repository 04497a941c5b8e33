package indicator

import (
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
)

// Indicator is the contract every technical indicator implements.
// Indicators are pure: Compute derives its result from the ordered bar
// series alone and touches no shared state.
type Indicator interface {
	// Name returns the name of the indicator.
	Name() types.IndicatorType
	// Config configures the indicator parameters. Each implementation
	// documents the parameters it expects.
	Config(params ...any) error
	// Compute calculates the indicator over an ordered bar series
	// (oldest first). Scalar indicators return float64; MACD,
	// Stochastic, ADX and Bollinger Bands return their result structs.
	Compute(bars []types.MarketData) (any, error)
}
