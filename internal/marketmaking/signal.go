package marketmaking

import (
	"time"

	"github.com/moznion/go-optional"
)

// ASSignal is a two-sided quote produced by the Avellaneda-Stoikov
// quoter. Invalid signals carry zeroed prices and quantities,
// confidence 0 and the reason the construction failed; they are data,
// not errors.
type ASSignal struct {
	Symbol string    `yaml:"symbol" json:"symbol"`
	Time   time.Time `yaml:"time" json:"time"`

	BidPrice    float64 `yaml:"bid_price" json:"bid_price"`
	AskPrice    float64 `yaml:"ask_price" json:"ask_price"`
	BidQuantity float64 `yaml:"bid_quantity" json:"bid_quantity"`
	AskQuantity float64 `yaml:"ask_quantity" json:"ask_quantity"`

	// ReservationPrice is the inventory-adjusted fair value the quote
	// is centered on.
	ReservationPrice optional.Option[float64] `yaml:"reservation_price" json:"reservation_price"`
	// OptimalSpread is the unclamped model spread in price units.
	OptimalSpread optional.Option[float64] `yaml:"optimal_spread" json:"optimal_spread"`
	// CurrentInventory is the inventory the quote was computed against.
	CurrentInventory optional.Option[float64] `yaml:"current_inventory" json:"current_inventory"`

	Confidence float64 `yaml:"confidence" json:"confidence"`

	IsValid       bool                    `yaml:"is_valid" json:"is_valid"`
	InvalidReason optional.Option[string] `yaml:"invalid_reason" json:"invalid_reason"`
}

// InvalidASSignal builds the explicit invalid quote used on every
// failed construction path.
func InvalidASSignal(symbol string, t time.Time, reason string) ASSignal {
	return ASSignal{
		Symbol:        symbol,
		Time:          t,
		IsValid:       false,
		InvalidReason: optional.Some(reason),
	}
}

// Spread returns the quoted spread in price units.
func (s ASSignal) Spread() float64 {
	return s.AskPrice - s.BidPrice
}

// MidPrice returns the midpoint of the quote.
func (s ASSignal) MidPrice() float64 {
	return (s.BidPrice + s.AskPrice) / 2
}

// SpreadBps returns the quoted spread in basis points of the quote
// mid, 0 when the mid is not positive.
func (s ASSignal) SpreadBps() float64 {
	mid := s.MidPrice()
	if mid <= 0 {
		return 0
	}

	return s.Spread() / mid * 10000
}

// TotalNotional returns the combined notional of both resting quotes.
func (s ASSignal) TotalNotional() float64 {
	return s.BidPrice*s.BidQuantity + s.AskPrice*s.AskQuantity
}

// ValidateForExecution reports whether the quote is postable: positive
// prices and quantities, an uncrossed market, and a spread inside the
// given basis-point bounds.
func (s ASSignal) ValidateForExecution(minSpreadBps, maxSpreadBps float64) bool {
	if s.BidPrice <= 0 || s.AskPrice <= 0 {
		return false
	}

	if s.BidQuantity <= 0 || s.AskQuantity <= 0 {
		return false
	}

	if s.BidPrice >= s.AskPrice {
		return false
	}

	spreadBps := s.SpreadBps()

	return spreadBps >= minSpreadBps && spreadBps <= maxSpreadBps
}
