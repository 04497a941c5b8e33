package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// DefaultDepthLevels is the number of levels aggregated by the
// depth/imbalance metrics when callers do not specify one.
const DefaultDepthLevels = 5

// OrderBookLevel is a single price level of a level-2 order book.
type OrderBookLevel struct {
	Price    float64 `yaml:"price" json:"price"`
	Quantity float64 `yaml:"quantity" json:"quantity"`
	// OrderCount is the number of resting orders at this level, when
	// the feed provides it.
	OrderCount optional.Option[int] `yaml:"order_count" json:"order_count"`
}

// Value returns the notional value at this level (price * quantity).
func (l OrderBookLevel) Value() float64 {
	return l.Price * l.Quantity
}

// OrderBookSnapshot is a validated level-2 snapshot for one symbol on
// one exchange. Bids are sorted by price descending, asks ascending.
// All derived metrics are pure functions of the snapshot.
type OrderBookSnapshot struct {
	Symbol   string           `yaml:"symbol" json:"symbol"`
	Exchange string           `yaml:"exchange" json:"exchange"`
	Time     time.Time        `yaml:"time" json:"time"`
	Bids     []OrderBookLevel `yaml:"bids" json:"bids"`
	Asks     []OrderBookLevel `yaml:"asks" json:"asks"`
}

// BestBid returns the highest bid price, 0 when the bid side is empty.
func (b OrderBookSnapshot) BestBid() float64 {
	if len(b.Bids) == 0 {
		return 0
	}

	return b.Bids[0].Price
}

// BestAsk returns the lowest ask price, 0 when the ask side is empty.
func (b OrderBookSnapshot) BestAsk() float64 {
	if len(b.Asks) == 0 {
		return 0
	}

	return b.Asks[0].Price
}

// Spread returns the absolute bid-ask spread.
func (b OrderBookSnapshot) Spread() float64 {
	return b.BestAsk() - b.BestBid()
}

// MidPrice returns the simple average of best bid and best ask.
func (b OrderBookSnapshot) MidPrice() float64 {
	return (b.BestBid() + b.BestAsk()) / 2
}

// SpreadPercent returns the spread as a fraction of the mid price.
func (b OrderBookSnapshot) SpreadPercent() float64 {
	mid := b.MidPrice()
	if mid <= 0 {
		return 0
	}

	return b.Spread() / mid
}

// Microprice returns the volume-weighted mid price using opposite-side
// top-of-book quantities as weights:
//
//	(bestBid*askQty + bestAsk*bidQty) / (bidQty + askQty)
//
// It falls back to the mid price when either side is empty or both
// top-of-book quantities are zero.
func (b OrderBookSnapshot) Microprice() float64 {
	if len(b.Bids) == 0 || len(b.Asks) == 0 {
		return b.MidPrice()
	}

	bidQty := b.Bids[0].Quantity
	askQty := b.Asks[0].Quantity

	if bidQty+askQty == 0 {
		return b.MidPrice()
	}

	return (b.BestBid()*askQty + b.BestAsk()*bidQty) / (bidQty + askQty)
}

// BidDepth returns the total notional value of the top N bid levels.
func (b OrderBookSnapshot) BidDepth(levels int) float64 {
	total := 0.0
	for _, l := range topLevels(b.Bids, levels) {
		total += l.Value()
	}

	return total
}

// AskDepth returns the total notional value of the top N ask levels.
func (b OrderBookSnapshot) AskDepth(levels int) float64 {
	total := 0.0
	for _, l := range topLevels(b.Asks, levels) {
		total += l.Value()
	}

	return total
}

// TotalDepth returns the combined bid and ask depth over the top N levels.
func (b OrderBookSnapshot) TotalDepth(levels int) float64 {
	return b.BidDepth(levels) + b.AskDepth(levels)
}

// OrderBookImbalance returns (bidVolume - askVolume) / (bidVolume + askVolume)
// over the top N levels. The result is in [-1, 1]; positive means buy
// pressure. A book with zero total volume yields 0.
func (b OrderBookSnapshot) OrderBookImbalance(levels int) float64 {
	bidVolume := totalQuantity(b.Bids, levels)
	askVolume := totalQuantity(b.Asks, levels)

	if bidVolume+askVolume == 0 {
		return 0
	}

	return (bidVolume - askVolume) / (bidVolume + askVolume)
}

// WeightedMidPrice returns the volume-weighted mid across the top N
// levels, weighting each side's average price by the opposite side's
// quantity. A book with zero total volume yields the plain mid price.
func (b OrderBookSnapshot) WeightedMidPrice(levels int) float64 {
	bidVolume := totalQuantity(b.Bids, levels)
	askVolume := totalQuantity(b.Asks, levels)

	if bidVolume+askVolume == 0 {
		return b.MidPrice()
	}

	bidPrice := b.BestBid()
	if bidVolume > 0 {
		weighted := 0.0
		for _, l := range topLevels(b.Bids, levels) {
			weighted += l.Price * l.Quantity
		}

		bidPrice = weighted / bidVolume
	}

	askPrice := b.BestAsk()
	if askVolume > 0 {
		weighted := 0.0
		for _, l := range topLevels(b.Asks, levels) {
			weighted += l.Price * l.Quantity
		}

		askPrice = weighted / askVolume
	}

	return (bidPrice*askVolume + askPrice*bidVolume) / (bidVolume + askVolume)
}

// IsValid reports whether the snapshot is well formed: both sides
// non-empty, bids strictly descending, asks strictly ascending, and
// best bid strictly below best ask.
func (b OrderBookSnapshot) IsValid() bool {
	if len(b.Bids) == 0 || len(b.Asks) == 0 {
		return false
	}

	if b.BestBid() >= b.BestAsk() {
		return false
	}

	for i := 1; i < len(b.Bids); i++ {
		if b.Bids[i].Price >= b.Bids[i-1].Price {
			return false
		}
	}

	for i := 1; i < len(b.Asks); i++ {
		if b.Asks[i].Price <= b.Asks[i-1].Price {
			return false
		}
	}

	return true
}

func topLevels(levels []OrderBookLevel, n int) []OrderBookLevel {
	if n <= 0 {
		n = DefaultDepthLevels
	}

	if n > len(levels) {
		n = len(levels)
	}

	return levels[:n]
}

func totalQuantity(levels []OrderBookLevel, n int) float64 {
	total := 0.0
	for _, l := range topLevels(levels, n) {
		total += l.Quantity
	}

	return total
}
