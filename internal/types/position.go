package types

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
)

// PositionSide is the direction of an open position. Buy means long,
// Sell means short.
type PositionSide string

const (
	PositionSideBuy  PositionSide = "BUY"
	PositionSideSell PositionSide = "SELL"
)

// Position represents current holdings of an asset on one exchange.
// It is opened by an external fill event, updated on price ticks and
// partial fills, and closed externally when quantity reaches zero.
// All PnL values are derived on access and never cached.
type Position struct {
	Symbol       string                   `yaml:"symbol" json:"symbol"`
	Exchange     string                   `yaml:"exchange" json:"exchange"`
	Side         PositionSide             `yaml:"side" json:"side"`
	Quantity     float64                  `yaml:"quantity" json:"quantity"`
	EntryPrice   float64                  `yaml:"entry_price" json:"entry_price"`
	CurrentPrice float64                  `yaml:"current_price" json:"current_price"`
	StopLoss     optional.Option[float64] `yaml:"stop_loss" json:"stop_loss"`
	TakeProfit   optional.Option[float64] `yaml:"take_profit" json:"take_profit"`
	OpenedAt     time.Time                `yaml:"opened_at" json:"opened_at"`
	UpdatedAt    time.Time                `yaml:"updated_at" json:"updated_at"`
	StrategyID   optional.Option[string]  `yaml:"strategy_id" json:"strategy_id"`
	OpenOrderID  optional.Option[string]  `yaml:"open_order_id" json:"open_order_id"`
}

// IsLong reports whether the position is long.
func (p Position) IsLong() bool {
	return p.Side == PositionSideBuy
}

// EntryValue returns quantity * entry price.
func (p Position) EntryValue() float64 {
	return p.Quantity * p.EntryPrice
}

// CurrentValue returns quantity * current price.
func (p Position) CurrentValue() float64 {
	return p.Quantity * p.CurrentPrice
}

// UnrealizedPnL returns (current-entry)*qty for long positions and
// (entry-current)*qty for short positions.
func (p Position) UnrealizedPnL() float64 {
	entry := decimal.NewFromFloat(p.EntryPrice)
	current := decimal.NewFromFloat(p.CurrentPrice)
	qty := decimal.NewFromFloat(p.Quantity)

	var pnl decimal.Decimal
	if p.IsLong() {
		pnl = current.Sub(entry).Mul(qty)
	} else {
		pnl = entry.Sub(current).Mul(qty)
	}

	return pnl.InexactFloat64()
}

// UnrealizedPnLPercent returns the unrealized PnL as a percentage of
// the entry value. A position with zero entry price yields 0.
func (p Position) UnrealizedPnLPercent() float64 {
	if p.EntryPrice == 0 || p.Quantity == 0 {
		return 0
	}

	pnl := decimal.NewFromFloat(p.UnrealizedPnL())
	entryValue := decimal.NewFromFloat(p.EntryValue())

	return pnl.Div(entryValue).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// IsStopLossHit reports whether the current price has reached the stop
// loss: at or below it for longs, at or above it for shorts. Positions
// without a stop loss never report a hit.
func (p Position) IsStopLossHit() bool {
	if p.StopLoss.IsNone() {
		return false
	}

	stop := p.StopLoss.Unwrap()
	if p.IsLong() {
		return p.CurrentPrice <= stop
	}

	return p.CurrentPrice >= stop
}

// IsTakeProfitHit reports whether the current price has reached the
// take profit: at or above it for longs, at or below it for shorts.
func (p Position) IsTakeProfitHit() bool {
	if p.TakeProfit.IsNone() {
		return false
	}

	target := p.TakeProfit.Unwrap()
	if p.IsLong() {
		return p.CurrentPrice >= target
	}

	return p.CurrentPrice <= target
}
