package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// SignalAction is the trading decision produced by a strategy.
type SignalAction string

const (
	SignalActionBuy  SignalAction = "BUY"
	SignalActionSell SignalAction = "SELL"
	SignalActionHold SignalAction = "HOLD"
)

// Signal is a single strategy decision for a symbol at a point in time.
// Signals are produced fresh per evaluation and are never persisted by
// this module.
type Signal struct {
	// Symbol is the symbol the signal applies to.
	Symbol string `yaml:"symbol" json:"symbol"`
	// Time is the market time of the bar that produced the signal.
	Time time.Time `yaml:"time" json:"time"`
	// Action is the trading decision.
	Action SignalAction `yaml:"action" json:"action"`
	// Confidence is in [0, 1]. Error-degraded signals carry 0.
	Confidence float64 `yaml:"confidence" json:"confidence"`
	// Reason is a human-readable explanation of the decision.
	Reason string `yaml:"reason" json:"reason"`
	// Strategy is the name of the strategy that produced the signal.
	Strategy string `yaml:"strategy" json:"strategy"`
	// EntryPrice is the suggested entry, normally the bar close.
	EntryPrice float64 `yaml:"entry_price" json:"entry_price"`
	// StopLoss is the suggested stop price. Not set on Hold.
	StopLoss optional.Option[float64] `yaml:"stop_loss" json:"stop_loss"`
	// TakeProfit is the suggested take-profit price. Not set on Hold.
	TakeProfit optional.Option[float64] `yaml:"take_profit" json:"take_profit"`
}

// IsActionable reports whether the signal asks for an order.
func (s Signal) IsActionable() bool {
	return s.Action == SignalActionBuy || s.Action == SignalActionSell
}
