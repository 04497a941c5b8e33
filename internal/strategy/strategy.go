package strategy

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
)

// Stop-loss and take-profit multipliers shared by the mean-reversion
// strategies (RSI, MACD, MFI).
const (
	buyStopLossPct    = 0.97
	buyTakeProfitPct  = 1.06
	sellStopLossPct   = 1.03
	sellTakeProfitPct = 0.94
)

var validate = validator.New()

// Strategy analyzes the current bar against its history and produces a
// Signal. Analyze is total: every internal failure degrades to a Hold
// signal with zero confidence, it never returns an error and never
// panics past the evaluator boundary.
type Strategy interface {
	// Name returns the strategy identifier used in emitted signals.
	Name() string
	// Config returns the recognized options and their current values.
	Config() map[string]any
	// Analyze evaluates the current bar against the historical series
	// (oldest first, all strictly before the current bar).
	Analyze(current types.MarketData, history []types.MarketData) types.Signal
}

// series appends the current bar to the historical series, which is the
// window every indicator computation runs over.
func series(current types.MarketData, history []types.MarketData) []types.MarketData {
	out := make([]types.MarketData, 0, len(history)+1)
	out = append(out, history...)
	out = append(out, current)

	return out
}

func holdSignal(name string, bar types.MarketData, confidence float64, reason string) types.Signal {
	return types.Signal{
		Symbol:     bar.Symbol,
		Time:       bar.Time,
		Action:     types.SignalActionHold,
		Confidence: confidence,
		Reason:     reason,
		Strategy:   name,
		EntryPrice: bar.Close,
	}
}

// errorHold is the degraded signal every strategy returns when an
// internal computation fails. The reason always carries the "Error"
// marker so downstream consumers can distinguish degraded holds from
// deliberate ones.
func errorHold(name string, bar types.MarketData, err error) types.Signal {
	return holdSignal(name, bar, 0, fmt.Sprintf("Error: %v", err))
}

func buySignal(name string, bar types.MarketData, confidence float64, reason string, stopLossPct, takeProfitPct float64) types.Signal {
	return types.Signal{
		Symbol:     bar.Symbol,
		Time:       bar.Time,
		Action:     types.SignalActionBuy,
		Confidence: confidence,
		Reason:     reason,
		Strategy:   name,
		EntryPrice: bar.Close,
		StopLoss:   optional.Some(bar.Close * stopLossPct),
		TakeProfit: optional.Some(bar.Close * takeProfitPct),
	}
}

func sellSignal(name string, bar types.MarketData, confidence float64, reason string, stopLossPct, takeProfitPct float64) types.Signal {
	return types.Signal{
		Symbol:     bar.Symbol,
		Time:       bar.Time,
		Action:     types.SignalActionSell,
		Confidence: confidence,
		Reason:     reason,
		Strategy:   name,
		EntryPrice: bar.Close,
		StopLoss:   optional.Some(bar.Close * stopLossPct),
		TakeProfit: optional.Some(bar.Close * takeProfitPct),
	}
}

func capConfidence(confidence, limit float64) float64 {
	if confidence > limit {
		return limit
	}
	if confidence < 0 {
		return 0
	}

	return confidence
}
