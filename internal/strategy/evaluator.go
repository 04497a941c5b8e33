package strategy

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/logger"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
)

// Evaluator runs a set of strategies against the same bar
// concurrently. Evaluation is total: a panicking strategy contributes
// a degraded Hold signal instead of aborting the caller's loop.
type Evaluator struct {
	strategies []Strategy
	logger     *logger.Logger
}

// NewEvaluator creates an evaluator over the given strategies. A nil
// log falls back to a no-op logger.
func NewEvaluator(log *logger.Logger, strategies ...Strategy) *Evaluator {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Evaluator{
		strategies: strategies,
		logger:     log,
	}
}

// Strategies returns the evaluated strategies in registration order.
func (e *Evaluator) Strategies() []Strategy {
	return e.strategies
}

// EvaluateAll analyzes the current bar with every strategy and returns
// one signal per strategy, in registration order.
func (e *Evaluator) EvaluateAll(current types.MarketData, history []types.MarketData) []types.Signal {
	signals := make([]types.Signal, len(e.strategies))

	var wg sync.WaitGroup
	for i, strat := range e.strategies {
		wg.Add(1)
		go func(i int, strat Strategy) {
			defer wg.Done()

			signals[i] = e.evaluate(strat, current, history)
		}(i, strat)
	}
	wg.Wait()

	return signals
}

func (e *Evaluator) evaluate(strat Strategy, current types.MarketData, history []types.MarketData) (signal types.Signal) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("strategy panicked",
				zap.String("strategy", strat.Name()),
				zap.String("symbol", current.Symbol),
				zap.Any("panic", r))

			signal = holdSignal(strat.Name(), current, 0, fmt.Sprintf("Error: panic: %v", r))
		}
	}()

	signal = strat.Analyze(current, history)

	if signal.IsActionable() {
		e.logger.Info("actionable signal",
			zap.String("strategy", strat.Name()),
			zap.String("symbol", signal.Symbol),
			zap.String("action", string(signal.Action)),
			zap.Float64("confidence", signal.Confidence),
			zap.String("reason", signal.Reason))
	}

	return signal
}
