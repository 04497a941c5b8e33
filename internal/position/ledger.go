package position

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/logger"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// Fill is an execution report delivered by the external execution
// layer.
type Fill struct {
	ID         uuid.UUID               `yaml:"id" json:"id"`
	Symbol     string                  `yaml:"symbol" json:"symbol" validate:"required"`
	Exchange   string                  `yaml:"exchange" json:"exchange" validate:"required"`
	Side       types.PositionSide      `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	Quantity   float64                 `yaml:"quantity" json:"quantity" validate:"gt=0"`
	Price      float64                 `yaml:"price" json:"price" validate:"gt=0"`
	Time       time.Time               `yaml:"time" json:"time"`
	StrategyID optional.Option[string] `yaml:"strategy_id" json:"strategy_id"`
}

// NewFill creates a fill with a fresh identifier.
func NewFill(symbol, exchange string, side types.PositionSide, quantity, price float64, t time.Time) Fill {
	return Fill{
		ID:       uuid.New(),
		Symbol:   symbol,
		Exchange: exchange,
		Side:     side,
		Quantity: quantity,
		Price:    price,
		Time:     t,
	}
}

// Ledger tracks open positions per (symbol, exchange). It never
// initiates trades: fills and price ticks arrive from outside, and all
// PnL figures are derived on read.
type Ledger struct {
	mu        sync.RWMutex
	positions map[string]types.Position
	logger    *logger.Logger
}

// NewLedger creates an empty ledger. A nil log falls back to a no-op
// logger.
func NewLedger(log *logger.Logger) *Ledger {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Ledger{
		positions: make(map[string]types.Position),
		logger:    log,
	}
}

func validateFill(fill Fill) error {
	if fill.Symbol == "" || fill.Exchange == "" {
		return errors.New(errors.ErrCodeInvalidFill, "fill missing symbol or exchange")
	}

	if fill.Side != types.PositionSideBuy && fill.Side != types.PositionSideSell {
		return errors.Newf(errors.ErrCodeInvalidFill, "fill side %q not recognized", fill.Side)
	}

	if fill.Quantity <= 0 {
		return errors.Newf(errors.ErrCodeInvalidFill, "fill quantity %f must be positive", fill.Quantity)
	}

	if fill.Price <= 0 {
		return errors.Newf(errors.ErrCodeInvalidFill, "fill price %f must be positive", fill.Price)
	}

	return nil
}

func key(symbol, exchange string) string {
	return fmt.Sprintf("%s|%s", symbol, exchange)
}

// ApplyFill folds an execution into the ledger. Same-side fills grow
// the position at a quantity-weighted average entry; opposite-side
// fills reduce it, close it at zero, or flip it when the fill is
// larger than the position. The updated position is returned; a fully
// closed position is returned with zero quantity and removed from the
// ledger.
func (l *Ledger) ApplyFill(fill Fill) (types.Position, error) {
	if err := validateFill(fill); err != nil {
		return types.Position{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(fill.Symbol, fill.Exchange)

	existing, exists := l.positions[k]
	if !exists {
		opened := types.Position{
			Symbol:       fill.Symbol,
			Exchange:     fill.Exchange,
			Side:         fill.Side,
			Quantity:     fill.Quantity,
			EntryPrice:   fill.Price,
			CurrentPrice: fill.Price,
			OpenedAt:     fill.Time,
			UpdatedAt:    fill.Time,
			StrategyID:   fill.StrategyID,
		}
		l.positions[k] = opened

		l.logger.Info("position opened",
			zap.String("symbol", fill.Symbol),
			zap.String("exchange", fill.Exchange),
			zap.String("side", string(fill.Side)),
			zap.Float64("quantity", fill.Quantity),
			zap.Float64("price", fill.Price))

		return opened, nil
	}

	if fill.Side == existing.Side {
		updated := addToPosition(existing, fill)
		l.positions[k] = updated

		return updated, nil
	}

	updated := reducePosition(existing, fill)
	if updated.Quantity == 0 {
		delete(l.positions, k)

		l.logger.Info("position closed",
			zap.String("symbol", fill.Symbol),
			zap.String("exchange", fill.Exchange),
			zap.Float64("exit_price", fill.Price))

		return updated, nil
	}

	l.positions[k] = updated

	return updated, nil
}

// addToPosition grows a position with a same-side fill at a
// quantity-weighted average entry price.
func addToPosition(position types.Position, fill Fill) types.Position {
	oldQty := decimal.NewFromFloat(position.Quantity)
	oldEntry := decimal.NewFromFloat(position.EntryPrice)
	fillQty := decimal.NewFromFloat(fill.Quantity)
	fillPrice := decimal.NewFromFloat(fill.Price)

	totalQty := oldQty.Add(fillQty)
	entry := oldQty.Mul(oldEntry).Add(fillQty.Mul(fillPrice)).Div(totalQty)

	position.Quantity = totalQty.InexactFloat64()
	position.EntryPrice = entry.InexactFloat64()
	position.CurrentPrice = fill.Price
	position.UpdatedAt = fill.Time

	return position
}

// reducePosition shrinks a position with an opposite-side fill. An
// over-fill flips the position to the fill's side for the excess
// quantity at the fill price.
func reducePosition(position types.Position, fill Fill) types.Position {
	remaining := decimal.NewFromFloat(position.Quantity).Sub(decimal.NewFromFloat(fill.Quantity))

	switch {
	case remaining.IsZero():
		position.Quantity = 0
		position.CurrentPrice = fill.Price
		position.UpdatedAt = fill.Time

	case remaining.IsPositive():
		position.Quantity = remaining.InexactFloat64()
		position.CurrentPrice = fill.Price
		position.UpdatedAt = fill.Time

	default:
		position.Side = fill.Side
		position.Quantity = remaining.Abs().InexactFloat64()
		position.EntryPrice = fill.Price
		position.CurrentPrice = fill.Price
		position.OpenedAt = fill.Time
		position.UpdatedAt = fill.Time
		position.StrategyID = fill.StrategyID
	}

	return position
}

// MarkPrice updates the current price of an open position.
func (l *Ledger) MarkPrice(symbol, exchange string, price float64, t time.Time) (types.Position, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(symbol, exchange)

	position, exists := l.positions[k]
	if !exists {
		return types.Position{}, errors.Newf(errors.ErrCodePositionNotFound,
			"MarkPrice: no open position for %s on %s", symbol, exchange)
	}

	position.CurrentPrice = price
	position.UpdatedAt = t
	l.positions[k] = position

	return position, nil
}

// SetStops attaches stop-loss and take-profit levels to an open
// position. None values leave the corresponding level unchanged.
func (l *Ledger) SetStops(symbol, exchange string, stopLoss, takeProfit optional.Option[float64]) (types.Position, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(symbol, exchange)

	position, exists := l.positions[k]
	if !exists {
		return types.Position{}, errors.Newf(errors.ErrCodePositionNotFound,
			"SetStops: no open position for %s on %s", symbol, exchange)
	}

	if stopLoss.IsSome() {
		position.StopLoss = stopLoss
	}
	if takeProfit.IsSome() {
		position.TakeProfit = takeProfit
	}
	l.positions[k] = position

	return position, nil
}

// Get returns the open position for (symbol, exchange), if any.
func (l *Ledger) Get(symbol, exchange string) (types.Position, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	position, exists := l.positions[key(symbol, exchange)]

	return position, exists
}

// All returns every open position, sorted by symbol then exchange.
func (l *Ledger) All() []types.Position {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]types.Position, 0, len(l.positions))
	for _, position := range l.positions {
		out = append(out, position)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}

		return out[i].Exchange < out[j].Exchange
	})

	return out
}

// TotalUnrealizedPnL sums unrealized PnL across all open positions.
func (l *Ledger) TotalUnrealizedPnL() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := decimal.Zero
	for _, position := range l.positions {
		total = total.Add(decimal.NewFromFloat(position.UnrealizedPnL()))
	}

	return total.InexactFloat64()
}
