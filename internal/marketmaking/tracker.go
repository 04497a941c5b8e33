package marketmaking

import (
	"sync"

	"go.uber.org/zap"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/logger"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

// BookTracker holds the latest order book snapshot per symbol with
// monotonic last-write-wins semantics, and serializes quote
// recomputation per symbol against snapshot updates. Different symbols
// are fully independent.
type BookTracker struct {
	mu          sync.RWMutex
	states      map[string]*symbolState
	logger      *logger.Logger
	depthLevels int
}

type symbolState struct {
	mu   sync.Mutex
	book types.OrderBookSnapshot
	held bool
}

// TrackerOption customizes a BookTracker.
type TrackerOption func(*BookTracker)

// WithDepthLevels sets the book depth used by feature extraction.
// Non-positive values are ignored.
func WithDepthLevels(levels int) TrackerOption {
	return func(t *BookTracker) {
		if levels > 0 {
			t.depthLevels = levels
		}
	}
}

// NewBookTracker creates a tracker. A nil log falls back to a no-op
// logger.
func NewBookTracker(log *logger.Logger, opts ...TrackerOption) *BookTracker {
	if log == nil {
		log = logger.NewNopLogger()
	}

	tracker := &BookTracker{
		states:      make(map[string]*symbolState),
		logger:      log,
		depthLevels: types.DefaultDepthLevels,
	}

	for _, opt := range opts {
		opt(tracker)
	}

	return tracker
}

func (t *BookTracker) state(symbol string) *symbolState {
	t.mu.RLock()
	state, exists := t.states[symbol]
	t.mu.RUnlock()

	if exists {
		return state
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if state, exists = t.states[symbol]; !exists {
		state = &symbolState{}
		t.states[symbol] = state
	}

	return state
}

// Apply stores the snapshot unless one at least as new is already
// held. It reports whether the snapshot was accepted.
func (t *BookTracker) Apply(book types.OrderBookSnapshot) bool {
	state := t.state(book.Symbol)

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.held && !book.Time.After(state.book.Time) {
		t.logger.Debug("discarding stale snapshot",
			zap.String("symbol", book.Symbol),
			zap.Time("snapshot_time", book.Time),
			zap.Time("held_time", state.book.Time))

		return false
	}

	state.book = book
	state.held = true

	return true
}

// Snapshot returns the held snapshot for the symbol, if any.
func (t *BookTracker) Snapshot(symbol string) (types.OrderBookSnapshot, bool) {
	state := t.state(symbol)

	state.mu.Lock()
	defer state.mu.Unlock()

	return state.book, state.held
}

// Quote recomputes the symbol's quote against its held snapshot. The
// symbol lock is held through the computation, so no two quote
// recomputations for the same symbol race each other or a concurrent
// snapshot update.
func (t *BookTracker) Quote(quoter *Quoter, symbol string, inventory float64) ASSignal {
	state := t.state(symbol)

	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.held {
		return InvalidASSignal(symbol, state.book.Time, "no order book snapshot held")
	}

	return quoter.Quote(state.book, inventory)
}

// Features extracts the feature vector for the symbol against its held
// snapshot, using the tracker's configured depth levels. The symbol
// lock is held through the extraction.
func (t *BookTracker) Features(
	symbol string,
	params ASParameters,
	inventory InventoryState,
	micro MicrostructureStats,
	bars []types.MarketData,
) (ASFeatures, error) {
	state := t.state(symbol)

	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.held {
		return ASFeatures{}, errors.Newf(errors.ErrCodeInvalidMarketState,
			"Features: no order book snapshot held for %s", symbol)
	}

	return ExtractFeatures(state.book, params, inventory, micro, bars, t.depthLevels)
}
