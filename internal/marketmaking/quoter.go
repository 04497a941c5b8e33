package marketmaking

import (
	"fmt"
	"math"

	"github.com/moznion/go-optional"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
)

// spreadEpsilonBps keeps a clamped spread strictly inside its bound so
// float rounding cannot push the final quote back outside.
const spreadEpsilonBps = 1e-9

// Quoter derives two-sided quotes from the closed-form
// Avellaneda-Stoikov model. The model works in fractional terms: the
// inventory penalty and optimal spread are computed as fractions of
// price and scaled by the reservation price.
type Quoter struct {
	params ASParameters
}

// NewQuoter validates the parameters and creates a quoter.
func NewQuoter(params ASParameters) (*Quoter, error) {
	validated, err := NewASParameters(params)
	if err != nil {
		return nil, err
	}

	return &Quoter{params: validated}, nil
}

// Params returns the validated quoting parameters.
func (q *Quoter) Params() ASParameters {
	return q.params
}

// Quote computes the two-sided quote for the snapshot at the given
// signed inventory. Every failure path returns an explicit invalid
// signal rather than an error.
func (q *Quoter) Quote(book types.OrderBookSnapshot, inventory float64) ASSignal {
	if !book.IsValid() {
		return InvalidASSignal(book.Symbol, book.Time, "invalid order book")
	}

	p := q.params

	capacity := p.MaxInventory - math.Abs(inventory)
	if capacity <= 0 {
		return InvalidASSignal(book.Symbol, book.Time,
			fmt.Sprintf("inventory %.6f at max %.6f, no quoting capacity", inventory, p.MaxInventory))
	}

	mid := book.MidPrice()

	// Reservation price shifts the mid against the inventory excess so
	// that fills push the position back toward target.
	inventoryExcess := inventory - p.TargetInventory
	reservation := mid - inventoryExcess*p.Gamma*p.Sigma*p.Sigma*p.Horizon*mid
	if reservation <= 0 {
		return InvalidASSignal(book.Symbol, book.Time,
			fmt.Sprintf("non-positive reservation price %.6f", reservation))
	}

	// Closed-form optimal spread as a fraction of price.
	spreadFrac := p.Gamma*p.Sigma*p.Sigma*p.Horizon + (2/p.Gamma)*math.Log(1+p.Gamma/p.Kappa)

	minFrac := (p.MinSpreadBps + spreadEpsilonBps) / 10000
	maxFrac := (p.MaxSpreadBps - spreadEpsilonBps) / 10000
	clampedFrac := math.Min(math.Max(spreadFrac, minFrac), maxFrac)

	spread := clampedFrac * reservation

	bid := reservation - spread/2
	ask := reservation + spread/2
	if bid <= 0 {
		return InvalidASSignal(book.Symbol, book.Time,
			fmt.Sprintf("non-positive bid price %.6f", bid))
	}

	// Asymmetric sizing: the side that would move inventory toward
	// target gets the larger quote.
	skew := inventoryExcess / p.MaxInventory
	bidQty := capacity * (1 - skew) / 2
	askQty := capacity * (1 + skew) / 2
	if bidQty <= 0 || askQty <= 0 {
		return InvalidASSignal(book.Symbol, book.Time,
			fmt.Sprintf("degenerate quote sizes bid=%.6f ask=%.6f", bidQty, askQty))
	}

	signal := ASSignal{
		Symbol:           book.Symbol,
		Time:             book.Time,
		BidPrice:         bid,
		AskPrice:         ask,
		BidQuantity:      bidQty,
		AskQuantity:      askQty,
		ReservationPrice: optional.Some(reservation),
		OptimalSpread:    optional.Some(spreadFrac * reservation),
		CurrentInventory: optional.Some(inventory),
		Confidence:       math.Max(0, 1-math.Abs(skew)),
		IsValid:          true,
	}

	if !signal.ValidateForExecution(p.MinSpreadBps, p.MaxSpreadBps) {
		return InvalidASSignal(book.Symbol, book.Time, "quote failed execution validation")
	}

	return signal
}
