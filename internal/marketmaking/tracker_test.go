package marketmaking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

type BookTrackerTestSuite struct {
	suite.Suite
	tracker *BookTracker
	quoter  *Quoter
}

func TestBookTrackerTestSuite(t *testing.T) {
	suite.Run(t, new(BookTrackerTestSuite))
}

func (suite *BookTrackerTestSuite) SetupTest() {
	suite.tracker = NewBookTracker(nil)

	quoter, err := NewQuoter(ASParameters{})
	suite.Require().NoError(err)
	suite.quoter = quoter
}

func bookAt(symbol string, t time.Time, bestBid float64) types.OrderBookSnapshot {
	return types.OrderBookSnapshot{
		Symbol:   symbol,
		Exchange: "binance",
		Time:     t,
		Bids: []types.OrderBookLevel{
			{Price: bestBid, Quantity: 2},
		},
		Asks: []types.OrderBookLevel{
			{Price: bestBid + 0.5, Quantity: 2},
		},
	}
}

func (suite *BookTrackerTestSuite) TestLastWriteWinsDiscardsStaleSnapshots() {
	suite.True(suite.tracker.Apply(bookAt("BTCUSDT", testStart.Add(time.Second), 100)))

	// Older and equal timestamps are both discarded.
	suite.False(suite.tracker.Apply(bookAt("BTCUSDT", testStart, 99)))
	suite.False(suite.tracker.Apply(bookAt("BTCUSDT", testStart.Add(time.Second), 98)))

	held, ok := suite.tracker.Snapshot("BTCUSDT")
	suite.Require().True(ok)
	suite.Equal(100.0, held.BestBid())

	suite.True(suite.tracker.Apply(bookAt("BTCUSDT", testStart.Add(2*time.Second), 101)))

	held, ok = suite.tracker.Snapshot("BTCUSDT")
	suite.Require().True(ok)
	suite.Equal(101.0, held.BestBid())
}

func (suite *BookTrackerTestSuite) TestSymbolsAreIndependent() {
	suite.True(suite.tracker.Apply(bookAt("BTCUSDT", testStart.Add(time.Hour), 100)))
	suite.True(suite.tracker.Apply(bookAt("ETHUSDT", testStart, 10)))

	_, ok := suite.tracker.Snapshot("ETHUSDT")
	suite.True(ok)
}

func (suite *BookTrackerTestSuite) TestQuoteWithoutSnapshotIsInvalid() {
	signal := suite.tracker.Quote(suite.quoter, "BTCUSDT", 0)

	suite.False(signal.IsValid)
	suite.Require().True(signal.InvalidReason.IsSome())
	suite.Contains(signal.InvalidReason.Unwrap(), "no order book snapshot")
}

func (suite *BookTrackerTestSuite) TestQuoteUsesHeldSnapshot() {
	suite.Require().True(suite.tracker.Apply(bookAt("BTCUSDT", testStart, 100)))

	signal := suite.tracker.Quote(suite.quoter, "BTCUSDT", 0)
	suite.Require().True(signal.IsValid)
	suite.InDelta(100.25, signal.ReservationPrice.Unwrap(), 1e-9)
}

func (suite *BookTrackerTestSuite) TestFeaturesWithoutSnapshotFails() {
	_, err := suite.tracker.Features("BTCUSDT", ASParameters{MaxInventory: 1}, InventoryState{}, MicrostructureStats{}, nil)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidMarketState))
}

func (suite *BookTrackerTestSuite) TestFeaturesUseConfiguredDepthLevels() {
	tracker := NewBookTracker(nil, WithDepthLevels(1))
	suite.Require().True(tracker.Apply(testBook("BTCUSDT")))

	features, err := tracker.Features("BTCUSDT", ASParameters{MaxInventory: 1}, InventoryState{}, MicrostructureStats{}, nil)
	suite.Require().NoError(err)

	// Depth 1 aggregates only the top of book.
	suite.Equal(2.0, features.BidVolume)
	suite.Equal(1.5, features.AskVolume)
}

func (suite *BookTrackerTestSuite) TestConcurrentApplyAndQuote() {
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			suite.tracker.Apply(bookAt("BTCUSDT", testStart.Add(time.Duration(i)*time.Millisecond), 100))
		}(i)

		wg.Add(1)
		go func() {
			defer wg.Done()

			suite.tracker.Quote(suite.quoter, "BTCUSDT", 0)
		}()
	}
	wg.Wait()

	held, ok := suite.tracker.Snapshot("BTCUSDT")
	suite.Require().True(ok)
	suite.Equal(testStart.Add(49*time.Millisecond), held.Time)
}
