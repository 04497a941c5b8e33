package marketmaking

import (
	"math"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

const (
	// FeatureCount is the length of the feature vector. The vector
	// layout is a contract consumed by downstream learners; any change
	// to order or meaning requires bumping FeatureVersion.
	FeatureCount = 22

	// FeatureVersion identifies the current vector layout.
	FeatureVersion = 1
)

// InventoryState is the inventory context feeding feature extraction.
type InventoryState struct {
	// Current is the signed inventory in base units.
	Current float64
	// ChangeRate is the recent inventory change per second.
	ChangeRate float64
}

// MicrostructureStats is the trade-flow context feeding feature
// extraction. Collaborators maintaining trade tapes populate it.
type MicrostructureStats struct {
	// RecentTradeDirection is the sign of recent aggressor flow in
	// [-1, 1].
	RecentTradeDirection float64
	// TradeFlowImbalance is buy volume minus sell volume over their
	// sum, in [-1, 1].
	TradeFlowImbalance float64
	// QuoteUpdateFrequency is book updates per second.
	QuoteUpdateFrequency float64
	// TimeSinceLastTrade is seconds since the last print.
	TimeSinceLastTrade float64
}

// ASFeatures is the fixed 22-value numeric state vector extracted per
// quote decision, grouped as inventory (4), order book (9),
// microstructure (4) and volatility/candle (5).
type ASFeatures struct {
	InventoryLevel      float64 `json:"inventory_level"`
	InventoryPctOfMax   float64 `json:"inventory_pct_of_max"`
	InventoryDistance   float64 `json:"inventory_distance"`
	InventoryChangeRate float64 `json:"inventory_change_rate"`

	BestBid          float64 `json:"best_bid"`
	BestAsk          float64 `json:"best_ask"`
	BidVolume        float64 `json:"bid_volume"`
	AskVolume        float64 `json:"ask_volume"`
	Spread           float64 `json:"spread"`
	SpreadPct        float64 `json:"spread_pct"`
	Imbalance        float64 `json:"imbalance"`
	Microprice       float64 `json:"microprice"`
	WeightedMidPrice float64 `json:"weighted_mid_price"`

	RecentTradeDirection float64 `json:"recent_trade_direction"`
	TradeFlowImbalance   float64 `json:"trade_flow_imbalance"`
	QuoteUpdateFrequency float64 `json:"quote_update_frequency"`
	TimeSinceLastTrade   float64 `json:"time_since_last_trade"`

	Volatility1m   float64 `json:"volatility_1m"`
	Momentum1m     float64 `json:"momentum_1m"`
	Volume1m       float64 `json:"volume_1m"`
	VWAPDistance   float64 `json:"vwap_distance"`
	HighLowRange1m float64 `json:"high_low_range_1m"`
}

// Vector returns the features in the fixed contract order.
func (f ASFeatures) Vector() [FeatureCount]float64 {
	return [FeatureCount]float64{
		f.InventoryLevel,
		f.InventoryPctOfMax,
		f.InventoryDistance,
		f.InventoryChangeRate,
		f.BestBid,
		f.BestAsk,
		f.BidVolume,
		f.AskVolume,
		f.Spread,
		f.SpreadPct,
		f.Imbalance,
		f.Microprice,
		f.WeightedMidPrice,
		f.RecentTradeDirection,
		f.TradeFlowImbalance,
		f.QuoteUpdateFrequency,
		f.TimeSinceLastTrade,
		f.Volatility1m,
		f.Momentum1m,
		f.Volume1m,
		f.VWAPDistance,
		f.HighLowRange1m,
	}
}

// FeatureNames returns the vector field names in contract order.
func FeatureNames() [FeatureCount]string {
	return [FeatureCount]string{
		"inventory_level",
		"inventory_pct_of_max",
		"inventory_distance",
		"inventory_change_rate",
		"best_bid",
		"best_ask",
		"bid_volume",
		"ask_volume",
		"spread",
		"spread_pct",
		"imbalance",
		"microprice",
		"weighted_mid_price",
		"recent_trade_direction",
		"trade_flow_imbalance",
		"quote_update_frequency",
		"time_since_last_trade",
		"volatility_1m",
		"momentum_1m",
		"volume_1m",
		"vwap_distance",
		"high_low_range_1m",
	}
}

// ExtractFeatures builds the feature vector from a book snapshot,
// quoting parameters, inventory and trade-flow context, and recent
// minute bars (oldest first). depthLevels bounds the book levels the
// depth metrics aggregate; a non-positive value falls back to
// types.DefaultDepthLevels. Extraction is deterministic and
// side-effect-free; candle features degrade to zero when bars are
// missing rather than failing the extraction.
func ExtractFeatures(
	book types.OrderBookSnapshot,
	params ASParameters,
	inventory InventoryState,
	micro MicrostructureStats,
	bars []types.MarketData,
	depthLevels int,
) (ASFeatures, error) {
	if !book.IsValid() {
		return ASFeatures{}, errors.Newf(errors.ErrCodeInvalidMarketState,
			"ExtractFeatures: invalid order book for %s", book.Symbol)
	}

	if depthLevels <= 0 {
		depthLevels = types.DefaultDepthLevels
	}

	features := ASFeatures{
		InventoryLevel:      inventory.Current,
		InventoryDistance:   inventory.Current - params.TargetInventory,
		InventoryChangeRate: inventory.ChangeRate,

		BestBid:          book.BestBid(),
		BestAsk:          book.BestAsk(),
		BidVolume:        book.BidDepth(depthLevels),
		AskVolume:        book.AskDepth(depthLevels),
		Spread:           book.Spread(),
		SpreadPct:        book.SpreadPercent(),
		Imbalance:        book.OrderBookImbalance(depthLevels),
		Microprice:       book.Microprice(),
		WeightedMidPrice: book.WeightedMidPrice(depthLevels),

		RecentTradeDirection: micro.RecentTradeDirection,
		TradeFlowImbalance:   micro.TradeFlowImbalance,
		QuoteUpdateFrequency: micro.QuoteUpdateFrequency,
		TimeSinceLastTrade:   micro.TimeSinceLastTrade,
	}

	// Unvalidated parameters may carry a zero MaxInventory; keep the
	// ratio finite.
	if params.MaxInventory > 0 {
		features.InventoryPctOfMax = inventory.Current / params.MaxInventory
	}

	if len(bars) == 0 {
		return features, nil
	}

	latest := bars[len(bars)-1]

	if latest.Open != 0 {
		features.Momentum1m = (latest.Close - latest.Open) / latest.Open
	}

	features.Volume1m = latest.Volume

	if latest.Low != 0 {
		features.HighLowRange1m = (latest.High - latest.Low) / latest.Low
	}

	features.Volatility1m = returnVolatility(bars)
	features.VWAPDistance = vwapDistance(bars)

	return features, nil
}

// returnVolatility is the population standard deviation of
// bar-over-bar fractional returns, 0 with fewer than two bars.
func returnVolatility(bars []types.MarketData) float64 {
	if len(bars) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		if bars[i-1].Close == 0 {
			returns = append(returns, 0)
			continue
		}

		returns = append(returns, (bars[i].Close-bars[i-1].Close)/bars[i-1].Close)
	}

	m := 0.0
	for _, r := range returns {
		m += r
	}
	m /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - m
		variance += d * d
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance)
}

// vwapDistance is the latest close's fractional distance from the
// volume-weighted average typical price of the bars.
func vwapDistance(bars []types.MarketData) float64 {
	weighted := 0.0
	totalVolume := 0.0
	for _, bar := range bars {
		weighted += bar.TypicalPrice() * bar.Volume
		totalVolume += bar.Volume
	}

	if totalVolume == 0 {
		return 0
	}

	vwap := weighted / totalVolume
	if vwap == 0 {
		return 0
	}

	return (bars[len(bars)-1].Close - vwap) / vwap
}
