package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/marketmaking"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/strategy"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultConfig() {
	config := Default()

	suite.Equal(30, config.Engine.CacheTTLSeconds)
	suite.Equal(60, config.Engine.CacheBucketSeconds)
	suite.Equal(5, config.Engine.DepthLevels)
	suite.Len(config.Strategies, 5)
	suite.NoError(config.Validate())
}

func (suite *ConfigTestSuite) TestParseOverridesAndDefaults() {
	raw := []byte(`
engine:
  cache_ttl_seconds: 45
strategies:
  rsi:
    period: 7
    oversold_threshold: 25
  momentum: {}
market_making:
  gamma: 0.5
  min_spread_bps: 10
  max_spread_bps: 50
`)

	config, err := Parse(raw)
	suite.Require().NoError(err)

	suite.Equal(45, config.Engine.CacheTTLSeconds)
	// Unset engine fields fall back to defaults.
	suite.Equal(60, config.Engine.CacheBucketSeconds)

	suite.Equal(0.5, config.MarketMaking.Gamma)
	suite.Equal(10.0, config.MarketMaking.MinSpreadBps)
	// Unset quoting fields fall back to defaults.
	suite.Equal(1.5, config.MarketMaking.Kappa)
}

func (suite *ConfigTestSuite) TestParseRejectsInvalidValues() {
	raw := []byte(`
engine:
  depth_levels: -1
market_making:
  gamma: 50
`)

	_, err := Parse(raw)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
	suite.Contains(err.Error(), "DepthLevels")
	suite.Contains(err.Error(), "Gamma")
}

func (suite *ConfigTestSuite) TestLoadFromFile() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("engine:\n  cache_ttl_seconds: 10\n"), 0o644))

	config, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal(10, config.Engine.CacheTTLSeconds)

	_, err = Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Error(err)
}

func (suite *ConfigTestSuite) TestBuildStrategies() {
	config := Default()
	config.Strategies["rsi"] = map[string]any{"period": 7}

	engine := config.BuildEngine()
	strategies, err := config.BuildStrategies(strategy.NewDefaultRegistry(), engine)
	suite.Require().NoError(err)
	suite.Require().Len(strategies, 5)

	// Sorted by name: macd, mfi, momentum, rsi, vwap.
	suite.Equal("macd", strategies[0].Name())
	suite.Equal("rsi", strategies[3].Name())
	suite.Equal("vwap", strategies[4].Name())
	suite.Equal(7, strategies[3].Config()["period"])
}

func (suite *ConfigTestSuite) TestBuildTrackerHonorsDepthLevels() {
	config, err := Parse([]byte("engine:\n  depth_levels: 1\n"))
	suite.Require().NoError(err)

	tracker := config.BuildTracker(nil)
	suite.Require().True(tracker.Apply(types.OrderBookSnapshot{
		Symbol:   "BTCUSDT",
		Exchange: "binance",
		Time:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Bids: []types.OrderBookLevel{
			{Price: 100, Quantity: 2},
			{Price: 99.5, Quantity: 3},
		},
		Asks: []types.OrderBookLevel{
			{Price: 100.5, Quantity: 1.5},
			{Price: 101, Quantity: 2},
		},
	}))

	features, err := tracker.Features("BTCUSDT", config.MarketMaking,
		marketmaking.InventoryState{}, marketmaking.MicrostructureStats{}, nil)
	suite.Require().NoError(err)

	// Depth 1 aggregates only the top of book.
	suite.Equal(2.0, features.BidVolume)
	suite.Equal(1.5, features.AskVolume)
}

func (suite *ConfigTestSuite) TestBuildStrategiesUnknownName() {
	config := Default()
	config.Strategies["unknown"] = map[string]any{}

	_, err := config.BuildStrategies(strategy.NewDefaultRegistry(), config.BuildEngine())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))
}
