package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// barsFromCloses builds a minute-bar series whose closes follow the
// given values and whose OHLC relations are always valid.
func barsFromCloses(symbol string, closeValues []float64) []types.MarketData {
	bars := make([]types.MarketData, len(closeValues))

	for i, c := range closeValues {
		open := c
		if i > 0 {
			open = closeValues[i-1]
		}

		high := open
		low := open
		if c > high {
			high = c
		}
		if c < low {
			low = c
		}

		bars[i] = types.MarketData{
			Symbol: symbol,
			Time:   testStart.Add(time.Duration(i) * time.Minute),
			Open:   open,
			High:   high * 1.001,
			Low:    low * 0.999,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

func flatBars(symbol string, price float64, count int) []types.MarketData {
	closeValues := make([]float64, count)
	for i := range closeValues {
		closeValues[i] = price
	}

	return barsFromCloses(symbol, closeValues)
}

type RSITestSuite struct {
	suite.Suite
	rsi *RSI
}

func TestRSITestSuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) SetupTest() {
	suite.rsi = NewRSI().(*RSI)
	suite.Require().NoError(suite.rsi.Config(14))
}

func (suite *RSITestSuite) TestMonotonicDeclineIsOversold() {
	closeValues := make([]float64, 30)
	for i := range closeValues {
		closeValues[i] = 100 - float64(i)
	}

	value, err := suite.rsi.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.Less(value, 30.0)
}

func (suite *RSITestSuite) TestAllGainsPegsAtHundred() {
	closeValues := make([]float64, 30)
	for i := range closeValues {
		closeValues[i] = 100 + float64(i)
	}

	value, err := suite.rsi.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.Equal(100.0, value)
}

func (suite *RSITestSuite) TestDeclineThenRecoveryCrossesBackAboveOversold() {
	closeValues := make([]float64, 0, 40)
	price := 100.0
	for i := 0; i < 20; i++ {
		price -= 2
		closeValues = append(closeValues, price)
	}
	for i := 0; i < 20; i++ {
		price += 3
		closeValues = append(closeValues, price)
	}

	value, err := suite.rsi.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.Greater(value, 30.0)
	suite.LessOrEqual(value, 100.0)
}

func (suite *RSITestSuite) TestBoundsOnMixedSeries() {
	closeValues := []float64{
		100, 102, 101, 104, 103, 106, 104, 108, 105, 110,
		107, 112, 109, 114, 111, 116,
	}

	value, err := suite.rsi.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.GreaterOrEqual(value, 0.0)
	suite.LessOrEqual(value, 100.0)
}

func (suite *RSITestSuite) TestInsufficientData() {
	_, err := suite.rsi.Value(barsFromCloses("BTCUSDT", []float64{100, 101, 102}))
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))

	var insufficient *errors.InsufficientDataError
	suite.Require().ErrorAs(err, &insufficient)
	suite.Equal(15, insufficient.Required)
	suite.Equal(3, insufficient.Actual)
	suite.Equal("BTCUSDT", insufficient.Symbol)
}

func (suite *RSITestSuite) TestConfigRejectsBadParams() {
	suite.Error(suite.rsi.Config())
	suite.Error(suite.rsi.Config("14"))
	suite.Error(suite.rsi.Config(0))
	suite.Error(suite.rsi.Config(-5))
}

type MovingAverageTestSuite struct {
	suite.Suite
}

func TestMovingAverageTestSuite(t *testing.T) {
	suite.Run(t, new(MovingAverageTestSuite))
}

func (suite *MovingAverageTestSuite) TestSMAIsWindowMean() {
	sma := NewSMA().(*SMA)
	suite.Require().NoError(sma.Config(4))

	value, err := sma.Value(barsFromCloses("ETHUSDT", []float64{1, 2, 3, 10, 20, 30, 40}))
	suite.Require().NoError(err)
	suite.InDelta(25.0, value, 1e-9)
}

func (suite *MovingAverageTestSuite) TestEMAOnFlatSeriesEqualsPrice() {
	ema := NewEMA().(*EMA)
	suite.Require().NoError(ema.Config(5))

	value, err := ema.Value(flatBars("ETHUSDT", 250, 12))
	suite.Require().NoError(err)
	suite.InDelta(250.0, value, 1e-9)
}

func (suite *MovingAverageTestSuite) TestEMATracksRecentPricesCloserThanSMA() {
	closeValues := []float64{
		100, 100, 100, 100, 100, 100, 100, 100, 110, 120, 130, 140,
	}
	bars := barsFromCloses("ETHUSDT", closeValues)

	ema := NewEMA().(*EMA)
	suite.Require().NoError(ema.Config(8))
	emaValue, err := ema.Value(bars)
	suite.Require().NoError(err)

	sma := NewSMA().(*SMA)
	suite.Require().NoError(sma.Config(8))
	smaValue, err := sma.Value(bars)
	suite.Require().NoError(err)

	suite.Greater(emaValue, smaValue)
}

type MACDTestSuite struct {
	suite.Suite
	macd *MACD
}

func TestMACDTestSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}

func (suite *MACDTestSuite) SetupTest() {
	suite.macd = NewMACD().(*MACD)
}

func (suite *MACDTestSuite) TestFlatSeriesIsZero() {
	suite.Require().NoError(suite.macd.Config(12, 26, 9))

	result, err := suite.macd.Value(flatBars("BTCUSDT", 50000, 40))
	suite.Require().NoError(err)
	suite.InDelta(0.0, result.MACD, 1e-9)
	suite.InDelta(0.0, result.Signal, 1e-9)
	suite.InDelta(0.0, result.Histogram, 1e-9)
}

func (suite *MACDTestSuite) TestUptrendHasPositiveHistogram() {
	suite.Require().NoError(suite.macd.Config(12, 26, 9))

	closeValues := make([]float64, 60)
	for i := range closeValues {
		closeValues[i] = 100 * (1 + 0.01*float64(i))
	}

	result, err := suite.macd.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.Greater(result.MACD, 0.0)
	suite.Greater(result.Histogram, 0.0)
}

func (suite *MACDTestSuite) TestHistogramIsMACDMinusSignal() {
	suite.Require().NoError(suite.macd.Config(5, 10, 4))

	closeValues := []float64{
		100, 101, 99, 103, 102, 105, 104, 108, 106, 110,
		109, 113, 111, 115, 114,
	}

	result, err := suite.macd.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.InDelta(result.MACD-result.Signal, result.Histogram, 1e-9)
}

func (suite *MACDTestSuite) TestConfigRejectsFastNotShorterThanSlow() {
	suite.Error(suite.macd.Config(26, 12, 9))
	suite.Error(suite.macd.Config(12, 12, 9))
}

func (suite *MACDTestSuite) TestInsufficientData() {
	suite.Require().NoError(suite.macd.Config(12, 26, 9))

	_, err := suite.macd.Value(flatBars("BTCUSDT", 100, 10))
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}

type OscillatorTestSuite struct {
	suite.Suite
}

func TestOscillatorTestSuite(t *testing.T) {
	suite.Run(t, new(OscillatorTestSuite))
}

func (suite *OscillatorTestSuite) TestMFIRisingFlowIsHundred() {
	mfi := NewMFI().(*MFI)
	suite.Require().NoError(mfi.Config(14))

	closeValues := make([]float64, 20)
	for i := range closeValues {
		closeValues[i] = 100 + float64(i)
	}

	value, err := mfi.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.Equal(100.0, value)
}

func (suite *OscillatorTestSuite) TestMFIFallingFlowIsZero() {
	mfi := NewMFI().(*MFI)
	suite.Require().NoError(mfi.Config(14))

	closeValues := make([]float64, 20)
	for i := range closeValues {
		closeValues[i] = 100 - float64(i)
	}

	value, err := mfi.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.InDelta(0.0, value, 1e-9)
}

func (suite *OscillatorTestSuite) TestMFIFlatWindowIsNeutral() {
	mfi := NewMFI().(*MFI)
	suite.Require().NoError(mfi.Config(14))

	value, err := mfi.Value(flatBars("BTCUSDT", 100, 20))
	suite.Require().NoError(err)
	suite.Equal(50.0, value)
}

func (suite *OscillatorTestSuite) TestStochasticBoundsAndFlatNeutral() {
	stoch := NewStochastic().(*Stochastic)
	suite.Require().NoError(stoch.Config(14, 3, 3))

	result, err := stoch.Value(flatBars("BTCUSDT", 100, 25))
	suite.Require().NoError(err)
	suite.InDelta(50.0, result.PercentK, 1e-9)
	suite.InDelta(50.0, result.PercentD, 1e-9)

	closeValues := []float64{
		100, 105, 98, 110, 102, 108, 95, 112, 104, 109,
		99, 111, 103, 107, 101, 113, 106, 110, 100, 114,
		105, 108, 102, 112, 107,
	}
	result, err = stoch.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.GreaterOrEqual(result.PercentK, 0.0)
	suite.LessOrEqual(result.PercentK, 100.0)
	suite.GreaterOrEqual(result.PercentD, 0.0)
	suite.LessOrEqual(result.PercentD, 100.0)
}

func (suite *OscillatorTestSuite) TestWilliamsRBoundsAndZeroRangeMidpoint() {
	wr := NewWilliamsR().(*WilliamsR)
	suite.Require().NoError(wr.Config(14))

	closeValues := make([]float64, 14)
	for i := range closeValues {
		closeValues[i] = 100 + float64(i%5)
	}

	value, err := wr.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.GreaterOrEqual(value, -100.0)
	suite.LessOrEqual(value, 0.0)

	zeroRange := make([]types.MarketData, 14)
	for i := range zeroRange {
		zeroRange[i] = types.MarketData{
			Symbol: "BTCUSDT",
			Time:   testStart.Add(time.Duration(i) * time.Minute),
			Open:   100, High: 100, Low: 100, Close: 100,
			Volume: 1000,
		}
	}

	value, err = wr.Value(zeroRange)
	suite.Require().NoError(err)
	suite.Equal(-50.0, value)
}

func (suite *OscillatorTestSuite) TestCCIFlatWindowIsZero() {
	cci := NewCCI().(*CCI)
	suite.Require().NoError(cci.Config(20))

	flat := make([]types.MarketData, 20)
	for i := range flat {
		flat[i] = types.MarketData{
			Symbol: "BTCUSDT",
			Time:   testStart.Add(time.Duration(i) * time.Minute),
			Open:   100, High: 100, Low: 100, Close: 100,
			Volume: 1000,
		}
	}

	value, err := cci.Value(flat)
	suite.Require().NoError(err)
	suite.Equal(0.0, value)
}

func (suite *OscillatorTestSuite) TestCCISignFollowsLatestDeviation() {
	cci := NewCCI().(*CCI)
	suite.Require().NoError(cci.Config(10))

	closeValues := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 120}
	value, err := cci.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.Greater(value, 0.0)
}

type VolumePriceTestSuite struct {
	suite.Suite
}

func TestVolumePriceTestSuite(t *testing.T) {
	suite.Run(t, new(VolumePriceTestSuite))
}

func (suite *VolumePriceTestSuite) TestVWAPWeightsByVolume() {
	vwap := NewVWAP().(*VWAP)
	suite.Require().NoError(vwap.Config(2))

	bars := []types.MarketData{
		{
			Symbol: "BTCUSDT", Time: testStart,
			Open: 100, High: 100, Low: 100, Close: 100, Volume: 100,
		},
		{
			Symbol: "BTCUSDT", Time: testStart.Add(time.Minute),
			Open: 200, High: 200, Low: 200, Close: 200, Volume: 300,
		},
	}

	value, err := vwap.Value(bars)
	suite.Require().NoError(err)
	suite.InDelta(175.0, value, 1e-9)
}

func (suite *VolumePriceTestSuite) TestVWAPZeroVolumeFallsBackToMean() {
	vwap := NewVWAP().(*VWAP)
	suite.Require().NoError(vwap.Config(2))

	bars := []types.MarketData{
		{
			Symbol: "BTCUSDT", Time: testStart,
			Open: 100, High: 100, Low: 100, Close: 100, Volume: 0,
		},
		{
			Symbol: "BTCUSDT", Time: testStart.Add(time.Minute),
			Open: 200, High: 200, Low: 200, Close: 200, Volume: 0,
		},
	}

	value, err := vwap.Value(bars)
	suite.Require().NoError(err)
	suite.InDelta(150.0, value, 1e-9)
}

func (suite *VolumePriceTestSuite) TestATRConstantRange() {
	atr := NewATR().(*ATR)
	suite.Require().NoError(atr.Config(5))

	bars := make([]types.MarketData, 10)
	for i := range bars {
		bars[i] = types.MarketData{
			Symbol: "BTCUSDT",
			Time:   testStart.Add(time.Duration(i) * time.Minute),
			Open:   10, High: 11, Low: 9, Close: 10,
			Volume: 1000,
		}
	}

	value, err := atr.Value(bars)
	suite.Require().NoError(err)
	suite.InDelta(2.0, value, 1e-9)
}

func (suite *VolumePriceTestSuite) TestOBVAccumulatesSignedVolume() {
	obv := NewOBV().(*OBV)
	suite.Require().NoError(obv.Config())

	bars := barsFromCloses("BTCUSDT", []float64{10, 12, 11, 11})
	bars[1].Volume = 100
	bars[2].Volume = 40
	bars[3].Volume = 25

	value, err := obv.Value(bars)
	suite.Require().NoError(err)
	suite.InDelta(60.0, value, 1e-9)
}

func (suite *VolumePriceTestSuite) TestVolatilityOfUniformReturnsIsZero() {
	vol := NewVolatility().(*Volatility)
	suite.Require().NoError(vol.Config(2))

	value, err := vol.Value(barsFromCloses("BTCUSDT", []float64{100, 110, 121}))
	suite.Require().NoError(err)
	suite.InDelta(0.0, value, 1e-12)
}

func (suite *VolumePriceTestSuite) TestVolatilityIncreasesWithDispersion() {
	vol := NewVolatility().(*Volatility)
	suite.Require().NoError(vol.Config(5))

	calm, err := vol.Value(barsFromCloses("BTCUSDT", []float64{100, 100.1, 100.2, 100.1, 100.2, 100.3}))
	suite.Require().NoError(err)

	wild, err := vol.Value(barsFromCloses("BTCUSDT", []float64{100, 110, 95, 115, 90, 120}))
	suite.Require().NoError(err)

	suite.Greater(wild, calm)
}

func (suite *VolumePriceTestSuite) TestBollingerBandsEnvelope() {
	bb := NewBollingerBands().(*BollingerBands)
	suite.Require().NoError(bb.Config(4, 2.0))

	result, err := bb.Value(barsFromCloses("BTCUSDT", []float64{2, 4, 6, 8}))
	suite.Require().NoError(err)
	suite.InDelta(5.0, result.Middle, 1e-9)
	suite.InDelta(result.Middle-result.Lower, result.Upper-result.Middle, 1e-9)
	suite.Greater(result.Upper, result.Middle)
	suite.Less(result.Lower, result.Middle)
}

type ADXTestSuite struct {
	suite.Suite
	adx *ADX
}

func TestADXTestSuite(t *testing.T) {
	suite.Run(t, new(ADXTestSuite))
}

func (suite *ADXTestSuite) SetupTest() {
	suite.adx = NewADX().(*ADX)
	suite.Require().NoError(suite.adx.Config(14))
}

func (suite *ADXTestSuite) TestStrongUptrendFavorsPlusDI() {
	closeValues := make([]float64, 40)
	for i := range closeValues {
		closeValues[i] = 100 + 2*float64(i)
	}

	result, err := suite.adx.Value(barsFromCloses("BTCUSDT", closeValues))
	suite.Require().NoError(err)
	suite.Greater(result.PlusDI, result.MinusDI)
	suite.GreaterOrEqual(result.ADX, 0.0)
	suite.LessOrEqual(result.ADX, 100.0)
}

func (suite *ADXTestSuite) TestInsufficientData() {
	_, err := suite.adx.Value(flatBars("BTCUSDT", 100, 20))
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}
