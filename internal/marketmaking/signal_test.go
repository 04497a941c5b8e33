package marketmaking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type ASSignalTestSuite struct {
	suite.Suite
	signal ASSignal
}

func TestASSignalTestSuite(t *testing.T) {
	suite.Run(t, new(ASSignalTestSuite))
}

func (suite *ASSignalTestSuite) SetupTest() {
	suite.signal = ASSignal{
		Symbol:      "BTCUSDT",
		Time:        testStart,
		BidPrice:    100,
		AskPrice:    100.5,
		BidQuantity: 1,
		AskQuantity: 1,
		Confidence:  1,
		IsValid:     true,
	}
}

func (suite *ASSignalTestSuite) TestDerivedMetrics() {
	suite.InDelta(0.5, suite.signal.Spread(), 1e-9)
	suite.InDelta(100.25, suite.signal.MidPrice(), 1e-9)
	suite.InDelta(0.5/100.25*10000, suite.signal.SpreadBps(), 1e-9)
	suite.InDelta(200.5, suite.signal.TotalNotional(), 1e-9)
}

func (suite *ASSignalTestSuite) TestValidateForExecutionBounds() {
	// ~49.88 bps sits inside [10, 100] but below a 60 bps floor.
	suite.True(suite.signal.ValidateForExecution(10, 100))
	suite.False(suite.signal.ValidateForExecution(60, 100))
	suite.False(suite.signal.ValidateForExecution(1, 40))
}

func (suite *ASSignalTestSuite) TestCrossedQuoteFailsValidation() {
	suite.signal.BidPrice = 100.6

	suite.False(suite.signal.ValidateForExecution(10, 100))
}

func (suite *ASSignalTestSuite) TestNonPositiveFieldsFailValidation() {
	crossed := suite.signal
	crossed.BidPrice = 0
	suite.False(crossed.ValidateForExecution(10, 100))

	zeroQty := suite.signal
	zeroQty.AskQuantity = 0
	suite.False(zeroQty.ValidateForExecution(10, 100))
}

func (suite *ASSignalTestSuite) TestInvalidASSignalShape() {
	invalid := InvalidASSignal("BTCUSDT", testStart, "no quoting capacity")

	suite.False(invalid.IsValid)
	suite.Equal(0.0, invalid.BidPrice)
	suite.Equal(0.0, invalid.AskPrice)
	suite.Equal(0.0, invalid.BidQuantity)
	suite.Equal(0.0, invalid.AskQuantity)
	suite.Equal(0.0, invalid.Confidence)
	suite.Require().True(invalid.InvalidReason.IsSome())
	suite.Equal("no quoting capacity", invalid.InvalidReason.Unwrap())
	suite.False(invalid.ValidateForExecution(0, 10000))
}
