package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidPeriod, "period must be positive, got %d", -3)
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidPeriod, err.Code)
	suite.Equal("period must be positive, got -3", err.Message)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeDataNotFound, err.Code)
	suite.Equal("data not found", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeIndicatorCalculation, cause, "failed to compute RSI for %s", "BTCUSDT")
	suite.Equal(ErrCodeIndicatorCalculation, err.Code)
	suite.Equal("failed to compute RSI for BTCUSDT", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal("[200] data not found: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal(cause, err.Unwrap())
	suite.Nil(New(ErrCodeInvalidParameter, "invalid parameter").Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeInvalidMarketState, "crossed book")
	suite.Equal(ErrCodeInvalidMarketState, GetCode(err))

	// GetCode returns the outermost code for wrapped errors.
	wrapped := Wrap(ErrCodeStrategyRuntimeError, "strategy failed", err)
	suite.Equal(ErrCodeStrategyRuntimeError, GetCode(wrapped))

	suite.Equal(ErrCodeUnknown, GetCode(errors.New("standard error")))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.True(HasCode(err, ErrCodeInvalidParameter))
	suite.False(HasCode(err, ErrCodeDataNotFound))
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataErrorf(15, 7, "BTCUSDT", "RSI requires %d bars, got %d", 15, 7)
	suite.Equal(15, err.Required)
	suite.Equal(7, err.Actual)
	suite.Equal("BTCUSDT", err.Symbol)
	suite.Equal("RSI requires 15 bars, got 7", err.Error())
	suite.True(IsInsufficientDataError(err))
	suite.False(IsInsufficientDataError(errors.New("other")))
}

func (suite *ErrorTestSuite) TestInsufficientDataErrorWrapped() {
	inner := NewInsufficientDataError(10, 2, "ETHUSDT", "not enough bars")
	outer := Wrap(ErrCodeInsufficientData, "indicator failed", inner)
	suite.True(IsInsufficientDataError(outer))
}
