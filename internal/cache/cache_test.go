package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CacheTestSuite struct {
	suite.Suite
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (suite *CacheTestSuite) TestSetGet() {
	c := New()
	c.Set("rsi:BTCUSDT:14", 42.5, time.Minute)

	v, ok := c.Get("rsi:BTCUSDT:14")
	suite.True(ok)
	suite.Equal(42.5, v)
}

func (suite *CacheTestSuite) TestMissingKey() {
	c := New()
	_, ok := c.Get("missing")
	suite.False(ok)
}

func (suite *CacheTestSuite) TestExpiry() {
	c := New()
	c.Set("k", 1, time.Millisecond)

	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("k")
	suite.False(ok)
	suite.Equal(0, c.Len())
}

func (suite *CacheTestSuite) TestZeroTTLNeverExpires() {
	c := New()
	c.Set("k", "v", 0)

	time.Sleep(2 * time.Millisecond)

	v, ok := c.Get("k")
	suite.True(ok)
	suite.Equal("v", v)
}

func (suite *CacheTestSuite) TestOverwrite() {
	c := New()
	c.Set("k", 1, time.Minute)
	c.Set("k", 2, time.Minute)

	v, ok := c.Get("k")
	suite.True(ok)
	suite.Equal(2, v)
	suite.Equal(1, c.Len())
}

func (suite *CacheTestSuite) TestClear() {
	c := New()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Clear()

	suite.Equal(0, c.Len())
	_, ok := c.Get("a")
	suite.False(ok)
}
