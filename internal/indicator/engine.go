package indicator

import (
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/cache"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/internal/types"
	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

const (
	// DefaultCacheTTL is how long a computed indicator value stays
	// servable from the cache.
	DefaultCacheTTL = 30 * time.Second

	// DefaultCacheBucket is the time-bucket granularity of cache keys.
	// Bars whose latest timestamp falls into the same bucket share a
	// cache entry.
	DefaultCacheBucket = time.Minute
)

// Engine computes indicators through the registry with TTL caching and
// single-flight deduplication: concurrent requests for the same
// (indicator, symbol, params, bucket) key share one computation.
type Engine struct {
	registry IndicatorRegistry
	cache    *cache.TTLCache
	group    singleflight.Group
	ttl      time.Duration
	bucket   time.Duration
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithCacheTTL overrides the default cache TTL.
func WithCacheTTL(ttl time.Duration) EngineOption {
	return func(e *Engine) {
		if ttl > 0 {
			e.ttl = ttl
		}
	}
}

// WithCacheBucket overrides the default cache key time bucket.
func WithCacheBucket(bucket time.Duration) EngineOption {
	return func(e *Engine) {
		if bucket > 0 {
			e.bucket = bucket
		}
	}
}

// NewEngine creates an Engine backed by the given registry.
func NewEngine(registry IndicatorRegistry, opts ...EngineOption) *Engine {
	engine := &Engine{
		registry: registry,
		cache:    cache.New(),
		ttl:      DefaultCacheTTL,
		bucket:   DefaultCacheBucket,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Compute evaluates the named indicator over the ordered bar series,
// configuring a fresh instance with params when any are given. Results
// are cached per (indicator, symbol, params, time bucket).
func (e *Engine) Compute(name types.IndicatorType, symbol string, bars []types.MarketData, params ...any) (any, error) {
	if err := types.ValidateSeries(bars); err != nil {
		return nil, err
	}

	key := e.cacheKey(name, symbol, bars, params)

	if value, ok := e.cache.Get(key); ok {
		return value, nil
	}

	value, err, _ := e.group.Do(key, func() (any, error) {
		// A concurrent computation may have filled the cache while we
		// waited on the flight group.
		if value, ok := e.cache.Get(key); ok {
			return value, nil
		}

		instance, err := e.registry.GetIndicator(name)
		if err != nil {
			return nil, err
		}

		if len(params) > 0 {
			if err := instance.Config(params...); err != nil {
				return nil, err
			}
		}

		result, err := instance.Compute(bars)
		if err != nil {
			return nil, err
		}

		e.cache.Set(key, result, e.ttl)

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// ClearCache drops all cached indicator values unconditionally.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

func (e *Engine) cacheKey(name types.IndicatorType, symbol string, bars []types.MarketData, params []any) string {
	bucket := bars[len(bars)-1].Time.Truncate(e.bucket).Unix()

	return fmt.Sprintf("%s:%s:%v:%d:%d", name, symbol, params, len(bars), bucket)
}

// computeScalar runs Compute and asserts a float64 result.
func (e *Engine) computeScalar(name types.IndicatorType, symbol string, bars []types.MarketData, params ...any) (float64, error) {
	value, err := e.Compute(name, symbol, bars, params...)
	if err != nil {
		return 0, err
	}

	scalar, ok := value.(float64)
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidType, "%s returned %T, expected float64", name, value)
	}

	return scalar, nil
}

// RSI returns the Wilder-smoothed relative strength index.
func (e *Engine) RSI(symbol string, bars []types.MarketData, period int) (float64, error) {
	return e.computeScalar(types.IndicatorTypeRSI, symbol, bars, period)
}

// SMA returns the simple moving average of closes.
func (e *Engine) SMA(symbol string, bars []types.MarketData, period int) (float64, error) {
	return e.computeScalar(types.IndicatorTypeSMA, symbol, bars, period)
}

// EMA returns the exponential moving average of closes.
func (e *Engine) EMA(symbol string, bars []types.MarketData, period int) (float64, error) {
	return e.computeScalar(types.IndicatorTypeEMA, symbol, bars, period)
}

// Volatility returns the standard deviation of period-over-period returns.
func (e *Engine) Volatility(symbol string, bars []types.MarketData, period int) (float64, error) {
	return e.computeScalar(types.IndicatorTypeVolatility, symbol, bars, period)
}

// MFI returns the money flow index in [0, 100].
func (e *Engine) MFI(symbol string, bars []types.MarketData, period int) (float64, error) {
	return e.computeScalar(types.IndicatorTypeMFI, symbol, bars, period)
}

// VWAP returns the volume-weighted average of typical price.
func (e *Engine) VWAP(symbol string, bars []types.MarketData, period int) (float64, error) {
	return e.computeScalar(types.IndicatorTypeVWAP, symbol, bars, period)
}

// ATR returns the Wilder-smoothed average true range.
func (e *Engine) ATR(symbol string, bars []types.MarketData, period int) (float64, error) {
	return e.computeScalar(types.IndicatorTypeATR, symbol, bars, period)
}

// WilliamsR returns Williams %R in [-100, 0].
func (e *Engine) WilliamsR(symbol string, bars []types.MarketData, period int) (float64, error) {
	return e.computeScalar(types.IndicatorTypeWilliamsR, symbol, bars, period)
}

// CCI returns the commodity channel index.
func (e *Engine) CCI(symbol string, bars []types.MarketData, period int) (float64, error) {
	return e.computeScalar(types.IndicatorTypeCCI, symbol, bars, period)
}

// OBV returns the cumulative on-balance volume.
func (e *Engine) OBV(symbol string, bars []types.MarketData) (float64, error) {
	return e.computeScalar(types.IndicatorTypeOBV, symbol, bars)
}

// MACD returns the MACD line, signal line and histogram.
func (e *Engine) MACD(symbol string, bars []types.MarketData, fastPeriod, slowPeriod, signalPeriod int) (types.MACDResult, error) {
	value, err := e.Compute(types.IndicatorTypeMACD, symbol, bars, fastPeriod, slowPeriod, signalPeriod)
	if err != nil {
		return types.MACDResult{}, err
	}

	result, ok := value.(types.MACDResult)
	if !ok {
		return types.MACDResult{}, errors.Newf(errors.ErrCodeInvalidType, "macd returned %T", value)
	}

	return result, nil
}

// Stochastic returns the smoothed %K/%D oscillator values.
func (e *Engine) Stochastic(symbol string, bars []types.MarketData, kPeriod, smoothK, smoothD int) (types.StochasticResult, error) {
	value, err := e.Compute(types.IndicatorTypeStochastic, symbol, bars, kPeriod, smoothK, smoothD)
	if err != nil {
		return types.StochasticResult{}, err
	}

	result, ok := value.(types.StochasticResult)
	if !ok {
		return types.StochasticResult{}, errors.Newf(errors.ErrCodeInvalidType, "stochastic returned %T", value)
	}

	return result, nil
}

// ADX returns the average directional index with both DI lines.
func (e *Engine) ADX(symbol string, bars []types.MarketData, period int) (types.ADXResult, error) {
	value, err := e.Compute(types.IndicatorTypeADX, symbol, bars, period)
	if err != nil {
		return types.ADXResult{}, err
	}

	result, ok := value.(types.ADXResult)
	if !ok {
		return types.ADXResult{}, errors.Newf(errors.ErrCodeInvalidType, "adx returned %T", value)
	}

	return result, nil
}

// BollingerBands returns the upper/middle/lower bands.
func (e *Engine) BollingerBands(symbol string, bars []types.MarketData, period int, stdDevMultiplier float64) (types.BollingerBandsResult, error) {
	value, err := e.Compute(types.IndicatorTypeBollingerBands, symbol, bars, period, stdDevMultiplier)
	if err != nil {
		return types.BollingerBandsResult{}, err
	}

	result, ok := value.(types.BollingerBandsResult)
	if !ok {
		return types.BollingerBandsResult{}, errors.Newf(errors.ErrCodeInvalidType, "bollinger_bands returned %T", value)
	}

	return result, nil
}
