package types

type IndicatorType string

const (
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeSMA            IndicatorType = "sma"
	IndicatorTypeVolatility     IndicatorType = "volatility"
	IndicatorTypeMFI            IndicatorType = "mfi"
	IndicatorTypeVWAP           IndicatorType = "vwap"
	IndicatorTypeStochastic     IndicatorType = "stochastic"
	IndicatorTypeADX            IndicatorType = "adx"
	IndicatorTypeATR            IndicatorType = "atr"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeWilliamsR      IndicatorType = "williams_r"
	IndicatorTypeCCI            IndicatorType = "cci"
	IndicatorTypeOBV            IndicatorType = "obv"
)

// MACDResult holds the MACD line, its signal line, and the histogram
// (macd - signal) for the most recent bar.
type MACDResult struct {
	MACD      float64 `yaml:"macd" json:"macd"`
	Signal    float64 `yaml:"signal" json:"signal"`
	Histogram float64 `yaml:"histogram" json:"histogram"`
}

// StochasticResult holds the smoothed %K and %D oscillator values.
type StochasticResult struct {
	PercentK float64 `yaml:"percent_k" json:"percent_k"`
	PercentD float64 `yaml:"percent_d" json:"percent_d"`
}

// ADXResult holds the trend-strength index and the directional lines.
type ADXResult struct {
	ADX     float64 `yaml:"adx" json:"adx"`
	PlusDI  float64 `yaml:"plus_di" json:"plus_di"`
	MinusDI float64 `yaml:"minus_di" json:"minus_di"`
}

// BollingerBandsResult holds the upper, middle and lower band values.
type BollingerBandsResult struct {
	Upper  float64 `yaml:"upper" json:"upper"`
	Middle float64 `yaml:"middle" json:"middle"`
	Lower  float64 `yaml:"lower" json:"lower"`
}
