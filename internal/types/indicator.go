package types

type IndicatorType string

const (
	IndicatorTypeRSI  IndicatorType = "rsi"
	IndicatorTypeMACD IndicatorType = "macd"
	IndicatorTypeEMA  IndicatorType = "ema"
)
