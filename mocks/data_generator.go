package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-sweep/internal/types"
)

// DataGenerator generates realistic candles and ticks for testing and benchmarking.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how market data is generated.
type GeneratorConfig struct {
	// Symbol is the trading symbol (e.g., "AAPL", "SPY")
	Symbol string
	// StartTime is the beginning of the data series
	StartTime time.Time
	// Timeframe is the duration of each candle
	Timeframe types.Timeframe
	// Count is the number of data points to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase int64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "TEST",
		StartTime:      time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Timeframe:      types.Timeframe1m,
		Count:          10000,
		InitialPrice:   100.0,
		Volatility:     0.002, // 0.2% per bar
		Trend:          0.0,   // neutral
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// Generate creates closed candles based on the configuration.
// The generated data follows a geometric Brownian motion model for realistic price movements.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.Candle {
	data := make([]types.Candle, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.Timeframe.BucketStart(config.StartTime.Unix())

	for i := 0; i < config.Count; i++ {
		// Generate OHLCV using geometric Brownian motion
		open := currentPrice

		// Generate intra-bar price movements
		// Using Box-Muller transform for normal distribution
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		// Price change with trend and volatility
		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count) // Distribute trend across bars

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99 // Prevent negative prices
		}

		// High and low are within the open-close range plus some extension
		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		// Volume with variance
		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := int64(float64(config.VolumeBase) * volumeVariation)
		if volume < 0 {
			volume = config.VolumeBase / 10
		}

		data[i] = types.Candle{
			Timestamp: currentTime,
			Symbol:    config.Symbol,
			Timeframe: config.Timeframe,
			Open:      roundToDecimals(open, 4),
			High:      roundToDecimals(high, 4),
			Low:       roundToDecimals(low, 4),
			Close:     roundToDecimals(close, 4),
			Volume:    volume,
			Closed:    true,
		}

		// Update for next iteration
		currentPrice = close
		currentTime += config.Timeframe.Seconds()
	}

	return data
}

// GenerateMultiSymbol generates candles for multiple symbols, one stream after the other.
func (g *DataGenerator) GenerateMultiSymbol(symbols []string, baseConfig GeneratorConfig) []types.Candle {
	var allData []types.Candle

	for _, symbol := range symbols {
		config := baseConfig
		config.Symbol = symbol
		// Vary initial price and volatility slightly per symbol
		config.InitialPrice = baseConfig.InitialPrice * (0.8 + g.rng.Float64()*0.4)
		config.Volatility = baseConfig.Volatility * (0.8 + g.rng.Float64()*0.4)

		symbolData := g.Generate(config)
		allData = append(allData, symbolData...)
	}

	return allData
}

// Generate10K is a convenience function to generate 10,000 candles
// with default settings for benchmarking.
func Generate10K(symbol string) []types.Candle {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Symbol = symbol
	config.Count = 10000
	return gen.Generate(config)
}

// Generate10KMultiSymbol generates 10,000 data points for each symbol.
func Generate10KMultiSymbol(symbols []string) []types.Candle {
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Count = 10000
	return gen.GenerateMultiSymbol(symbols, config)
}

// GenerateTicks produces ticksPerCandle ticks inside every candle bucket. The ticks of a bucket
// start at the candle open, touch its high and low and end at its close, so aggregating them
// reproduces the candles.
func (g *DataGenerator) GenerateTicks(config GeneratorConfig, ticksPerCandle int) []types.Tick {
	if ticksPerCandle < 4 {
		ticksPerCandle = 4
	}

	candles := g.Generate(config)
	ticks := make([]types.Tick, 0, len(candles)*ticksPerCandle)
	step := config.Timeframe.Seconds() / int64(ticksPerCandle)

	for _, c := range candles {
		prices := make([]float64, ticksPerCandle)
		prices[0] = c.Open
		prices[1] = c.High
		prices[2] = c.Low
		prices[ticksPerCandle-1] = c.Close

		for i := 3; i < ticksPerCandle-1; i++ {
			prices[i] = roundToDecimals(c.Low+g.rng.Float64()*(c.High-c.Low), 4)
		}

		volume := c.Volume / int64(ticksPerCandle)

		for i, price := range prices {
			tickVolume := volume
			if i == ticksPerCandle-1 {
				tickVolume = c.Volume - volume*int64(ticksPerCandle-1)
			}

			ticks = append(ticks, types.Tick{
				Timestamp: c.Timestamp + int64(i)*step,
				Symbol:    c.Symbol,
				Price:     price,
				Volume:    tickVolume,
			})
		}
	}

	return ticks
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
