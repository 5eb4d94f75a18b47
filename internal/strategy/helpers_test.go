package strategy

import (
	"math"

	"github.com/rxtech-lab/argo-sweep/internal/types"
)

func candlesFromCloses(closes ...float64) []types.Candle {
	candles := make([]types.Candle, 0, len(closes))

	for i, c := range closes {
		candles = append(candles, types.Candle{
			Timestamp: int64(i) * 60,
			Symbol:    "TEST",
			Timeframe: types.Timeframe1m,
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1,
			Closed:    true,
		})
	}

	return candles
}

func sineCloses(n int) []float64 {
	closes := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		closes = append(closes, 100+10*math.Sin(float64(i)*2*math.Pi/20))
	}

	return closes
}

// replay drives the strategy the way the backtest engine does and returns the emitted signals.
func replay(s Strategy, candles []types.Candle) []types.Signal {
	signals := make([]types.Signal, 0, len(candles))

	for _, c := range candles {
		signal := s.OnCandle(c)
		s.ProcessSignal(signal, c)
		signals = append(signals, signal)
	}

	return signals
}
