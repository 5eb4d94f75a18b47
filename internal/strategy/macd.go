package strategy

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/indicator"
	"github.com/rxtech-lab/argo-sweep/internal/types"
)

// MACDStrategy buys when the MACD line crosses above its signal line and sells on the
// opposite crossing, detected through the sign of the histogram.
type MACDStrategy struct {
	*base
	macd indicator.Indicator
}

// NewMACDStrategy creates a MACD strategy from a validated config.
func NewMACDStrategy(cfg types.StrategyConfig) (*MACDStrategy, error) {
	cfg.Kind = types.StrategyKindMACD
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	macd := indicator.NewMACD()
	if err := macd.Config(cfg.FastPeriod, cfg.SlowPeriod, cfg.SignalPeriod); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("MACD(%d, %d, %d)", cfg.FastPeriod, cfg.SlowPeriod, cfg.SignalPeriod)

	b, err := newBase(name, cfg, macd)
	if err != nil {
		return nil, err
	}

	return &MACDStrategy{base: b, macd: macd}, nil
}

func (s *MACDStrategy) OnCandle(candle types.Candle) types.Signal {
	prev := s.macd.Last()
	s.indicators.Update(candle.Close)
	bullish, bearish := macdCrossings(prev, s.macd.Last())

	return s.decide(candle, bullish, bearish)
}

// macdCrossings reports a histogram move from < 0 to >= 0 and from > 0 to <= 0.
func macdCrossings(prev, curr optional.Option[indicator.Value]) (bool, bool) {
	if prev.IsNone() || curr.IsNone() {
		return false, false
	}

	p := prev.Unwrap().Histogram
	c := curr.Unwrap().Histogram

	return p < 0 && c >= 0, p > 0 && c <= 0
}
