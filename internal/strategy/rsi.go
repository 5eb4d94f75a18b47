package strategy

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/indicator"
	"github.com/rxtech-lab/argo-sweep/internal/types"
)

// RSIStrategy buys when RSI crosses up through the oversold level and sells when it
// crosses down through the overbought level.
type RSIStrategy struct {
	*base
	rsi indicator.Indicator
}

// NewRSIStrategy creates an RSI strategy from a validated config.
func NewRSIStrategy(cfg types.StrategyConfig) (*RSIStrategy, error) {
	cfg.Kind = types.StrategyKindRSI
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	rsi := indicator.NewRSI()
	if err := rsi.Config(cfg.RSIPeriod); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("RSI(%d, %g/%g)", cfg.RSIPeriod, cfg.Oversold, cfg.Overbought)

	b, err := newBase(name, cfg, rsi)
	if err != nil {
		return nil, err
	}

	return &RSIStrategy{base: b, rsi: rsi}, nil
}

func (s *RSIStrategy) OnCandle(candle types.Candle) types.Signal {
	prev := s.rsi.Last()
	s.indicators.Update(candle.Close)
	bullish, bearish := rsiCrossings(prev, s.rsi.Last(), s.config)

	return s.decide(candle, bullish, bearish)
}

// rsiCrossings reports prev < oversold <= curr and prev > overbought >= curr.
func rsiCrossings(prev, curr optional.Option[indicator.Value], cfg types.StrategyConfig) (bool, bool) {
	if prev.IsNone() || curr.IsNone() {
		return false, false
	}

	p := prev.Unwrap().RSI
	c := curr.Unwrap().RSI

	bullish := p < cfg.Oversold && c >= cfg.Oversold
	bearish := p > cfg.Overbought && c <= cfg.Overbought

	return bullish, bearish
}
