package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-sweep/internal/indicator"
	"github.com/rxtech-lab/argo-sweep/internal/types"
)

// RSIMACDStrategy enters on either a bullish RSI or MACD crossing and exits on either bearish one.
type RSIMACDStrategy struct {
	*base
	rsi  indicator.Indicator
	macd indicator.Indicator
}

// NewRSIMACDStrategy creates a combined strategy from a validated config.
func NewRSIMACDStrategy(cfg types.StrategyConfig) (*RSIMACDStrategy, error) {
	cfg.Kind = types.StrategyKindRSIMACD
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	rsi := indicator.NewRSI()
	if err := rsi.Config(cfg.RSIPeriod); err != nil {
		return nil, err
	}

	macd := indicator.NewMACD()
	if err := macd.Config(cfg.FastPeriod, cfg.SlowPeriod, cfg.SignalPeriod); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("RSI(%d, %g/%g)+MACD(%d, %d, %d)", cfg.RSIPeriod, cfg.Oversold, cfg.Overbought,
		cfg.FastPeriod, cfg.SlowPeriod, cfg.SignalPeriod)

	b, err := newBase(name, cfg, rsi, macd)
	if err != nil {
		return nil, err
	}

	return &RSIMACDStrategy{base: b, rsi: rsi, macd: macd}, nil
}

func (s *RSIMACDStrategy) OnCandle(candle types.Candle) types.Signal {
	prevRSI := s.rsi.Last()
	prevMACD := s.macd.Last()
	s.indicators.Update(candle.Close)

	rsiBull, rsiBear := rsiCrossings(prevRSI, s.rsi.Last(), s.config)
	macdBull, macdBear := macdCrossings(prevMACD, s.macd.Last())

	return s.decide(candle, rsiBull || macdBull, rsiBear || macdBear)
}
