package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/indicator"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

// base carries everything the concrete strategies share: config, indicators and position state.
type base struct {
	name       string
	config     types.StrategyConfig
	indicators indicator.IndicatorRegistry
	state      *positionState
	// exitReason is decided by OnCandle and consumed by the next ProcessSignal
	exitReason types.ExitReason
}

func newBase(name string, cfg types.StrategyConfig, indicators ...indicator.Indicator) (*base, error) {
	registry := indicator.NewIndicatorRegistry()
	for _, ind := range indicators {
		if err := registry.RegisterIndicator(ind); err != nil {
			return nil, err
		}
	}

	return &base{
		name:       name,
		config:     cfg,
		indicators: registry,
		state:      newPositionState(DefaultInitialCapital, cfg.Quantity),
		exitReason: types.ExitReasonSignal,
	}, nil
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Config() types.StrategyConfig {
	return b.config
}

// decide turns raw indicator conditions into a signal allowed in the current position.
// Stop-loss and take-profit take precedence over a bearish indicator condition.
func (b *base) decide(candle types.Candle, bullish, bearish bool) types.Signal {
	switch b.state.position {
	case types.PositionFlat:
		if bullish {
			return types.SignalBuy
		}
	case types.PositionLong:
		if reason := b.stopReason(candle); reason != "" {
			b.exitReason = reason

			return types.SignalSell
		}

		if bearish {
			b.exitReason = types.ExitReasonSignal

			return types.SignalSell
		}
	}

	return types.SignalHold
}

func (b *base) stopReason(candle types.Candle) types.ExitReason {
	entry := b.state.entryPrice

	if b.config.StopLossPercent > 0 && candle.Close <= entry*(1-b.config.StopLossPercent/100) {
		return types.ExitReasonStopLoss
	}

	if b.config.TakeProfitPercent > 0 && candle.Close >= entry*(1+b.config.TakeProfitPercent/100) {
		return types.ExitReasonTakeProfit
	}

	return ""
}

func (b *base) ProcessSignal(signal types.Signal, candle types.Candle) bool {
	changed := false

	b.state.mark(candle)

	switch signal {
	case types.SignalBuy:
		if b.state.position == types.PositionFlat {
			b.state.open(candle)
			changed = true
		}
	case types.SignalSell:
		if b.state.position == types.PositionLong {
			b.state.close(candle, b.exitReason)
			changed = true
		}
	case types.SignalHold:
	}

	b.exitReason = types.ExitReasonSignal
	b.state.appendEquity()

	return changed
}

func (b *base) ClosePosition(candle types.Candle) bool {
	if b.state.position != types.PositionLong {
		return false
	}

	b.state.mark(candle)
	b.state.close(candle, types.ExitReasonForceClose)

	return true
}

func (b *base) SetInitialCapital(capital float64) error {
	if capital <= 0 {
		return errors.Newf(errors.ErrCodeInvalidCapital, "initial capital must be positive, got %v", capital)
	}

	b.state.initialCapital = capital
	b.Reset()

	return nil
}

func (b *base) InitialCapital() float64 {
	return b.state.initialCapital
}

func (b *base) Position() types.Position {
	return b.state.position
}

func (b *base) EntryPrice() optional.Option[float64] {
	return b.state.entry()
}

func (b *base) OpenTrade() optional.Option[types.Trade] {
	return b.state.openTrade()
}

func (b *base) Trades() []types.Trade {
	trades := make([]types.Trade, len(b.state.trades))
	copy(trades, b.state.trades)

	return trades
}

func (b *base) EquityCurve() []types.EquityPoint {
	curve := make([]types.EquityPoint, len(b.state.equityCurve))
	copy(curve, b.state.equityCurve)

	return curve
}

func (b *base) Metrics() types.Metrics {
	return b.state.metrics()
}

func (b *base) Indicators() map[types.IndicatorType]indicator.Value {
	return b.indicators.Snapshot()
}

func (b *base) WarmupPeriod() int {
	warmup := 0

	for _, name := range b.indicators.ListIndicators() {
		ind, err := b.indicators.GetIndicator(name)
		if err != nil {
			continue
		}

		warmup = max(warmup, ind.WarmupPeriod())
	}

	return warmup
}

func (b *base) Reset() {
	b.indicators.Reset()
	b.state.reset()
	b.exitReason = types.ExitReasonSignal
}
