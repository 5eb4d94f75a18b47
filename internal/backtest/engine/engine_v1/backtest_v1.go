package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-sweep/internal/backtest/engine"
	"github.com/rxtech-lab/argo-sweep/internal/logger"
	"github.com/rxtech-lab/argo-sweep/internal/strategy"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"go.uber.org/zap"
)

type BacktestEngineV1 struct {
	config    engine.Config
	callbacks engine.LifecycleCallbacks
	log       *logger.Logger
}

// NewBacktestEngineV1 creates an engine. A nil logger discards all output.
func NewBacktestEngineV1(config engine.Config, callbacks engine.LifecycleCallbacks, log *logger.Logger) engine.Engine {
	if config.CancelCheckInterval <= 0 {
		config.CancelCheckInterval = engine.DefaultConfig().CancelCheckInterval
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BacktestEngineV1{
		config:    config,
		callbacks: callbacks,
		log:       log,
	}
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, s strategy.Strategy, candles []types.Candle, initialCapital float64) (result types.BacktestResult, err error) {
	runID := uuid.New()

	defer func() {
		if b.callbacks.OnRunEnd != nil {
			(*b.callbacks.OnRunEnd)(runID.String(), err)
		}
	}()

	if s == nil {
		return types.BacktestResult{}, errors.New(errors.ErrCodeInvalidParameter, "strategy is required")
	}

	if initialCapital <= 0 {
		return types.BacktestResult{}, errors.Newf(errors.ErrCodeInvalidCapital, "initial capital must be positive, got %v", initialCapital)
	}

	closed, err := b.preRunCheck(s, candles)
	if err != nil {
		return types.BacktestResult{}, err
	}

	if err := s.SetInitialCapital(initialCapital); err != nil {
		return types.BacktestResult{}, err
	}

	if b.callbacks.OnRunStart != nil {
		if err := (*b.callbacks.OnRunStart)(runID.String(), s.Name(), len(closed)); err != nil {
			return types.BacktestResult{}, err
		}
	}

	log := b.log.With(
		zap.String("run_id", runID.String()),
		zap.String("strategy", s.Name()),
		zap.String("symbol", closed[0].Symbol),
		zap.String("timeframe", closed[0].Timeframe.String()),
	)
	log.Debug("Starting backtest", zap.Int("candles", len(closed)), zap.Float64("initial_capital", initialCapital))

	signals := make([]types.SignalPoint, 0, len(closed))

	for i, candle := range closed {
		if i%b.config.CancelCheckInterval == 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				log.Info("Backtest cancelled", zap.Int("processed", i))

				return types.BacktestResult{}, errors.Wrap(errors.ErrCodeBacktestCancelled, "backtest cancelled", ctxErr)
			}
		}

		signal := s.OnCandle(candle)
		signals = append(signals, types.SignalPoint{Timestamp: candle.Timestamp, Signal: signal, Price: candle.Close})

		if changed := s.ProcessSignal(signal, candle); !changed && signal != types.SignalHold {
			log.Error("Strategy emitted a signal its state refused",
				zap.String("signal", string(signal)),
				zap.String("position", string(s.Position())),
				zap.Int64("timestamp", candle.Timestamp),
			)

			return types.BacktestResult{}, errors.Newf(errors.ErrCodeInvariantViolation,
				"strategy %s emitted %s while %s at %d", s.Name(), signal, s.Position(), candle.Timestamp)
		}

		if b.callbacks.OnProcessData != nil {
			if err := (*b.callbacks.OnProcessData)(i+1, len(closed)); err != nil {
				return types.BacktestResult{}, err
			}
		}
	}

	last := closed[len(closed)-1]
	forceClosed := false

	if b.config.ForceCloseAtEnd && s.Position() == types.PositionLong {
		forceClosed = s.ClosePosition(last)
		log.Debug("Force closed open position", zap.Float64("price", last.Close))
	}

	result = types.BacktestResult{
		ID:               runID,
		StrategyName:     s.Name(),
		Config:           s.Config(),
		Symbol:           last.Symbol,
		Timeframe:        last.Timeframe,
		InitialCapital:   initialCapital,
		Trades:           s.Trades(),
		EquityCurve:      s.EquityCurve(),
		Signals:          signals,
		Metrics:          s.Metrics(),
		CandlesProcessed: len(closed),
		ForceClosed:      forceClosed,
		StartTime:        closed[0].Timestamp,
		EndTime:          last.Timestamp,
	}

	log.Debug("Backtest finished",
		zap.Int("trades", result.Metrics.TotalTrades),
		zap.Float64("total_pnl", result.Metrics.TotalPnL),
	)

	return result, nil
}

// preRunCheck validates the ordering of the input and returns the closed candles.
func (b *BacktestEngineV1) preRunCheck(s strategy.Strategy, candles []types.Candle) ([]types.Candle, error) {
	if len(candles) == 0 {
		return nil, errors.NewInsufficientDataError(s.WarmupPeriod(), 0, "", "no candles to backtest")
	}

	closed := make([]types.Candle, 0, len(candles))
	skipped := 0

	for _, candle := range candles {
		if !candle.Closed {
			skipped++

			b.log.Debug("Skipping open candle",
				zap.String("symbol", candle.Symbol),
				zap.Int64("timestamp", candle.Timestamp),
			)

			continue
		}

		if len(closed) > 0 {
			prev := closed[len(closed)-1]
			if candle.Symbol != prev.Symbol || candle.Timeframe != prev.Timeframe {
				return nil, errors.Newf(errors.ErrCodeOutOfOrderData,
					"mixed streams: %s/%s after %s/%s", candle.Symbol, candle.Timeframe, prev.Symbol, prev.Timeframe)
			}

			if candle.Timestamp <= prev.Timestamp {
				return nil, errors.Newf(errors.ErrCodeOutOfOrderData,
					"candle timestamp %d is not after %d", candle.Timestamp, prev.Timestamp)
			}
		}

		closed = append(closed, candle)
	}

	if skipped > 0 {
		b.log.Info("Skipped open candles", zap.Int("skipped", skipped))
	}

	symbol := ""
	if len(closed) > 0 {
		symbol = closed[0].Symbol
	}

	if warmup := s.WarmupPeriod(); len(closed) == 0 || len(closed) < warmup {
		return nil, errors.NewInsufficientDataErrorf(warmup, len(closed), symbol,
			"%s needs at least %d closed candles, got %d", s.Name(), warmup, len(closed))
	}

	return closed, nil
}
