package engine

import (
	"context"

	"github.com/rxtech-lab/argo-sweep/internal/strategy"
	"github.com/rxtech-lab/argo-sweep/internal/types"
)

// Lifecycle callback types for a backtest run
// All callbacks with error return can abort execution if they return an error

// OnRunStartCallback is called once the input has been validated, before the first candle.
// runID is the id the returned BacktestResult will carry.
type OnRunStartCallback func(runID string, strategyName string, totalCandles int) error

// OnRunEndCallback is called when a run ends, successfully or not.
type OnRunEndCallback func(runID string, err error)

// OnProcessDataCallback is called after each closed candle is processed.
type OnProcessDataCallback func(current int, total int) error

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnRunStart    *OnRunStartCallback
	OnRunEnd      *OnRunEndCallback
	OnProcessData *OnProcessDataCallback
}

// Config controls how the engine replays candles.
type Config struct {
	// ForceCloseAtEnd closes a position still open after the last candle at its close.
	// The equity curve is not extended by the close.
	ForceCloseAtEnd bool `yaml:"force_close_at_end" json:"force_close_at_end" default:"false"`
	// CancelCheckInterval is the number of candles between context checks.
	CancelCheckInterval int `yaml:"cancel_check_interval" json:"cancel_check_interval" default:"1024" validate:"gt=0"`
}

// DefaultConfig returns the engine configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		ForceCloseAtEnd:     false,
		CancelCheckInterval: 1024,
	}
}

// Engine replays an ordered candle sequence through one strategy.
type Engine interface {
	// Run resets the strategy with initialCapital, feeds it every closed candle in order and
	// returns the result. Candles must belong to one symbol and timeframe with strictly
	// increasing timestamps. Implementations are safe for concurrent use with distinct strategies.
	Run(ctx context.Context, s strategy.Strategy, candles []types.Candle, initialCapital float64) (types.BacktestResult, error)
}
