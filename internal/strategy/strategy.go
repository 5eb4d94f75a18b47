package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/indicator"
	"github.com/rxtech-lab/argo-sweep/internal/types"
)

// DefaultInitialCapital is used until SetInitialCapital is called.
const DefaultInitialCapital = 100000.0

// Strategy maps closed candles to signals and owns the resulting position state.
// ProcessSignal is the only way to open or close a position.
type Strategy interface {
	// Name returns a readable name including the parameters
	Name() string
	// Config returns the validated configuration
	Config() types.StrategyConfig
	// OnCandle updates the indicators with the candle close and returns the signal for it.
	// BUY is only returned while FLAT and SELL only while LONG.
	OnCandle(candle types.Candle) types.Signal
	// ProcessSignal applies the signal at the candle close and appends one equity point.
	// It returns false when the signal does not change the position.
	ProcessSignal(signal types.Signal, candle types.Candle) bool
	// ClosePosition force-closes an open position at the candle close without adding an equity point.
	ClosePosition(candle types.Candle) bool
	// SetInitialCapital sets the starting equity and resets all state
	SetInitialCapital(capital float64) error
	InitialCapital() float64
	Position() types.Position
	// EntryPrice is set iff the position is LONG
	EntryPrice() optional.Option[float64]
	// OpenTrade describes the open position, if any, marked at the latest close
	OpenTrade() optional.Option[types.Trade]
	// Trades returns a copy of the closed trades
	Trades() []types.Trade
	// EquityCurve returns a copy of the equity curve
	EquityCurve() []types.EquityPoint
	Metrics() types.Metrics
	// Indicators returns the latest value of every ready indicator
	Indicators() map[types.IndicatorType]indicator.Value
	// WarmupPeriod is the number of closes before every indicator has a value
	WarmupPeriod() int
	// Reset clears indicator and position state, keeping config and capital
	Reset()
}
