package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/types"
)

// Value is the output of one indicator update. Type tells which fields are set.
type Value struct {
	Type types.IndicatorType `yaml:"type" json:"type"`
	// RSI is set for types.IndicatorTypeRSI
	RSI float64 `yaml:"rsi,omitempty" json:"rsi,omitempty"`
	// EMA is set for types.IndicatorTypeEMA
	EMA float64 `yaml:"ema,omitempty" json:"ema,omitempty"`
	// MACD, Signal and Histogram are set for types.IndicatorTypeMACD
	MACD      float64 `yaml:"macd,omitempty" json:"macd,omitempty"`
	Signal    float64 `yaml:"signal,omitempty" json:"signal,omitempty"`
	Histogram float64 `yaml:"histogram,omitempty" json:"histogram,omitempty"`
}

// Indicator is a stateful rolling-window calculator that consumes one close per Update.
// Implementations own their window and are not safe for concurrent use.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config sets the periods and clears all state
	Config(params ...any) error
	// Update consumes one close and returns the current value, or None during warm-up
	Update(close float64) optional.Option[Value]
	// Last returns the value produced by the latest Update, or None during warm-up
	Last() optional.Option[Value]
	// Ready reports whether the warm-up has completed
	Ready() bool
	// WarmupPeriod is the number of closes needed before the first value
	WarmupPeriod() int
	// Reset clears all state but keeps the configuration
	Reset()
}
