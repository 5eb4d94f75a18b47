package types

import "github.com/rxtech-lab/argo-sweep/pkg/errors"

// Signal is the decision a strategy takes for one candle.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// SignalPoint is the signal a strategy emitted for one closed candle.
type SignalPoint struct {
	Timestamp int64   `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
	Signal    Signal  `yaml:"signal" json:"signal" csv:"signal"`
	Price     float64 `yaml:"price" json:"price" csv:"price"`
}

// Position is the state of the strategy state machine.
type Position string

const (
	PositionFlat Position = "FLAT"
	PositionLong Position = "LONG"
)

// Direction of a trade. Only long trades are produced.
type Direction int

const (
	DirectionLong Direction = 1
)

// Multiplier is the sign applied to price moves when computing pnl.
func (d Direction) Multiplier() float64 {
	return float64(d)
}

func (d Direction) String() string {
	if d == DirectionLong {
		return "LONG"
	}

	return "UNKNOWN"
}

// MarshalText encodes the direction as its name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	if string(text) != "LONG" {
		return errors.Newf(errors.ErrCodeInvalidParameter, "unknown direction: %q", string(text))
	}

	*d = DirectionLong

	return nil
}
