package types

import "github.com/shopspring/decimal"

// ExitReason explains why a position was closed.
type ExitReason string

const (
	ExitReasonSignal     ExitReason = "signal"
	ExitReasonStopLoss   ExitReason = "stop_loss"
	ExitReasonTakeProfit ExitReason = "take_profit"
	ExitReasonForceClose ExitReason = "force_close"
)

// Trade is a completed round trip. It is created when a position closes and never changes afterwards.
type Trade struct {
	EntryTime  int64     `yaml:"entry_time" json:"entry_time" csv:"entry_time"`
	EntryPrice float64   `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	ExitTime   int64     `yaml:"exit_time" json:"exit_time" csv:"exit_time"`
	ExitPrice  float64   `yaml:"exit_price" json:"exit_price" csv:"exit_price"`
	Direction  Direction `yaml:"direction" json:"direction" csv:"direction"`
	Quantity   float64   `yaml:"quantity" json:"quantity" csv:"quantity"`
	// PnL is (exit - entry) * quantity * direction
	PnL float64 `yaml:"pnl" json:"pnl" csv:"pnl"`
	// PnLPercent is the price move relative to the entry, in percent
	PnLPercent float64    `yaml:"pnl_percent" json:"pnl_percent" csv:"pnl_percent"`
	ExitReason ExitReason `yaml:"exit_reason" json:"exit_reason" csv:"exit_reason"`
}

// NewTrade builds a closed trade and computes its pnl with decimal arithmetic.
func NewTrade(entryTime int64, entryPrice float64, exitTime int64, exitPrice float64,
	direction Direction, quantity float64, reason ExitReason) Trade {
	return Trade{
		EntryTime:  entryTime,
		EntryPrice: entryPrice,
		ExitTime:   exitTime,
		ExitPrice:  exitPrice,
		Direction:  direction,
		Quantity:   quantity,
		PnL:        CalculatePnL(entryPrice, exitPrice, quantity, direction),
		PnLPercent: calculatePnLPercent(entryPrice, exitPrice, direction),
		ExitReason: reason,
	}
}

// CalculatePnL returns (exit - entry) * quantity * direction.
func CalculatePnL(entryPrice, exitPrice, quantity float64, direction Direction) float64 {
	move := decimal.NewFromFloat(exitPrice).Sub(decimal.NewFromFloat(entryPrice))

	return move.
		Mul(decimal.NewFromFloat(quantity)).
		Mul(decimal.NewFromFloat(direction.Multiplier())).
		InexactFloat64()
}

func calculatePnLPercent(entryPrice, exitPrice float64, direction Direction) float64 {
	if entryPrice == 0 {
		return 0
	}

	entry := decimal.NewFromFloat(entryPrice)

	return decimal.NewFromFloat(exitPrice).Sub(entry).
		Div(entry).
		Mul(decimal.NewFromInt(100)).
		Mul(decimal.NewFromFloat(direction.Multiplier())).
		InexactFloat64()
}

// EquityPoint is the marked-to-market equity after one candle.
type EquityPoint struct {
	Timestamp int64   `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
	Equity    float64 `yaml:"equity" json:"equity" csv:"equity"`
}
