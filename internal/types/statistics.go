package types

import (
	"github.com/shopspring/decimal"
)

// Metrics summarizes the performance of one backtest run.
type Metrics struct {
	// TotalPnL is the sum of realized trade pnl.
	TotalPnL float64 `yaml:"total_pnl" json:"total_pnl"`
	// TotalPnLPercent is TotalPnL relative to the initial capital, in percent.
	TotalPnLPercent float64 `yaml:"total_pnl_percent" json:"total_pnl_percent"`
	// WinRate is winning trades / total trades in [0, 1]. Zero when there are no trades.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// Count of all closed trades.
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// Count of trades with positive pnl.
	WinningTrades int `yaml:"winning_trades" json:"winning_trades"`
	// Count of trades with pnl <= 0.
	LosingTrades int     `yaml:"losing_trades" json:"losing_trades"`
	AvgPnL       float64 `yaml:"avg_pnl" json:"avg_pnl"`
	// MaxDrawdown is the largest absolute peak-to-trough decline of the equity curve.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// MaxDrawdownPercent is the largest decline relative to its peak, in percent.
	MaxDrawdownPercent float64 `yaml:"max_drawdown_percent" json:"max_drawdown_percent"`
	// UnrealizedPnL of a position still open at the end of the run.
	UnrealizedPnL float64 `yaml:"unrealized_pnl" json:"unrealized_pnl"`
	FinalEquity   float64 `yaml:"final_equity" json:"final_equity"`
	ReturnPercent float64 `yaml:"return_percent" json:"return_percent"`
}

// ComputeMetrics derives the run metrics from the trade log and equity curve.
// The drawdown peak starts at the initial capital.
func ComputeMetrics(trades []Trade, equityCurve []EquityPoint, initialCapital float64, unrealizedPnL float64) Metrics {
	total := decimal.Zero
	winning := 0

	for _, trade := range trades {
		total = total.Add(decimal.NewFromFloat(trade.PnL))

		if trade.PnL > 0 {
			winning++
		}
	}

	metrics := Metrics{
		TotalPnL:           total.InexactFloat64(),
		TotalPnLPercent:    0,
		WinRate:            0,
		TotalTrades:        len(trades),
		WinningTrades:      winning,
		LosingTrades:       len(trades) - winning,
		AvgPnL:             0,
		MaxDrawdown:        0,
		MaxDrawdownPercent: 0,
		UnrealizedPnL:      unrealizedPnL,
		FinalEquity:        0,
		ReturnPercent:      0,
	}

	if len(trades) > 0 {
		count := decimal.NewFromInt(int64(len(trades)))
		metrics.WinRate = float64(winning) / float64(len(trades))
		metrics.AvgPnL = total.Div(count).InexactFloat64()
	}

	capital := decimal.NewFromFloat(initialCapital)
	finalEquity := capital.Add(total).Add(decimal.NewFromFloat(unrealizedPnL))
	metrics.FinalEquity = finalEquity.InexactFloat64()

	if initialCapital > 0 {
		hundred := decimal.NewFromInt(100)
		metrics.TotalPnLPercent = total.Div(capital).Mul(hundred).InexactFloat64()
		metrics.ReturnPercent = finalEquity.Sub(capital).Div(capital).Mul(hundred).InexactFloat64()
	}

	metrics.MaxDrawdown, metrics.MaxDrawdownPercent = maxDrawdown(equityCurve, initialCapital)

	return metrics
}

func maxDrawdown(equityCurve []EquityPoint, initialCapital float64) (float64, float64) {
	peak := initialCapital
	maxAbs := 0.0
	maxPct := 0.0

	for _, point := range equityCurve {
		if point.Equity > peak {
			peak = point.Equity

			continue
		}

		drawdown := peak - point.Equity
		if drawdown > maxAbs {
			maxAbs = drawdown
		}

		if peak > 0 {
			pct := drawdown / peak * 100
			if pct > maxPct {
				maxPct = pct
			}
		}
	}

	return maxAbs, maxPct
}
