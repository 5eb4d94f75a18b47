package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"github.com/shopspring/decimal"
)

// Parameter names understood by the strategy factory and the sweep grid.
const (
	ParamRSIPeriod         = "rsi_period"
	ParamOversold          = "oversold"
	ParamOverbought        = "overbought"
	ParamFastPeriod        = "fast_period"
	ParamSlowPeriod        = "slow_period"
	ParamSignalPeriod      = "signal_period"
	ParamStopLossPercent   = "stop_loss_percent"
	ParamTakeProfitPercent = "take_profit_percent"
	ParamQuantity          = "quantity"
)

// Combination is one point of a parameter grid.
type Combination struct {
	// Index is the position of the combination in grid enumeration order.
	Index  int            `yaml:"index" json:"index"`
	Params map[string]int `yaml:"params" json:"params"`
}

// SweepEntry is the summary of one successful combination.
type SweepEntry struct {
	Combination Combination `yaml:"combination" json:"combination"`
	// Config is the resolved strategy configuration, fixed parameters included.
	Config  StrategyConfig `yaml:"config" json:"config"`
	Metrics Metrics        `yaml:"metrics" json:"metrics"`
	// Result holds the full run when the sweep was asked to keep results.
	Result *BacktestResult `yaml:"result,omitempty" json:"result,omitempty"`
}

// SweepSkip records a combination rejected as an invalid configuration.
type SweepSkip struct {
	Combination Combination `yaml:"combination" json:"combination"`
	Reason      string      `yaml:"reason" json:"reason"`
}

// SweepFailure records a combination whose run returned an error.
type SweepFailure struct {
	Combination Combination      `yaml:"combination" json:"combination"`
	Code        errors.ErrorCode `yaml:"code" json:"code"`
	Message     string           `yaml:"message" json:"message"`
}

// SweepResult holds the ranked outcome of a parameter sweep.
// Entries are sorted by total pnl ascending. Ties keep enumeration order.
type SweepResult struct {
	ID                uuid.UUID      `yaml:"id" json:"id"`
	StrategyKind      StrategyKind   `yaml:"strategy_kind" json:"strategy_kind"`
	Symbol            string         `yaml:"symbol" json:"symbol"`
	Timeframe         Timeframe      `yaml:"timeframe" json:"timeframe"`
	InitialCapital    float64        `yaml:"initial_capital" json:"initial_capital"`
	TotalCombinations int            `yaml:"total_combinations" json:"total_combinations"`
	Entries           []SweepEntry   `yaml:"entries" json:"entries"`
	Skipped           []SweepSkip    `yaml:"skipped" json:"skipped"`
	Failures          []SweepFailure `yaml:"failures" json:"failures"`
	// Partial is true when the sweep was cancelled or timed out before every combination ran.
	Partial  bool          `yaml:"partial" json:"partial"`
	Duration time.Duration `yaml:"duration" json:"duration"`
}

// Best returns the n highest ranked entries, in ascending order.
func (r *SweepResult) Best(n int) []SweepEntry {
	if n <= 0 {
		return []SweepEntry{}
	}

	if n > len(r.Entries) {
		n = len(r.Entries)
	}

	return r.Entries[len(r.Entries)-n:]
}

// Worst returns the n lowest ranked entries, in ascending order.
func (r *SweepResult) Worst(n int) []SweepEntry {
	if n <= 0 {
		return []SweepEntry{}
	}

	if n > len(r.Entries) {
		n = len(r.Entries)
	}

	return r.Entries[:n]
}

// Processed is the number of combinations that produced an outcome.
func (r *SweepResult) Processed() int {
	return len(r.Entries) + len(r.Skipped) + len(r.Failures)
}

// SweepRow is a flat, rounded view of one entry for reporting layers.
type SweepRow struct {
	FastPeriod        int     `yaml:"fast_period" json:"fast_period" csv:"fast_period"`
	SlowPeriod        int     `yaml:"slow_period" json:"slow_period" csv:"slow_period"`
	SignalPeriod      int     `yaml:"signal_period" json:"signal_period" csv:"signal_period"`
	RSIPeriod         int     `yaml:"rsi_period" json:"rsi_period" csv:"rsi_period"`
	Oversold          float64 `yaml:"oversold" json:"oversold" csv:"oversold"`
	Overbought        float64 `yaml:"overbought" json:"overbought" csv:"overbought"`
	StopLossPercent   float64 `yaml:"stop_loss_percent" json:"stop_loss_percent" csv:"stop_loss_percent"`
	TakeProfitPercent float64 `yaml:"take_profit_percent" json:"take_profit_percent" csv:"take_profit_percent"`
	TotalPnL        float64 `yaml:"total_pnl" json:"total_pnl" csv:"total_pnl"`
	TotalPnLPercent float64 `yaml:"total_pnl_percent" json:"total_pnl_percent" csv:"total_pnl_percent"`
	WinRate         float64 `yaml:"win_rate" json:"win_rate" csv:"win_rate"`
	TotalTrades     int     `yaml:"total_trades" json:"total_trades" csv:"total_trades"`
	WinningTrades   int     `yaml:"winning_trades" json:"winning_trades" csv:"winning_trades"`
	LosingTrades    int     `yaml:"losing_trades" json:"losing_trades" csv:"losing_trades"`
	AvgPnL          float64 `yaml:"avg_pnl" json:"avg_pnl" csv:"avg_pnl"`
	MaxDrawdown     float64 `yaml:"max_drawdown" json:"max_drawdown" csv:"max_drawdown"`
	FinalEquity     float64 `yaml:"final_equity" json:"final_equity" csv:"final_equity"`
	ReturnPercent   float64 `yaml:"return_percent" json:"return_percent" csv:"return_percent"`
}

// Rows flattens the entries in ranking order. Parameters the strategy kind does not use are zero.
func (r *SweepResult) Rows() []SweepRow {
	return toRows(r.Entries)
}

// SweepSummary is the compact report of a sweep: counts plus the best and worst rows.
type SweepSummary struct {
	ID                uuid.UUID    `yaml:"id" json:"id"`
	StrategyKind      StrategyKind `yaml:"strategy_kind" json:"strategy_kind"`
	Symbol            string       `yaml:"symbol" json:"symbol"`
	Timeframe         Timeframe    `yaml:"timeframe" json:"timeframe"`
	TotalCombinations int          `yaml:"total_combinations" json:"total_combinations"`
	Succeeded         int          `yaml:"succeeded" json:"succeeded"`
	Skipped           int          `yaml:"skipped" json:"skipped"`
	Failed            int          `yaml:"failed" json:"failed"`
	Partial           bool         `yaml:"partial" json:"partial"`
	Best              []SweepRow   `yaml:"best" json:"best"`
	Worst             []SweepRow   `yaml:"worst" json:"worst"`
}

// Summary reports the n best and n worst entries, both in ascending order.
func (r *SweepResult) Summary(n int) SweepSummary {
	return SweepSummary{
		ID:                r.ID,
		StrategyKind:      r.StrategyKind,
		Symbol:            r.Symbol,
		Timeframe:         r.Timeframe,
		TotalCombinations: r.TotalCombinations,
		Succeeded:         len(r.Entries),
		Skipped:           len(r.Skipped),
		Failed:            len(r.Failures),
		Partial:           r.Partial,
		Best:              toRows(r.Best(n)),
		Worst:             toRows(r.Worst(n)),
	}
}

func toRows(entries []SweepEntry) []SweepRow {
	rows := make([]SweepRow, 0, len(entries))

	for _, entry := range entries {
		cfg := entry.Config
		m := entry.Metrics
		row := SweepRow{ //nolint:exhaustruct
			StopLossPercent:   cfg.StopLossPercent,
			TakeProfitPercent: cfg.TakeProfitPercent,
			TotalPnL:          round2(m.TotalPnL),
			TotalPnLPercent:   round2(m.TotalPnLPercent),
			WinRate:           round2(m.WinRate),
			TotalTrades:       m.TotalTrades,
			WinningTrades:     m.WinningTrades,
			LosingTrades:      m.LosingTrades,
			AvgPnL:            round2(m.AvgPnL),
			MaxDrawdown:       round2(m.MaxDrawdown),
			FinalEquity:       round2(m.FinalEquity),
			ReturnPercent:     round2(m.ReturnPercent),
		}

		if cfg.UsesMACD() {
			row.FastPeriod = cfg.FastPeriod
			row.SlowPeriod = cfg.SlowPeriod
			row.SignalPeriod = cfg.SignalPeriod
		}

		if cfg.UsesRSI() {
			row.RSIPeriod = cfg.RSIPeriod
			row.Oversold = cfg.Oversold
			row.Overbought = cfg.Overbought
		}

		rows = append(rows, row)
	}

	return rows
}

// WriteSweepResult writes the result as YAML to path.
func WriteSweepResult(path string, result *SweepResult) error {
	return writeYAML(path, result)
}

// WriteSweepSummary writes the summary as YAML to path.
func WriteSweepSummary(path string, summary SweepSummary) error {
	return writeYAML(path, summary)
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
