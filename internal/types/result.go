package types

import (
	"os"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"gopkg.in/yaml.v3"
)

// BacktestResult is the outcome of one engine run. It is not modified after being returned.
type BacktestResult struct {
	// ID is the unique identifier for this backtest run.
	ID             uuid.UUID      `yaml:"id" json:"id"`
	StrategyName   string         `yaml:"strategy_name" json:"strategy_name"`
	Config         StrategyConfig `yaml:"config" json:"config"`
	Symbol         string         `yaml:"symbol" json:"symbol"`
	Timeframe      Timeframe      `yaml:"timeframe" json:"timeframe"`
	InitialCapital float64        `yaml:"initial_capital" json:"initial_capital"`
	Trades         []Trade        `yaml:"trades" json:"trades"`
	EquityCurve    []EquityPoint  `yaml:"equity_curve" json:"equity_curve"`
	// Signals has one point per processed candle, in candle order.
	Signals []SignalPoint `yaml:"signals" json:"signals"`
	Metrics        Metrics        `yaml:"metrics" json:"metrics"`
	// CandlesProcessed counts the closed candles fed to the strategy.
	CandlesProcessed int `yaml:"candles_processed" json:"candles_processed"`
	// ForceClosed is true when an open position was closed at the final candle.
	ForceClosed bool `yaml:"force_closed" json:"force_closed"`
	// StartTime and EndTime are the first and last processed candle timestamps.
	StartTime int64 `yaml:"start_time" json:"start_time"`
	EndTime   int64 `yaml:"end_time" json:"end_time"`
}

// WriteBacktestResult writes the result as YAML to path.
func WriteBacktestResult(path string, result BacktestResult) error {
	return writeYAML(path, result)
}

func writeYAML(path string, value any) error {
	// Marshal the struct to YAML
	data, err := yaml.Marshal(value)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to marshal result to YAML", err)
	}

	// Write the YAML data to the file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write result to file", err)
	}

	return nil
}
