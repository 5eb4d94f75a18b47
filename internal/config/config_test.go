package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

const minimalConfig = `
data:
  path: data/btc.parquet
  symbol: BTCUSDT
strategy:
  kind: macd
  ranges:
    - name: fast_period
      start: 8
      end: 12
    - name: slow_period
      start: 20
      end: 30
      step: 5
`

func (suite *ConfigTestSuite) TestParseAppliesDefaults() {
	cfg, err := Parse([]byte(minimalConfig))
	suite.Require().NoError(err)

	suite.Equal(types.Timeframe1h, cfg.Data.Timeframe)
	suite.Equal(100000.0, cfg.Backtest.InitialCapital)
	suite.Equal(1024, cfg.Backtest.Engine.CancelCheckInterval)
	suite.False(cfg.Backtest.Engine.ForceCloseAtEnd)
	suite.Equal(3, cfg.Sweep.Top)
	suite.Equal("results", cfg.Output.Path)
	suite.True(cfg.Data.Start().IsNone())
	suite.Len(cfg.Strategy.Ranges, 2)
	suite.Equal(5, cfg.Strategy.Ranges[1].Step)
}

func (suite *ConfigTestSuite) TestParseFullConfig() {
	cfg, err := Parse([]byte(`
version: v0.3.2
data:
  path: data/eth.csv
  symbol: ETHUSDT
  timeframe: 15m
  start_time: 2024-01-01T00:00:00Z
  end_time: 2024-02-01T00:00:00Z
strategy:
  kind: rsi
  ranges:
    - name: rsi_period
      start: 7
      end: 21
      step: 7
  fixed:
    oversold: 25
    overbought: 75
backtest:
  initial_capital: 5000
  engine:
    force_close_at_end: true
sweep:
  workers: 2
  timeout: 90s
  keep_results: true
output:
  path: out
`))
	suite.Require().NoError(err)

	suite.Equal(types.Timeframe15m, cfg.Data.Timeframe)
	suite.True(cfg.Data.Start().IsSome())
	suite.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), cfg.Data.End().Unwrap().UTC())
	suite.Equal(5000.0, cfg.Backtest.InitialCapital)
	suite.True(cfg.Backtest.Engine.ForceCloseAtEnd)
	suite.Equal(90*time.Second, cfg.Sweep.Timeout)
	suite.Equal(25.0, cfg.FixedParams()[types.ParamOversold])

	options := cfg.Options()
	suite.Equal(2, options.Workers)
	suite.True(options.KeepResults)
}

func (suite *ConfigTestSuite) TestParseErrors() {
	tests := []struct {
		name    string
		replace func(cfg *SweepConfig)
		code    errors.ErrorCode
	}{
		{name: "missing symbol", replace: func(cfg *SweepConfig) { cfg.Data.Symbol = "" }, code: errors.ErrCodeInvalidConfiguration},
		{name: "bad timeframe", replace: func(cfg *SweepConfig) { cfg.Data.Timeframe = "7m" }, code: errors.ErrCodeInvalidTimeframe},
		{name: "zero capital", replace: func(cfg *SweepConfig) { cfg.Backtest.InitialCapital = -1 }, code: errors.ErrCodeInvalidConfiguration},
		{name: "unknown kind", replace: func(cfg *SweepConfig) { cfg.Strategy.Kind = "bollinger" }, code: errors.ErrCodeUnsupportedStrategy},
		{name: "unknown fixed param", replace: func(cfg *SweepConfig) { cfg.Strategy.Fixed = map[string]float64{"leverage": 3} }, code: errors.ErrCodeInvalidParameter},
		{name: "unknown axis", replace: func(cfg *SweepConfig) { cfg.Strategy.Ranges[0].Name = "lookback" }, code: errors.ErrCodeInvalidParameter},
		{name: "reversed range", replace: func(cfg *SweepConfig) { cfg.Strategy.Ranges[0].Start = 99 }, code: errors.ErrCodeInvalidRange},
		{name: "incompatible version", replace: func(cfg *SweepConfig) { cfg.Version = "v9.0.0" }, code: errors.ErrCodeVersionMismatch},
		{
			name: "end before start",
			replace: func(cfg *SweepConfig) {
				start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
				end := start.Add(-time.Hour)
				cfg.Data.StartTime = &start
				cfg.Data.EndTime = &end
			},
			code: errors.ErrCodeInvalidRange,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			cfg := Default()
			tt.replace(&cfg)

			data, err := cfg.Marshal()
			suite.Require().NoError(err)

			_, err = Parse(data)
			suite.Require().Error(err)
			suite.Equal(tt.code, errors.GetCode(err))
		})
	}
}

func (suite *ConfigTestSuite) TestParseRejectsMalformedYAML() {
	_, err := Parse([]byte("data: [unterminated"))
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))
}

func (suite *ConfigTestSuite) TestDefaultRoundTripsThroughFile() {
	data, err := Default().Marshal()
	suite.Require().NoError(err)
	suite.Contains(string(data), "# yaml-language-server: $schema="+SchemaFileName)

	path := filepath.Join(suite.T().TempDir(), "sweep.yaml")
	suite.Require().NoError(os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal(Default(), cfg)
}

func (suite *ConfigTestSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	schemaJSON, err := GenerateSchemaJSON()
	suite.Require().NoError(err)

	var schema map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(schemaJSON), &schema))
	suite.Equal("argo-sweep-config", schema["title"])

	properties, ok := schema["properties"].(map[string]any)
	suite.Require().True(ok)

	for _, key := range []string{"version", "data", "strategy", "backtest", "sweep", "output"} {
		suite.Contains(properties, key)
	}

	suite.Contains(schemaJSON, `"15m"`)
	suite.Contains(schemaJSON, `"rsi_macd"`)
}
