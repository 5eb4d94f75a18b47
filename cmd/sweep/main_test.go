package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-sweep/internal/datasource"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type SweepCLITestSuite struct {
	suite.Suite
	dir      string
	dataPath string
}

func TestSweepCLISuite(t *testing.T) {
	suite.Run(t, new(SweepCLITestSuite))
}

func (suite *SweepCLITestSuite) SetupSuite() {
	suite.dir = suite.T().TempDir()
	suite.dataPath = filepath.Join(suite.dir, "candles.parquet")

	config := mocks.DefaultConfig()
	config.Symbol = "BTCUSDT"
	config.Timeframe = types.Timeframe1h
	config.Count = 300
	candles := mocks.NewDataGenerator(7).Generate(config)

	writer := datasource.NewCandleWriter(suite.dataPath)
	suite.Require().NoError(writer.Initialize())

	for _, candle := range candles {
		suite.Require().NoError(writer.Write(candle))
	}

	_, err := writer.Finalize()
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())
}

func (suite *SweepCLITestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out

	err := app.Run(context.Background(), append([]string{"argo-sweep", "--log-level", "error"}, args...))

	return out.String(), err
}

func (suite *SweepCLITestSuite) TestRunWritesResultsAndMetrics() {
	outputDir := filepath.Join(suite.T().TempDir(), "results")
	metricsPath := filepath.Join(suite.T().TempDir(), "sweep.prom")
	configPath := filepath.Join(suite.T().TempDir(), "sweep.yaml")

	configYAML := fmt.Sprintf(`
data:
  path: %s
  symbol: BTCUSDT
  timeframe: 1h
strategy:
  kind: macd
  ranges:
    - name: fast_period
      start: 8
      end: 10
    - name: slow_period
      start: 20
      end: 22
    - name: signal_period
      start: 5
      end: 5
sweep:
  workers: 2
  top: 2
output:
  path: %s
`, suite.dataPath, outputDir)
	suite.Require().NoError(os.WriteFile(configPath, []byte(configYAML), 0o644))

	out, err := suite.run("run", "--config", configPath, "--no-progress", "--metrics-file", metricsPath)
	suite.Require().NoError(err)
	suite.Contains(out, "9 combinations")
	suite.Contains(out, "Best:")

	dirs, err := os.ReadDir(outputDir)
	suite.Require().NoError(err)
	suite.Require().Len(dirs, 1)

	sweepDir := filepath.Join(outputDir, dirs[0].Name())
	suite.FileExists(filepath.Join(sweepDir, "sweep.yaml"))

	data, err := os.ReadFile(filepath.Join(sweepDir, "summary.yaml"))
	suite.Require().NoError(err)

	var summary types.SweepSummary
	suite.Require().NoError(yaml.Unmarshal(data, &summary))
	suite.Equal(9, summary.TotalCombinations)
	suite.Equal(9, summary.Succeeded)
	suite.False(summary.Partial)
	suite.Len(summary.Best, 2)
	suite.Len(summary.Worst, 2)
	suite.Equal(dirs[0].Name(), summary.ID.String())

	metrics, err := os.ReadFile(metricsPath)
	suite.Require().NoError(err)
	suite.Contains(string(metrics), `argo_sweep_combinations_total{status="success",strategy="macd"} 9`)
}

func (suite *SweepCLITestSuite) TestRunRejectsInvalidConfig() {
	configPath := filepath.Join(suite.T().TempDir(), "sweep.yaml")
	suite.Require().NoError(os.WriteFile(configPath, []byte("data:\n  symbol: BTCUSDT\n"), 0o644))

	_, err := suite.run("run", "--config", configPath, "--no-progress")
	suite.Error(err)
}

func (suite *SweepCLITestSuite) TestBacktestWritesResult() {
	resultPath := filepath.Join(suite.T().TempDir(), "result.yaml")

	out, err := suite.run("backtest",
		"--data", suite.dataPath,
		"--symbol", "BTCUSDT",
		"--strategy", "rsi",
		"--param", "rsi_period=14",
		"--param", "oversold=30",
		"--force-close",
		"--output", resultPath,
	)
	suite.Require().NoError(err)
	suite.Contains(out, "RSI(14, 30/70) BTCUSDT 1h")

	data, err := os.ReadFile(resultPath)
	suite.Require().NoError(err)

	var result types.BacktestResult
	suite.Require().NoError(yaml.Unmarshal(data, &result))
	suite.Equal(300, result.CandlesProcessed)
	suite.Equal("BTCUSDT", result.Symbol)
}

func (suite *SweepCLITestSuite) TestBacktestRejectsBadParam() {
	_, err := suite.run("backtest", "--data", suite.dataPath, "--symbol", "BTCUSDT", "--param", "fast_period")
	suite.Error(err)
}

func (suite *SweepCLITestSuite) TestList() {
	out, err := suite.run("list", suite.dataPath)
	suite.Require().NoError(err)
	suite.Contains(out, "SYMBOL")
	suite.Contains(out, "BTCUSDT")
	suite.Contains(out, "300")
}

func (suite *SweepCLITestSuite) TestListRequiresFile() {
	_, err := suite.run("list")
	suite.Error(err)
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"fast_period=12", " slow_period = 26 ", "stop_loss_percent=1.5"})
	require.NoError(t, err)
	assert.Equal(t, 12.0, params["fast_period"])
	assert.Equal(t, 26.0, params["slow_period"])
	assert.Equal(t, 1.5, params["stop_loss_percent"])

	for _, bad := range []string{"fast_period", "=3", "fast_period=abc"} {
		_, err := parseParams([]string{bad})
		assert.Error(t, err, bad)
	}
}
