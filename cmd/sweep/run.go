package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rxtech-lab/argo-sweep/internal/backtest/engine"
	enginev1 "github.com/rxtech-lab/argo-sweep/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-sweep/internal/config"
	"github.com/rxtech-lab/argo-sweep/internal/datasource"
	"github.com/rxtech-lab/argo-sweep/internal/logger"
	"github.com/rxtech-lab/argo-sweep/internal/metrics"
	"github.com/rxtech-lab/argo-sweep/internal/sweep"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run a parameter sweep described by a YAML config",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the sweep config file",
				Required: true,
				Sources:  cli.EnvVars("ARGO_SWEEP_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress bar",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write sweep metrics in Prometheus text format to this file",
			},
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	candles, err := loadCandles(ctx, cfg, log)
	if err != nil {
		return err
	}

	options := cfg.Options()
	if !cmd.Bool("no-progress") {
		grid, err := sweep.NewGrid(cfg.Strategy.Ranges...)
		if err != nil {
			return err
		}

		bar := progressbar.NewOptions(grid.Size(),
			progressbar.OptionSetDescription(fmt.Sprintf("Sweeping %s %s", cfg.Data.Symbol, cfg.Strategy.Kind)),
			progressbar.OptionShowCount(),
		)
		defer bar.Finish() //nolint:errcheck

		progress := sweep.OnProgressCallback(func(done int, total int) {
			bar.Set(done) //nolint:errcheck
		})
		options.OnProgress = &progress
	}

	recorder := metrics.NewPrometheusRecorder()
	backtester := enginev1.NewBacktestEngineV1(cfg.Backtest.Engine, engine.LifecycleCallbacks{}, log.Named("engine"))
	orchestrator := sweep.NewOrchestrator(backtester, recorder, log.Named("sweep"), options)

	result, sweepErr := orchestrator.Sweep(ctx, sweep.Request{
		Kind:           cfg.Strategy.Kind,
		Axes:           cfg.Strategy.Ranges,
		FixedParams:    cfg.FixedParams(),
		Candles:        candles,
		InitialCapital: cfg.Backtest.InitialCapital,
	})
	if result == nil {
		return sweepErr
	}

	outDir, err := writeSweep(cfg, result)
	if err != nil {
		return err
	}

	if path := cmd.String("metrics-file"); path != "" {
		if err := prometheus.WriteToTextfile(path, recorder.Registry()); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	log.Info("Sweep results written",
		zap.String("dir", outDir),
		zap.Int("entries", len(result.Entries)),
		zap.Bool("partial", result.Partial),
	)

	printSummary(output(cmd), result.Summary(cfg.Sweep.Top))

	return sweepErr
}

func loadCandles(ctx context.Context, cfg config.SweepConfig, log *logger.Logger) ([]types.Candle, error) {
	source, err := datasource.NewDuckDBCandleSource(cfg.Data.Path, log.Named("datasource"))
	if err != nil {
		return nil, err
	}
	defer source.Close()

	return source.GetCandles(ctx, cfg.Data.Symbol, cfg.Data.Timeframe, cfg.Data.Start(), cfg.Data.End())
}

// writeSweep stores the full result and its summary under <output>/<sweep id>/.
func writeSweep(cfg config.SweepConfig, result *types.SweepResult) (string, error) {
	dir := filepath.Join(cfg.Output.Path, result.ID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := types.WriteSweepResult(filepath.Join(dir, "sweep.yaml"), result); err != nil {
		return "", err
	}

	if err := types.WriteSweepSummary(filepath.Join(dir, "summary.yaml"), result.Summary(cfg.Sweep.Top)); err != nil {
		return "", err
	}

	return dir, nil
}

func printSummary(out io.Writer, summary types.SweepSummary) {
	fmt.Fprintf(out, "\n%s %s %s: %d combinations, %d ran, %d skipped, %d failed\n",
		summary.StrategyKind, summary.Symbol, summary.Timeframe,
		summary.TotalCombinations, summary.Succeeded, summary.Skipped, summary.Failed)

	fmt.Fprintln(out, "Best:")
	for i := len(summary.Best) - 1; i >= 0; i-- {
		printRow(out, summary.Best[i])
	}

	fmt.Fprintln(out, "Worst:")
	for _, row := range summary.Worst {
		printRow(out, row)
	}
}

func printRow(out io.Writer, row types.SweepRow) {
	fmt.Fprintf(out, "  fast=%d slow=%d signal=%d rsi=%d oversold=%g overbought=%g pnl=%.2f win_rate=%.2f trades=%d max_dd=%.2f\n",
		row.FastPeriod, row.SlowPeriod, row.SignalPeriod, row.RSIPeriod, row.Oversold, row.Overbought,
		row.TotalPnL, row.WinRate, row.TotalTrades, row.MaxDrawdown)
}

// output returns the writer configured on the root command.
func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}
