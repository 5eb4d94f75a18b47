package main

import (
	"context"
	"fmt"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/backtest/engine"
	enginev1 "github.com/rxtech-lab/argo-sweep/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-sweep/internal/datasource"
	"github.com/rxtech-lab/argo-sweep/internal/logger"
	"github.com/rxtech-lab/argo-sweep/internal/strategy"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func backtestCommand() *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "Run one strategy configuration over stored candles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Candle file (parquet or csv)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Symbol to backtest",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "timeframe",
				Usage: "Candle timeframe",
				Value: string(types.Timeframe1h),
			},
			&cli.StringFlag{
				Name:  "strategy",
				Usage: "Strategy kind (rsi, macd, rsi_macd)",
				Value: string(types.StrategyKindMACD),
			},
			&cli.StringSliceFlag{
				Name:    "param",
				Aliases: []string{"p"},
				Usage:   "Strategy parameter as name=value, repeatable",
			},
			&cli.FloatFlag{
				Name:  "capital",
				Usage: "Initial capital",
				Value: strategy.DefaultInitialCapital,
			},
			&cli.BoolFlag{
				Name:  "force-close",
				Usage: "Close a position left open after the last candle",
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "Inclusive start time (RFC3339)",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "Inclusive end time (RFC3339)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the full result as YAML to this file",
			},
		},
		Action: backtestAction,
	}
}

func backtestAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	timeframe, err := types.ParseTimeframe(cmd.String("timeframe"))
	if err != nil {
		return err
	}

	params, err := parseParams(cmd.StringSlice("param"))
	if err != nil {
		return err
	}

	start, err := parseBound(cmd.String("start"))
	if err != nil {
		return err
	}

	end, err := parseBound(cmd.String("end"))
	if err != nil {
		return err
	}

	s, err := strategy.New(types.StrategyKind(cmd.String("strategy")), params)
	if err != nil {
		return err
	}

	source, err := datasource.NewDuckDBCandleSource(cmd.String("data"), log.Named("datasource"))
	if err != nil {
		return err
	}
	defer source.Close()

	candles, err := source.GetCandles(ctx, cmd.String("symbol"), timeframe, start, end)
	if err != nil {
		return err
	}

	config := engine.DefaultConfig()
	config.ForceCloseAtEnd = cmd.Bool("force-close")

	backtester := enginev1.NewBacktestEngineV1(config, engine.LifecycleCallbacks{}, log.Named("engine"))

	result, err := backtester.Run(ctx, s, candles, cmd.Float("capital"))
	if err != nil {
		return err
	}

	m := result.Metrics
	fmt.Fprintf(output(cmd), "%s %s %s: pnl=%.2f (%.2f%%) trades=%d win_rate=%.2f max_dd=%.2f final_equity=%.2f\n",
		result.StrategyName, result.Symbol, result.Timeframe,
		m.TotalPnL, m.TotalPnLPercent, m.TotalTrades, m.WinRate, m.MaxDrawdown, m.FinalEquity)

	if path := cmd.String("output"); path != "" {
		if err := types.WriteBacktestResult(path, result); err != nil {
			return err
		}

		log.Info("Backtest result written", zap.String("path", path))
	}

	return nil
}

func parseBound(value string) (optional.Option[time.Time], error) {
	if value == "" {
		return optional.None[time.Time](), nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return optional.None[time.Time](), fmt.Errorf("invalid time %q: %w", value, err)
	}

	return optional.Some(t), nil
}
