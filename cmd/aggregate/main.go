package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/candle"
	"github.com/rxtech-lab/argo-sweep/internal/datasource"
	"github.com/rxtech-lab/argo-sweep/internal/logger"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "argo-aggregate",
		Usage: "Aggregate raw trades into closed OHLCV candles stored as parquet",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Tick file (parquet or csv) with time, symbol, price and volume columns",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Parquet file to write the candles to",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "timeframe",
				Aliases: []string{"t"},
				Usage:   "Timeframe to build, repeatable",
				Value:   []string{string(types.Timeframe1m)},
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "Inclusive start time (RFC3339)",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "Inclusive end time (RFC3339)",
			},
			&cli.BoolFlag{
				Name:  "skip-invalid",
				Usage: "Log and drop rejected ticks instead of stopping",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress bar",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
			},
		},
		Action: aggregateAction,
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func aggregateAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	timeframes := make([]types.Timeframe, 0, len(cmd.StringSlice("timeframe")))
	for _, raw := range cmd.StringSlice("timeframe") {
		tf, err := types.ParseTimeframe(raw)
		if err != nil {
			return err
		}

		timeframes = append(timeframes, tf)
	}

	start, err := parseBound(cmd.String("start"))
	if err != nil {
		return err
	}

	end, err := parseBound(cmd.String("end"))
	if err != nil {
		return err
	}

	aggregator, err := candle.NewAggregator(timeframes...)
	if err != nil {
		return err
	}

	source, err := datasource.NewDuckDBTickSource(cmd.String("input"), log.Named("ticks"))
	if err != nil {
		return err
	}
	defer source.Close()

	total, err := source.Count(ctx, start, end)
	if err != nil {
		return err
	}

	writer := datasource.NewCandleWriter(cmd.String("output"))
	if err := writer.Initialize(); err != nil {
		return err
	}
	defer writer.Close()

	var bar *progressbar.ProgressBar
	if !cmd.Bool("no-progress") {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Aggregating ticks"),
			progressbar.OptionShowCount(),
		)
	}

	skipInvalid := cmd.Bool("skip-invalid")
	dropped := 0

	for tick, err := range source.ReadTicks(ctx, start, end) {
		if err != nil {
			return err
		}

		if bar != nil {
			bar.Add(1) //nolint:errcheck
		}

		closed, err := aggregator.Ingest(tick)
		if err != nil {
			if skipInvalid && isRejectedTick(err) {
				dropped++
				log.Debug("Dropped tick", zap.String("symbol", tick.Symbol), zap.Int64("timestamp", tick.Timestamp), zap.Error(err))

				continue
			}

			return err
		}

		if err := writeAll(writer, closed); err != nil {
			return err
		}
	}

	if err := writeAll(writer, aggregator.Flush()); err != nil {
		return err
	}

	if bar != nil {
		bar.Finish() //nolint:errcheck
	}

	path, err := writer.Finalize()
	if err != nil {
		return err
	}

	log.Info("Candles written",
		zap.String("path", path),
		zap.Int("ticks", total),
		zap.Int("dropped", dropped),
		zap.Int("candles", writer.Written()),
		zap.Strings("symbols", aggregator.Symbols()),
	)

	return nil
}

func isRejectedTick(err error) bool {
	return errors.HasCode(err, errors.ErrCodeInvalidTick) || errors.IsOutOfOrderData(err)
}

func writeAll(writer *datasource.CandleWriter, candles []types.Candle) error {
	for _, c := range candles {
		if err := writer.Write(c); err != nil {
			return err
		}
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
