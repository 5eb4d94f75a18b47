package candle

import (
	"sort"

	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

type builderKey struct {
	symbol    string
	timeframe types.Timeframe
}

// Aggregator routes ticks of many symbols to one Builder per (symbol, timeframe) pair.
// It is not safe for concurrent use.
type Aggregator struct {
	timeframes []types.Timeframe
	builders   map[builderKey]*Builder
}

// NewAggregator creates an aggregator producing candles for each of the given timeframes.
func NewAggregator(timeframes ...types.Timeframe) (*Aggregator, error) {
	if len(timeframes) == 0 {
		return nil, errors.New(errors.ErrCodeMissingParameter, "at least one timeframe is required")
	}

	seen := make(map[types.Timeframe]bool, len(timeframes))
	unique := make([]types.Timeframe, 0, len(timeframes))

	for _, tf := range timeframes {
		if !tf.IsValid() {
			return nil, errors.Newf(errors.ErrCodeInvalidTimeframe, "unsupported timeframe: %q", tf)
		}

		if seen[tf] {
			continue
		}

		seen[tf] = true
		unique = append(unique, tf)
	}

	return &Aggregator{
		timeframes: unique,
		builders:   make(map[builderKey]*Builder),
	}, nil
}

// Ingest feeds the tick to every timeframe of its symbol and returns the candles it closed.
// The tick is checked against all builders first, so a rejected tick changes nothing.
func (a *Aggregator) Ingest(tick types.Tick) ([]types.Candle, error) {
	if tick.Symbol == "" {
		return nil, errors.New(errors.ErrCodeInvalidTick, "tick symbol is required")
	}

	if err := validateTick(tick); err != nil {
		return nil, err
	}

	for _, tf := range a.timeframes {
		if builder, ok := a.builders[builderKey{symbol: tick.Symbol, timeframe: tf}]; ok {
			if err := builder.check(tick); err != nil {
				return nil, err
			}
		}
	}

	builders := make([]*Builder, 0, len(a.timeframes))

	for _, tf := range a.timeframes {
		builder, err := a.builderFor(tick.Symbol, tf)
		if err != nil {
			return nil, err
		}

		builders = append(builders, builder)
	}

	closed := make([]types.Candle, 0)

	for _, builder := range builders {
		candle, err := builder.Ingest(tick)
		if err != nil {
			return closed, err
		}

		if candle.IsSome() {
			closed = append(closed, candle.Unwrap())
		}
	}

	return closed, nil
}

// Flush finalizes every open candle, ordered by symbol then timeframe duration.
func (a *Aggregator) Flush() []types.Candle {
	keys := make([]builderKey, 0, len(a.builders))
	for key := range a.builders {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].symbol != keys[j].symbol {
			return keys[i].symbol < keys[j].symbol
		}

		return keys[i].timeframe.Duration() < keys[j].timeframe.Duration()
	})

	flushed := make([]types.Candle, 0, len(keys))

	for _, key := range keys {
		if candle := a.builders[key].Flush(); candle.IsSome() {
			flushed = append(flushed, candle.Unwrap())
		}
	}

	return flushed
}

// Symbols returns the symbols seen so far in sorted order.
func (a *Aggregator) Symbols() []string {
	seen := make(map[string]bool)
	for key := range a.builders {
		seen[key.symbol] = true
	}

	symbols := make([]string, 0, len(seen))
	for symbol := range seen {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols
}

func (a *Aggregator) builderFor(symbol string, timeframe types.Timeframe) (*Builder, error) {
	key := builderKey{symbol: symbol, timeframe: timeframe}
	if builder, ok := a.builders[key]; ok {
		return builder, nil
	}

	builder, err := NewBuilder(symbol, timeframe)
	if err != nil {
		return nil, err
	}

	a.builders[key] = builder

	return builder, nil
}
