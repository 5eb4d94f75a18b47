package candle

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

// Builder aggregates the ticks of one symbol into candles of one timeframe.
// A candle is returned exactly once, when the first tick of a later bucket arrives
// or when Flush is called.
type Builder struct {
	symbol    string
	timeframe types.Timeframe
	current   *types.Candle
}

// NewBuilder creates a builder for symbol and timeframe.
func NewBuilder(symbol string, timeframe types.Timeframe) (*Builder, error) {
	if symbol == "" {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "symbol is required")
	}

	if !timeframe.IsValid() {
		return nil, errors.Newf(errors.ErrCodeInvalidTimeframe, "unsupported timeframe: %q", timeframe)
	}

	return &Builder{
		symbol:    symbol,
		timeframe: timeframe,
		current:   nil,
	}, nil
}

// Symbol returns the symbol the builder accepts.
func (b *Builder) Symbol() string {
	return b.symbol
}

// Timeframe returns the bucket duration of the produced candles.
func (b *Builder) Timeframe() types.Timeframe {
	return b.timeframe
}

// Ingest folds a tick into the open candle. When the tick starts a new bucket the previous
// candle is finalized and returned. Rejected ticks leave the builder untouched.
func (b *Builder) Ingest(tick types.Tick) (optional.Option[types.Candle], error) {
	if err := b.check(tick); err != nil {
		return optional.None[types.Candle](), err
	}

	bucket := b.timeframe.BucketStart(tick.Timestamp)

	if b.current != nil && b.current.Timestamp == bucket {
		c := b.current
		c.High = max(c.High, tick.Price)
		c.Low = min(c.Low, tick.Price)
		c.Close = tick.Price
		c.Volume += tick.Volume

		return optional.None[types.Candle](), nil
	}

	closed := b.finalize()
	b.current = &types.Candle{
		Timestamp: bucket,
		Symbol:    b.symbol,
		Timeframe: b.timeframe,
		Open:      tick.Price,
		High:      tick.Price,
		Low:       tick.Price,
		Close:     tick.Price,
		Volume:    tick.Volume,
		Closed:    false,
	}

	return closed, nil
}

// Current returns a copy of the open candle, if any.
func (b *Builder) Current() optional.Option[types.Candle] {
	if b.current == nil {
		return optional.None[types.Candle]()
	}

	return optional.Some(*b.current)
}

// Flush finalizes and returns the open candle. Used at shutdown; there is no idle flushing.
func (b *Builder) Flush() optional.Option[types.Candle] {
	return b.finalize()
}

func (b *Builder) finalize() optional.Option[types.Candle] {
	if b.current == nil {
		return optional.None[types.Candle]()
	}

	closed := *b.current
	closed.Closed = true
	b.current = nil

	return optional.Some(closed)
}

func (b *Builder) check(tick types.Tick) error {
	if tick.Symbol != b.symbol {
		return errors.Newf(errors.ErrCodeSymbolMismatch, "tick symbol %q does not match builder symbol %q", tick.Symbol, b.symbol)
	}

	if err := validateTick(tick); err != nil {
		return err
	}

	if b.current != nil && tick.Timestamp < b.current.Timestamp {
		return errors.Newf(errors.ErrCodeOutOfOrderData,
			"tick at %d is older than the open %s bucket starting at %d", tick.Timestamp, b.timeframe, b.current.Timestamp)
	}

	return nil
}

func validateTick(tick types.Tick) error {
	if tick.Price <= 0 {
		return errors.Newf(errors.ErrCodeInvalidTick, "tick price must be positive, got %f", tick.Price)
	}

	if tick.Volume < 0 {
		return errors.Newf(errors.ErrCodeInvalidTick, "tick volume must not be negative, got %d", tick.Volume)
	}

	return nil
}
