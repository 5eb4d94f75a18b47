package datasource

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/types"
)

// Available describes one symbol and timeframe stored in a source.
type Available struct {
	Symbol    string          `yaml:"symbol" json:"symbol"`
	Timeframe types.Timeframe `yaml:"timeframe" json:"timeframe"`
	Count     int             `yaml:"count" json:"count"`
	First     time.Time       `yaml:"first" json:"first"`
	Last      time.Time       `yaml:"last" json:"last"`
}

// CandleSource reads closed historical candles.
type CandleSource interface {
	// GetCandles returns the candles of one symbol and timeframe ordered by timestamp.
	// Both bounds are inclusive and optional. No rows is not an error.
	GetCandles(ctx context.Context, symbol string, timeframe types.Timeframe, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Candle, error)
	// ListAvailable lists every symbol and timeframe pair with its row count and time span.
	ListAvailable(ctx context.Context) ([]Available, error)
	// Close releases the underlying database.
	Close() error
}
