package datasource

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/logger"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"go.uber.org/zap"
)

const tickView = "ticks"

// DuckDBTickSource streams raw trades from a parquet or CSV file with the columns
// time, symbol, price, volume.
type DuckDBTickSource struct {
	db  *sql.DB
	log *logger.Logger
	sq  squirrel.StatementBuilderType
}

// NewDuckDBTickSource opens path the same way NewDuckDBCandleSource does.
func NewDuckDBTickSource(path string, log *logger.Logger) (*DuckDBTickSource, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := openView(tickView, path, `
		CAST(time AS TIMESTAMP) AS time,
		CAST(symbol AS VARCHAR) AS symbol,
		CAST(price AS DOUBLE) AS price,
		CAST(volume AS BIGINT) AS volume`)
	if err != nil {
		return nil, err
	}

	return &DuckDBTickSource{
		db:  db,
		log: log,
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Count returns the number of ticks between the optional bounds.
func (d *DuckDBTickSource) Count(ctx context.Context, start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	query, args, err := d.sq.Select("COUNT(*)").From(tickView).Where(timeBounds(start, end)).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build count query", err)
	}

	var count int
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count ticks", err)
	}

	return count, nil
}

// ReadTicks yields ticks ordered by time, then by file order within the same second.
// Iteration stops at the first error, which is yielded with a zero tick.
func (d *DuckDBTickSource) ReadTicks(ctx context.Context, start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.Tick, error) bool) {
	return func(yield func(types.Tick, error) bool) {
		query, args, err := d.sq.
			Select("time", "symbol", "price", "volume").
			From(tickView).
			Where(timeBounds(start, end)).
			OrderBy("time ASC").
			ToSql()
		if err != nil {
			yield(types.Tick{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build tick query", err))

			return
		}

		d.log.Debug("Reading ticks", zap.String("query", query))

		rows, err := d.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(types.Tick{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query ticks", err))

			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				timestamp time.Time
				tick      types.Tick
			)

			if err := rows.Scan(&timestamp, &tick.Symbol, &tick.Price, &tick.Volume); err != nil {
				yield(types.Tick{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan tick", err))

				return
			}

			tick.Timestamp = timestamp.Unix()
			if !yield(tick, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(types.Tick{}, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating ticks", err))
		}
	}
}

// Close releases the underlying database.
func (d *DuckDBTickSource) Close() error {
	return d.db.Close()
}

// timeBounds builds the optional inclusive time filter. An empty And renders as (1=1).
func timeBounds(start optional.Option[time.Time], end optional.Option[time.Time]) squirrel.And {
	where := squirrel.And{}

	if start.IsSome() {
		where = append(where, squirrel.GtOrEq{"time": start.Unwrap().UTC()})
	}

	if end.IsSome() {
		where = append(where, squirrel.LtOrEq{"time": end.Unwrap().UTC()})
	}

	return where
}
