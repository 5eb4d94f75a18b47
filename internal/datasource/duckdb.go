package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-sweep/internal/logger"
	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
	"go.uber.org/zap"
)

const candleView = "candles"

// DuckDBCandleSource serves candles from a parquet or CSV file through an in-memory DuckDB view.
// Expected columns: time, symbol, timeframe, open, high, low, close, volume.
type DuckDBCandleSource struct {
	db  *sql.DB
	log *logger.Logger
	sq  squirrel.StatementBuilderType
}

// NewDuckDBCandleSource opens path, picking read_csv_auto for .csv files and read_parquet otherwise.
func NewDuckDBCandleSource(path string, log *logger.Logger) (*DuckDBCandleSource, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := openView(candleView, path, `
		CAST(time AS TIMESTAMP) AS time,
		CAST(symbol AS VARCHAR) AS symbol,
		CAST(timeframe AS VARCHAR) AS timeframe,
		CAST(open AS DOUBLE) AS open,
		CAST(high AS DOUBLE) AS high,
		CAST(low AS DOUBLE) AS low,
		CAST(close AS DOUBLE) AS close,
		CAST(volume AS BIGINT) AS volume`)
	if err != nil {
		return nil, err
	}

	log.Debug("Opened candle source", zap.String("path", path))

	return &DuckDBCandleSource{
		db:  db,
		log: log,
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// GetCandles implements CandleSource.
func (d *DuckDBCandleSource) GetCandles(ctx context.Context, symbol string, timeframe types.Timeframe, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Candle, error) {
	if !timeframe.IsValid() {
		return nil, errors.Newf(errors.ErrCodeInvalidTimeframe, "unknown timeframe %q", timeframe)
	}

	where := squirrel.And{
		squirrel.Eq{"symbol": symbol},
		squirrel.Eq{"timeframe": string(timeframe)},
		timeBounds(start, end),
	}

	query, args, err := d.sq.
		Select("time", "symbol", "timeframe", "open", "high", "low", "close", "volume").
		From(candleView).
		Where(where).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build candle query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query candles for %s %s", symbol, timeframe)
	}
	defer rows.Close()

	candles := make([]types.Candle, 0, 1024)

	for rows.Next() {
		var (
			timestamp              time.Time
			sym, tf                string
			open, high, low, close float64
			volume                 int64
		)

		if err := rows.Scan(&timestamp, &sym, &tf, &open, &high, &low, &close, &volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan candle", err)
		}

		candles = append(candles, types.Candle{
			Timestamp: timestamp.Unix(),
			Symbol:    sym,
			Timeframe: types.Timeframe(tf),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    volume,
			Closed:    true,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating candles", err)
	}

	d.log.Debug("Loaded candles",
		zap.String("symbol", symbol),
		zap.String("timeframe", timeframe.String()),
		zap.Int("count", len(candles)),
	)

	return candles, nil
}

// ListAvailable implements CandleSource.
func (d *DuckDBCandleSource) ListAvailable(ctx context.Context) ([]Available, error) {
	query, args, err := d.sq.
		Select("symbol", "timeframe", "COUNT(*)", "MIN(time)", "MAX(time)").
		From(candleView).
		GroupBy("symbol", "timeframe").
		OrderBy("symbol ASC", "timeframe ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build listing query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to list available data", err)
	}
	defer rows.Close()

	available := []Available{}

	for rows.Next() {
		var (
			entry Available
			tf    string
		)

		if err := rows.Scan(&entry.Symbol, &tf, &entry.Count, &entry.First, &entry.Last); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan available data", err)
		}

		entry.Timeframe = types.Timeframe(tf)
		entry.First = entry.First.UTC()
		entry.Last = entry.Last.UTC()
		available = append(available, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating available data", err)
	}

	return available, nil
}

// Close implements CandleSource.
func (d *DuckDBCandleSource) Close() error {
	return d.db.Close()
}

// openView opens an in-memory database with a view over a parquet or CSV file.
func openView(name, path, columns string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	reader := "read_parquet"
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		reader = "read_csv_auto"
	}

	// DDL does not take bind parameters
	query := fmt.Sprintf(`CREATE VIEW %s AS SELECT %s FROM %s('%s');`,
		name, columns, reader, strings.ReplaceAll(path, "'", "''"))

	if _, err := db.Exec(query); err != nil {
		db.Close()

		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to open %s", path)
	}

	return db, nil
}
