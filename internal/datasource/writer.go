package datasource

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

// CandleWriter buffers closed candles in an in-memory DuckDB table and exports them to
// parquet on Finalize. The file layout is the one DuckDBCandleSource reads.
type CandleWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
	written    int
}

// NewCandleWriter creates a writer for outputPath. Call Initialize before Write.
func NewCandleWriter(outputPath string) *CandleWriter {
	return &CandleWriter{outputPath: outputPath} //nolint:exhaustruct
}

// Initialize opens the database, creates the table and prepares the insert.
func (w *CandleWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", "")
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE candles (
			time TIMESTAMP,
			symbol VARCHAR,
			timeframe VARCHAR,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume BIGINT
		)
	`)
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create candle table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO candles (time, symbol, timeframe, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()
		w.tx = nil
		w.db = nil

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to prepare insert", err)
	}

	return nil
}

// Write inserts one closed candle.
func (w *CandleWriter) Write(candle types.Candle) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	if !candle.Closed {
		return errors.Newf(errors.ErrCodeInvalidParameter, "candle %s %s at %d is still open", candle.Symbol, candle.Timeframe, candle.Timestamp)
	}

	_, err := w.stmt.Exec(
		time.Unix(candle.Timestamp, 0).UTC(),
		candle.Symbol,
		string(candle.Timeframe),
		candle.Open,
		candle.High,
		candle.Low,
		candle.Close,
		candle.Volume,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to insert candle", err)
	}

	w.written++

	return nil
}

// Written is the number of candles accepted so far.
func (w *CandleWriter) Written() int {
	return w.written
}

// Finalize commits and exports the table to the output path, ordered by symbol, timeframe and time.
func (w *CandleWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	if err := w.stmt.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to close insert", err)
	}

	w.stmt = nil

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()
		w.tx = nil

		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to commit candles", err)
	}

	w.tx = nil

	query := fmt.Sprintf(`COPY (SELECT * FROM candles ORDER BY symbol, timeframe, time) TO '%s' (FORMAT PARQUET)`,
		strings.ReplaceAll(w.outputPath, "'", "''"))
	if _, err := w.db.Exec(query); err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to export %s", w.outputPath)
	}

	return w.outputPath, nil
}

// Close releases every resource. A pending transaction is rolled back.
func (w *CandleWriter) Close() error {
	var closeErrors []string

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, err.Error())
		}

		w.stmt = nil
	}

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			closeErrors = append(closeErrors, err.Error())
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, err.Error())
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		return errors.Newf(errors.ErrCodeWriteFailed, "errors occurred during close: %s", strings.Join(closeErrors, "; "))
	}

	return nil
}
