// Package store persists run results to sqlite for offline analysis.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"stoikov-maker-go/strategy/stoikov"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite file and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	config     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS orders (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	order_id INTEGER NOT NULL,
	side     TEXT NOT NULL,
	price    REAL NOT NULL,
	size     REAL NOT NULL,
	place_ts INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS fills (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	order_id   INTEGER NOT NULL,
	side       TEXT NOT NULL,
	price      REAL NOT NULL,
	size       REAL NOT NULL,
	receive_ts INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS quotes (
	run_id         TEXT NOT NULL REFERENCES runs(id),
	ts             INTEGER NOT NULL,
	mid            REAL NOT NULL,
	indiff_price   REAL NOT NULL,
	spread         REAL NOT NULL,
	bid_place      REAL NOT NULL,
	ask_place      REAL NOT NULL,
	volatility     REAL NOT NULL,
	order_intensity REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS pnl (
	run_id         TEXT NOT NULL REFERENCES runs(id),
	ts             INTEGER NOT NULL,
	asset_position REAL NOT NULL,
	usd_position   REAL NOT NULL,
	total_liq      REAL NOT NULL,
	pnl            REAL NOT NULL,
	pnl_after_fees REAL NOT NULL
);`)
	return err
}

// SaveRun writes one run's orders, fills, quote records, and PnL marks
// under a fresh run id.
func (s *Store) SaveRun(ctx context.Context, cfg stoikov.Config, res *stoikov.Result) (string, error) {
	rawCfg, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	runID := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, config) VALUES (?, ?, ?)`,
		runID, time.Now().UnixNano(), string(rawCfg)); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	for _, o := range res.Orders {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO orders (run_id, order_id, side, price, size, place_ts) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, o.ID, string(o.Side), o.Price, o.Size, o.PlaceTs); err != nil {
			return "", fmt.Errorf("insert order: %w", err)
		}
	}
	for _, f := range res.Trades {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO fills (run_id, order_id, side, price, size, receive_ts) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, f.OrderID, string(f.Side), f.Price, f.Size, f.ReceiveTs); err != nil {
			return "", fmt.Errorf("insert fill: %w", err)
		}
	}
	for _, q := range res.Journal.Quotes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO quotes (run_id, ts, mid, indiff_price, spread, bid_place, ask_place, volatility, order_intensity)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, q.Ts, q.Mid, q.IndifferencePrice, q.Spread, q.BidPlace, q.AskPlace, q.Volatility, q.OrderIntensity); err != nil {
			return "", fmt.Errorf("insert quote: %w", err)
		}
	}
	for _, p := range res.Journal.Fills {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pnl (run_id, ts, asset_position, usd_position, total_liq, pnl, pnl_after_fees)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, p.Ts, p.AssetPosition, p.USDPosition, p.TotalLiquidity, p.PnL, p.PnLAfterFees); err != nil {
			return "", fmt.Errorf("insert pnl: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// RunCounts reports how many rows each table holds for a run. Used by the
// report command and tests.
func (s *Store) RunCounts(ctx context.Context, runID string) (orders, fills, quotes int, err error) {
	row := s.db.QueryRowContext(ctx, `
SELECT
	(SELECT COUNT(*) FROM orders WHERE run_id = ?),
	(SELECT COUNT(*) FROM fills  WHERE run_id = ?),
	(SELECT COUNT(*) FROM quotes WHERE run_id = ?)`,
		runID, runID, runID)
	err = row.Scan(&orders, &fills, &quotes)
	return orders, fills, quotes, err
}

func (s *Store) Close() error {
	return s.db.Close()
}
