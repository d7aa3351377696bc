package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Anish-Chanda/substring-search/internal/bench"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNoDSN is returned by New when no connection string is configured.
var ErrNoDSN = errors.New("db: PostgresDSN must be set")

type Client struct {
	db  *sqlx.DB
	dsn string
}

// New connects to Postgres using STRSEARCH_POSTGRES_DSN.
func New(dsn string) (*Client, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Client{db: db, dsn: dsn}, nil
}

// Close the DB connection.
func (c *Client) Close() error {
	return c.db.Close()
}

// Migrate applies the embedded schema migrations.
func (c *Client) Migrate() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, c.dsn)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// ResultRow is one stored engine result.
type ResultRow struct {
	RunID   string `db:"run_id"`
	Seq     int    `db:"seq"`
	Engine  string `db:"engine"`
	Case    string `db:"case_name"`
	Index   int    `db:"match_idx"`
	Trials  int    `db:"trials"`
	TotalNS int64  `db:"total_ns"`
}

// Total returns the stored duration.
func (r ResultRow) Total() time.Duration {
	return time.Duration(r.TotalNS)
}

// SaveReport stores a run and all its results in one transaction.
func (c *Client) SaveReport(ctx context.Context, rep *bench.Report) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at) VALUES ($1, $2)`,
		rep.RunID, rep.Started,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for i, r := range rep.Results {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO results (run_id, seq, engine, case_name, match_idx, trials, total_ns)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rep.RunID, i, r.Engine, r.Case, r.Index, r.Trials, r.Total.Nanoseconds(),
		); err != nil {
			return fmt.Errorf("insert result %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// ListResults returns the results of a run in insertion order.
func (c *Client) ListResults(ctx context.Context, runID string) ([]ResultRow, error) {
	var rows []ResultRow
	err := c.db.SelectContext(ctx, &rows,
		`SELECT run_id, seq, engine, case_name, match_idx, trials, total_ns
		   FROM results WHERE run_id=$1 ORDER BY seq`, runID)
	return rows, err
}
