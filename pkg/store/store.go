// Package store loads normalized player rows into PostgreSQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/player-stats-etl/pkg/logging"
	"github.com/Sternrassler/player-stats-etl/pkg/normalize"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Store is the PostgreSQL sink for FlatPlayerRecord rows.
type Store struct {
	pool   *pgxpool.Pool
	table  pgx.Identifier
	logger zerolog.Logger
}

// Connect opens a pool for databaseURL and verifies it with a ping.
func Connect(ctx context.Context, databaseURL, table string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s, err := New(pool, table)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing pool. An empty table selects DefaultTable.
func New(pool *pgxpool.Pool, table string) (*Store, error) {
	if pool == nil {
		return nil, errors.New("store: nil pool")
	}
	ident, err := ParseTableName(table)
	if err != nil {
		return nil, err
	}
	return &Store{
		pool:   pool,
		table:  ident,
		logger: logging.NewLogger(logging.ComponentStore).With().Str("table", ident.Sanitize()).Logger(),
	}, nil
}

// EnsureTable creates the table if it does not exist.
func (s *Store) EnsureTable(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, CreateTableSQL(s.table)); err != nil {
		loadErrorsTotal.WithLabelValues("create_table").Inc()
		return fmt.Errorf("create table %s: %w", s.table.Sanitize(), err)
	}
	return nil
}

// Load replaces the table contents with records in one transaction and
// returns the number of rows copied.
func (s *Store) Load(ctx context.Context, records []normalize.FlatPlayerRecord) (n int64, err error) {
	start := time.Now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		loadErrorsTotal.WithLabelValues("begin").Inc()
		return 0, fmt.Errorf("begin load: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(context.Background()); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Warn().Err(rbErr).Msg("Rollback failed")
			}
		}
	}()

	if _, err = tx.Exec(ctx, "DELETE FROM "+s.table.Sanitize()); err != nil {
		loadErrorsTotal.WithLabelValues("delete").Inc()
		return 0, fmt.Errorf("clear %s: %w", s.table.Sanitize(), err)
	}

	rows := make([][]any, len(records))
	for i := range records {
		rows[i] = records[i].Values()
	}

	n, err = tx.CopyFrom(ctx, s.table, normalize.ColumnNames(), pgx.CopyFromRows(rows))
	if err != nil {
		loadErrorsTotal.WithLabelValues("copy").Inc()
		return 0, fmt.Errorf("copy into %s: %w", s.table.Sanitize(), err)
	}

	if err = tx.Commit(ctx); err != nil {
		loadErrorsTotal.WithLabelValues("commit").Inc()
		return 0, fmt.Errorf("commit load: %w", err)
	}

	rowsLoadedTotal.Add(float64(n))
	loadDuration.Observe(time.Since(start).Seconds())

	s.logger.Info().
		Int64("rows", n).
		Dur("duration", time.Since(start)).
		Msg("Loaded player stats")

	return n, nil
}

// Count returns the number of rows in the table.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM "+s.table.Sanitize()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table.Sanitize(), err)
	}
	return n, nil
}

// Table returns the quoted table name.
func (s *Store) Table() string {
	return s.table.Sanitize()
}

// Close closes the pool.
func (s *Store) Close() {
	s.pool.Close()
}
