package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/ltcdata/insurance-api/internal/config"
	"github.com/ltcdata/insurance-api/internal/logger"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 4
	connMaxLifetime = 30 * time.Minute

	maxConnectElapsedTime = 30 * time.Second
	maxQueryRetries       = 3
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens a connection pool to the warehouse database and
// verifies it with a ping. Transient ping failures are retried with
// exponential backoff until maxConnectElapsedTime passes or ctx is cancelled.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(connMaxLifetime)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxConnectElapsedTime

	err = backoff.Retry(func() error {
		return conn.PingContext(ctx)
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	return db, nil
}

// Health reports whether the database connection is alive.
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// queryWithRetry executes a read-only query, retrying with exponential
// backoff when the failure is classified as transient (connection loss,
// deadlock rollback). Non-retryable errors abort immediately.
func (db *DB) queryWithRetry(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows

	operation := func() error {
		r, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			if db.errorClassificator.Classify(err) == Retryable {
				return err
			}
			return backoff.Permanent(err)
		}
		rows = r
		return nil
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxQueryRetries)
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}

	return rows, nil
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
