package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrPoolTimeout is returned when no connection became free within the
// checkout timeout.
var ErrPoolTimeout = errors.New("database: timed out waiting for a pooled connection")

// DBTX is the query surface shared by pgx.Tx, *pgx.Conn and *pgxpool.Pool.
// Repositories are written against it so they run inside a unit of work.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// WithTx runs fn as one unit of work.
//
// A connection is checked out of the pool (waiting at most CheckoutTimeout),
// a transaction is opened on it, and fn receives the transaction. The
// transaction commits when fn returns nil and rolls back otherwise; fn's
// error is returned unchanged. The connection goes back to the pool on every
// path.
func (db *Database) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	conn, err := db.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return pgx.BeginFunc(ctx, conn, fn)
}

// WithReadTx is WithTx with a read-only transaction.
func (db *Database) WithReadTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	conn, err := db.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return pgx.BeginTxFunc(ctx, conn, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

type pooledConn interface {
	Release()
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

func (db *Database) acquire(ctx context.Context) (pooledConn, error) {
	acquireCtx := ctx
	if db.CheckoutTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, db.CheckoutTimeout)
		defer cancel()
	}

	conn, err := db.Pool.Acquire(acquireCtx)
	if err != nil {
		// Only the checkout deadline maps to ErrPoolTimeout; a caller
		// cancellation is reported as is.
		if ctx.Err() == nil && errors.Is(acquireCtx.Err(), context.DeadlineExceeded) {
			return nil, ErrPoolTimeout
		}
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}

	return conn, nil
}
