// Package database owns the PostgreSQL connection pool.
//
// It handles:
//   - sizing the pgxpool from the configured pool size and overflow
//   - wiring query tracing/logging (pgx tracelog, New Relic nrpgx5)
//   - the unit of work: one connection, one transaction, commit or rollback
//   - schema migrations (tern)
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/agile/internal/config"
	loggerConfig "github.com/deppfellow/agile/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the pgx connection pool.
//
// CheckoutTimeout bounds how long WithTx waits for a free connection before
// failing with ErrPoolTimeout.
type Database struct {
	Pool            *pgxpool.Pool
	CheckoutTimeout time.Duration
	log             *zerolog.Logger
}

// multiTracer fans pgx's single Tracer slot out to several tracers.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// chainTracers returns nil, the only tracer, or a multiTracer over all of them.
func chainTracers(tracers []any) pgx.QueryTracer {
	switch len(tracers) {
	case 0:
		return nil
	case 1:
		if t, ok := tracers[0].(pgx.QueryTracer); ok {
			return t
		}
	}
	return &multiTracer{tracers: tracers}
}

// DatabasePingTimeout is the number of seconds to wait for the startup ping.
const DatabasePingTimeout = 10

// PoolConfig translates the database block of the config into a pgxpool config.
//
// PoolSize connections are kept open (MinConns); MaxOverflow more may be
// opened on demand (MaxConns = PoolSize + MaxOverflow). Connections older than
// PoolRecycle are closed and replaced.
func PoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MinConns = int32(cfg.PoolSize)
	pgxPoolConfig.MaxConns = cfg.MaxConns()
	pgxPoolConfig.MaxConnLifetime = cfg.PoolRecycle
	if cfg.ConnMaxIdleTime > 0 {
		pgxPoolConfig.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	return pgxPoolConfig, nil
}

func localTracer(level zerolog.Level) *tracelog.TraceLog {
	return &tracelog.TraceLog{
		Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(level)),
		LogLevel: loggerConfig.GetPgxTraceLogLevel(level),
	}
}

// New creates the connection pool, attaches tracers and pings the server.
//
// New Relic tracing is attached when loggerService carries an application,
// SQL logging in the local environment and the slow-query log whenever a
// threshold is configured.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := PoolConfig(cfg.Database)
	if err != nil {
		return nil, err
	}

	var tracers []any
	if loggerService != nil && loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}
	if cfg.Primary.Env == "local" {
		tracers = append(tracers, localTracer(logger.GetLevel()))
	}
	if cfg.Observability != nil && cfg.Observability.Logging.SlowQueryThreshold > 0 {
		tracers = append(tracers, newSlowQueryTracer(cfg.Observability.Logging.SlowQueryThreshold, logger))
	}
	if tracer := chainTracers(tracers); tracer != nil {
		pgxPoolConfig.ConnConfig.Tracer = tracer
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	database := &Database{
		Pool:            pool,
		CheckoutTimeout: cfg.Database.PoolTimeout,
		log:             logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Int32("min_conns", pgxPoolConfig.MinConns).
		Int32("max_conns", pgxPoolConfig.MaxConns).
		Dur("conn_max_lifetime", pgxPoolConfig.MaxConnLifetime).
		Msg("connected to the database")

	return database, nil
}

// FromPool wraps an existing pool. Used by tests and tools that build their
// own pgxpool.
func FromPool(pool *pgxpool.Pool, checkoutTimeout time.Duration, logger *zerolog.Logger) *Database {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Database{Pool: pool, CheckoutTimeout: checkoutTimeout, log: logger}
}

// Close closes the connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
