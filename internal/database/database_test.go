package database

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/agile/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("AGILE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("AGILE_TEST_DATABASE_URL not set")
	}
	return dsn
}

func testDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "postgres",
		Password:        "secret",
		Name:            "agile",
		SSLMode:         "disable",
		PoolSize:        config.DefaultPoolSize,
		MaxOverflow:     config.DefaultMaxOverflow,
		PoolTimeout:     config.DefaultPoolTimeout,
		PoolRecycle:     config.DefaultPoolRecycle,
		ConnMaxIdleTime: config.DefaultConnMaxIdleTime,
	}
}

func TestPoolConfigSizing(t *testing.T) {
	poolCfg, err := PoolConfig(testDatabaseConfig())
	require.NoError(t, err)

	assert.Equal(t, int32(5), poolCfg.MinConns)
	assert.Equal(t, int32(15), poolCfg.MaxConns)
	assert.Equal(t, 1800*time.Second, poolCfg.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, poolCfg.MaxConnIdleTime)
	assert.Equal(t, "agile", poolCfg.ConnConfig.Database)
	assert.Equal(t, "secret", poolCfg.ConnConfig.Password)
}

func TestPoolConfigKeepsDriverIdleDefault(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.ConnMaxIdleTime = 0

	poolCfg, err := PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, poolCfg.MaxConnIdleTime)
}

func TestEmbeddedMigrations(t *testing.T) {
	subtree, err := Migrations()
	require.NoError(t, err)

	names, err := fs.Glob(subtree, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	body, err := fs.ReadFile(subtree, names[0])
	require.NoError(t, err)

	sql := string(body)
	assert.Contains(t, sql, "---- create above / drop below ----")
	assert.Contains(t, sql, "CONSTRAINT users_email_key UNIQUE (email)")
	assert.Equal(t, 6, strings.Count(sql, "ON DELETE CASCADE"))
}

// A pool with a single connection that is already checked out must make
// WithTx fail with ErrPoolTimeout once the checkout timeout elapses. Needs a
// live server.
func TestWithTxCheckoutTimeout(t *testing.T) {
	dsn := testDSN(t)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	poolCfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := FromPool(pool, 200*time.Millisecond, nil)

	held, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer held.Release()

	called := false
	err = db.WithTx(context.Background(), func(pgx.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrPoolTimeout)
	assert.False(t, called)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	dsn := testDSN(t)

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := FromPool(pool, time.Second, nil)
	ctx := context.Background()

	boom := assert.AnError
	err = db.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, "CREATE TABLE uow_rollback_check (v INT)")
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var exists bool
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_tables WHERE tablename = 'uow_rollback_check')").Scan(&exists))
	assert.False(t, exists)
}
