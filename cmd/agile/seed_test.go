package main

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freshSchemaDSN creates an empty schema on AGILE_TEST_DATABASE_URL and
// returns a DSN whose search_path points at it. The schema is dropped when
// the test ends.
func freshSchemaDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv("AGILE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("AGILE_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	schema := fmt.Sprintf("seed_%d", time.Now().UnixNano())

	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn, err := pgx.Connect(ctx, dsn)
		if err != nil {
			return
		}
		defer conn.Close(ctx)
		_, _ = conn.Exec(ctx, "DROP SCHEMA "+schema+" CASCADE")
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String()
}

func TestRunSeedOnEmptyDatabase(t *testing.T) {
	dsn := freshSchemaDSN(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	repos := repository.NewRepositories(database.FromPool(pool, 5*time.Second, &logger))

	var out bytes.Buffer
	require.NoError(t, runSeed(ctx, &logger, dsn, repos, &out))

	for _, label := range []string{
		"access level", "access setting", "access level setting", "user", "project status",
		"task status", "priority", "project", "task", "project assignment", "task assignment",
		"chat", "message", "notification", "comment", "report",
	} {
		assert.Contains(t, out.String(), label+":\n", label)
		assert.Contains(t, out.String(), label+" by id:\n", label)
		assert.Contains(t, out.String(), label+" with relations:\n", label)
	}
	assert.Contains(t, out.String(), "access settings by access level: "+repository.ErrNotApplicable.Error())

	out.Reset()
	require.NoError(t, runSeed(ctx, &logger, dsn, repos, &out))
	assert.Contains(t, out.String(), "database already seeded")
}
