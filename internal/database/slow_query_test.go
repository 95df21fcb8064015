package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newClockedTracer(threshold time.Duration, buf *bytes.Buffer, steps ...time.Duration) *slowQueryTracer {
	logger := zerolog.New(buf)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	tracer := newSlowQueryTracer(threshold, &logger)
	tracer.now = func() time.Time {
		t := base.Add(steps[calls])
		calls++
		return t
	}
	return tracer
}

func TestSlowQueryTracerLogsSlowQueries(t *testing.T) {
	var buf bytes.Buffer
	tracer := newClockedTracer(100*time.Millisecond, &buf, 0, 250*time.Millisecond)

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT pg_sleep(1)"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("canceled")})

	assert.Contains(t, buf.String(), `"message":"slow query"`)
	assert.Contains(t, buf.String(), "SELECT pg_sleep(1)")
	assert.Contains(t, buf.String(), "canceled")
}

func TestSlowQueryTracerIgnoresFastQueries(t *testing.T) {
	var buf bytes.Buffer
	tracer := newClockedTracer(100*time.Millisecond, &buf, 0, 10*time.Millisecond)

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Empty(t, buf.String())
}

func TestChainTracers(t *testing.T) {
	nop := zerolog.Nop()
	slow := newSlowQueryTracer(time.Second, &nop)

	assert.Nil(t, chainTracers(nil))
	assert.Same(t, slow, chainTracers([]any{slow}))
	assert.IsType(t, &multiTracer{}, chainTracers([]any{slow, localTracer(zerolog.InfoLevel)}))
}
