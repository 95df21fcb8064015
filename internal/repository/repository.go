// Package repository handles all interactions with the database.
//
// There is one repository per table. Each exported method is its own unit of
// work: it checks a connection out of the pool, runs its statements inside a
// transaction and releases the connection before returning.
//
// Reads of a missing row return (nil, nil). Updates and deletes of a missing
// row succeed without effect. Driver errors come back classified as
// *sqlerr.Error.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/model"
	"github.com/deppfellow/agile/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// ErrNotApplicable is returned by lookups the schema cannot answer.
var ErrNotApplicable = errors.New("operation is not applicable")

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// table describes a mapped table: its name, its columns in scan order and its
// primary-key columns.
type table struct {
	name    string
	columns []string
	key     []string
}

// cols renders the column list, qualified with alias when it is not empty.
func (t table) cols(alias string) string {
	if alias == "" {
		return strings.Join(t.columns, ", ")
	}
	qualified := make([]string, len(t.columns))
	for i, c := range t.columns {
		qualified[i] = alias + "." + c
	}
	return strings.Join(qualified, ", ")
}

func (t table) selectAll() sq.SelectBuilder {
	return psql.Select(t.columns...).From(t.name)
}

// queryWhere renders "SELECT <cols> FROM <table> WHERE <column> = $1 ORDER BY <key>".
func (t table) queryWhere(column string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s",
		t.cols(""), t.name, column, strings.Join(t.key, ", "))
}

// crud runs the single-table statements every repository shares.
type crud[T any] struct {
	db *database.Database
	t  table
}

func (c crud[T]) write(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return sqlerr.Wrap(c.db.WithTx(ctx, fn))
}

func (c crud[T]) read(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return sqlerr.Wrap(c.db.WithReadTx(ctx, fn))
}

func (c crud[T]) create(ctx context.Context, values map[string]any) (*T, error) {
	var out *T
	err := c.write(ctx, func(tx pgx.Tx) error {
		var err error
		out, err = insertRow[T](ctx, tx, c.t, values)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c crud[T]) get(ctx context.Context, where sq.Eq) (*T, error) {
	var out *T
	err := c.read(ctx, func(tx pgx.Tx) error {
		var err error
		out, err = getRow[T](ctx, tx, c.t, where)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c crud[T]) update(ctx context.Context, where sq.Eq, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return c.write(ctx, func(tx pgx.Tx) error {
		return updateRows(ctx, tx, c.t, where, values)
	})
}

func (c crud[T]) delete(ctx context.Context, where sq.Eq) error {
	return c.write(ctx, func(tx pgx.Tx) error {
		return deleteRows(ctx, tx, c.t, where)
	})
}

func (c crud[T]) all(ctx context.Context) ([]T, error) {
	var out []T
	err := c.read(ctx, func(tx pgx.Tx) error {
		var err error
		out, err = listRows[T](ctx, tx, c.t)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func insertRow[T any](ctx context.Context, q database.DBTX, t table, values map[string]any) (*T, error) {
	var (
		query string
		args  []any
		err   error
	)

	if len(values) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", t.name, t.cols(""))
	} else {
		query, args, err = psql.Insert(t.name).SetMap(values).Suffix("RETURNING " + t.cols("")).ToSql()
		if err != nil {
			return nil, fmt.Errorf("building insert into %s: %w", t.name, err)
		}
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
}

func getRow[T any](ctx context.Context, q database.DBTX, t table, where sq.Eq) (*T, error) {
	query, args, err := t.selectAll().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select from %s: %w", t.name, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	out, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return out, err
}

func listRows[T any](ctx context.Context, q database.DBTX, t table) ([]T, error) {
	query, args, err := t.selectAll().OrderBy(t.key...).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select from %s: %w", t.name, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

func updateRows(ctx context.Context, q database.DBTX, t table, where sq.Eq, values map[string]any) error {
	query, args, err := psql.Update(t.name).SetMap(values).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("building update of %s: %w", t.name, err)
	}

	_, err = q.Exec(ctx, query, args...)
	return err
}

func deleteRows(ctx context.Context, q database.DBTX, t table, where sq.Eq) error {
	query, args, err := psql.Delete(t.name).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("building delete from %s: %w", t.name, err)
	}

	_, err = q.Exec(ctx, query, args...)
	return err
}

// queueList queues query on b and collects its rows into dst when the batch
// is closed.
func queueList[T any](b *pgx.Batch, dst *[]T, query string, args ...any) {
	b.Queue(query, args...).Query(func(rows pgx.Rows) error {
		items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
		if err != nil {
			return err
		}
		*dst = items
		return nil
	})
}

// queueOne is queueList for an optional single row; dst stays nil when the
// query returns nothing.
func queueOne[T any](b *pgx.Batch, dst **T, query string, args ...any) {
	b.Queue(query, args...).Query(func(rows pgx.Rows) error {
		items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
		if err != nil {
			return err
		}
		if len(items) > 0 {
			*dst = items[0]
		}
		return nil
	})
}

// scanJoined reads one joined row into targets. found is false on no rows.
func scanJoined(ctx context.Context, q database.DBTX, query string, id []any, targets ...any) (bool, error) {
	err := q.QueryRow(ctx, query, id...).Scan(targets...)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func sendBatch(ctx context.Context, q database.DBTX, b *pgx.Batch) error {
	if b.Len() == 0 {
		return nil
	}
	return q.SendBatch(ctx, b).Close()
}

func setPtr[T any](values map[string]any, column string, v *T) {
	if v != nil {
		values[column] = *v
	}
}

func setNullable[T any](values map[string]any, column string, v model.Nullable[T]) {
	if v.Set {
		values[column] = v.SQLValue()
	}
}

func fields(groups ...[]any) []any {
	var out []any
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
