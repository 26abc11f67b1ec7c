package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/credtrailhq/credtrail/internal/models"
)

// maxListLimit is a defense-in-depth cap on limit values for list queries.
const maxListLimit = 1000

// defaultListLimit applies when a caller passes no limit.
const defaultListLimit = 50

// clampLimit normalizes a requested page size into [1, maxListLimit].
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}

	if limit > maxListLimit {
		return maxListLimit
	}

	return limit
}

// clampOffset normalizes a requested offset to be non-negative.
func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}

	return offset
}

// filterBuilder accumulates WHERE conditions with positional args.
// Column names are compile-time constants; only values are parameterized.
type filterBuilder struct {
	conditions []string
	args       []any
}

// eq adds an equality condition when value is non-empty.
func (f *filterBuilder) eq(column, value string) {
	if value == "" {
		return
	}

	f.add(column+" = $"+strconv.Itoa(len(f.args)+1), value)
}

// ilike adds a case-insensitive substring match when value is non-empty.
func (f *filterBuilder) ilike(column, value string) {
	if value == "" {
		return
	}

	f.add(column+" ILIKE $"+strconv.Itoa(len(f.args)+1), "%"+escapeLike(value)+"%")
}

// since adds a lower time bound when t is non-nil.
func (f *filterBuilder) since(column string, t *time.Time) {
	if t == nil {
		return
	}

	f.add(column+" >= $"+strconv.Itoa(len(f.args)+1), *t)
}

// until adds an upper time bound when t is non-nil.
func (f *filterBuilder) until(column string, t *time.Time) {
	if t == nil {
		return
	}

	f.add(column+" < $"+strconv.Itoa(len(f.args)+1), *t)
}

// add appends a raw condition with its argument.
func (f *filterBuilder) add(condition string, arg any) {
	f.conditions = append(f.conditions, condition)
	f.args = append(f.args, arg)
}

// where renders the accumulated conditions, or "" when there are none.
func (f *filterBuilder) where() string {
	if len(f.conditions) == 0 {
		return ""
	}

	return " WHERE " + strings.Join(f.conditions, " AND ")
}

// nextArg is the positional index the next parameter would take, for
// callers appending LIMIT/OFFSET after the filter args.
func (f *filterBuilder) nextArg() int {
	return len(f.args) + 1
}

// escapeLike escapes LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)

	return strings.ReplaceAll(s, "_", `\_`)
}

// mapPgError converts PostgreSQL constraint violations into model sentinels:
// 23505 (unique) becomes ErrDuplicateKey, 23503 (FK) becomes notFound so a
// bad provider_id on a child insert reads as "provider not found", and
// 22P02 (malformed uuid) also becomes notFound.
func mapPgError(err error, notFound error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return models.ErrDuplicateKey
		case "23503", "22P02":
			return notFound
		}
	}

	return err
}

// providerExists verifies a parent provider row, so nested list endpoints
// report a missing provider instead of an empty page.
func (b *Base) providerExists(ctx context.Context, id string) error {
	var exists bool

	err := b.Pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM providers WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking provider: %w", err)
	}

	if !exists {
		return models.ErrProviderNotFound
	}

	return nil
}

// setClause builds "col = $N" fragments for dynamic UPDATE statements.
type setClause struct {
	clauses []string
	args    []any
}

// set appends one column assignment.
func (u *setClause) set(column string, value any) {
	u.clauses = append(u.clauses, fmt.Sprintf("%s = $%d", column, len(u.args)+1))
	u.args = append(u.args, value)
}

// stamp appends an assignment that takes no argument, such as
// "completed_at = COALESCE(completed_at, now())".
func (u *setClause) stamp(clause string) {
	u.clauses = append(u.clauses, clause)
}

// empty reports whether no assignments were added.
func (u *setClause) empty() bool {
	return len(u.clauses) == 0
}

// sql renders the SET body ("a = $1, b = $2"), always stamping updated_at.
func (u *setClause) sql() string {
	return strings.Join(append(u.clauses, "updated_at = now()"), ", ")
}

// nextArg is the positional index following the accumulated args.
func (u *setClause) nextArg() int {
	return len(u.args) + 1
}
