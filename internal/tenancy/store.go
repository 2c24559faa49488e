package tenancy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/meridian-erp/meridian/internal/platform/httpx"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Schema maps a record type onto its table. Columns excludes id and
// tenant_id, which every tenant-scoped table carries in that order at the
// head of the select list.
type Schema[T any] struct {
	Table   string
	Columns []string
	// ScanRow reads one row in select-list order: id, tenant_id, Columns...
	ScanRow func(row pgx.Row) (T, error)
	// Values returns a record's values aligned with Columns.
	Values func(rec T) []any
}

// Store is the application-level tenant enforcement point: every statement
// it issues filters on tenant_id. The row-level security policies bound by
// the Session are the second, independent enforcement point at the
// database layer. Neither layer may assume the other compensates for a
// missing filter.
type Store[T any] struct {
	schema  Schema[T]
	columns map[string]struct{}
}

// NewStore builds a store for the given schema.
func NewStore[T any](schema Schema[T]) *Store[T] {
	columns := make(map[string]struct{}, len(schema.Columns))
	for _, col := range schema.Columns {
		columns[col] = struct{}{}
	}
	return &Store[T]{schema: schema, columns: columns}
}

func (s *Store[T]) selectList() string {
	return "id, tenant_id, " + strings.Join(s.schema.Columns, ", ")
}

// GetByID returns the record with the given id owned by tenant. A record
// owned by a different tenant yields the same ErrNotFound as a nonexistent
// id; the equivalence is deliberate.
func (s *Store[T]) GetByID(ctx context.Context, sess *Session, id, tenant uuid.UUID) (T, error) {
	var zero T
	query := `SELECT ` + s.selectList() + ` FROM ` + s.schema.Table + ` WHERE id = $1 AND tenant_id = $2`
	rec, err := s.schema.ScanRow(sess.tx.QueryRow(ctx, query, id, tenant))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return rec, nil
}

// GetAll returns every record owned by tenant.
func (s *Store[T]) GetAll(ctx context.Context, sess *Session, tenant uuid.UUID) ([]T, error) {
	query := `SELECT ` + s.selectList() + ` FROM ` + s.schema.Table + ` WHERE tenant_id = $1 ORDER BY id`
	rows, err := sess.tx.Query(ctx, query, tenant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.collect(rows)
}

// GetMulti returns a page of the tenant's records. Filters compose with
// AND semantics and are validated against the schema's column list; skip
// is clamped to zero and limit to [1, maxLimit].
func (s *Store[T]) GetMulti(ctx context.Context, sess *Session, tenant uuid.UUID, skip, limit int, filters map[string]any) ([]T, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	query := `SELECT ` + s.selectList() + ` FROM ` + s.schema.Table + ` WHERE tenant_id = $1`
	args := []any{tenant}
	for _, key := range sortedKeys(filters) {
		if _, ok := s.columns[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, key)
		}
		args = append(args, filters[key])
		query += ` AND ` + key + ` = $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY id LIMIT $` + strconv.Itoa(len(args))
	args = append(args, skip)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := sess.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.collect(rows)
}

// Create inserts the record under tenant. Any tenant value carried by rec
// is ignored: the tenant column is written exclusively from the argument,
// so a compromised or buggy caller cannot plant a record in another
// tenant.
func (s *Store[T]) Create(ctx context.Context, sess *Session, rec T, tenant uuid.UUID) (T, error) {
	var zero T
	if tenant == TenantNone {
		return zero, ErrNoTenant
	}
	values := s.schema.Values(rec)
	if len(values) != len(s.schema.Columns) {
		return zero, fmt.Errorf("tenancy: %s: %d values for %d columns", s.schema.Table, len(values), len(s.schema.Columns))
	}

	cols := append([]string{"tenant_id"}, s.schema.Columns...)
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	query := `INSERT INTO ` + s.schema.Table + ` (` + strings.Join(cols, ", ") + `) VALUES (` +
		strings.Join(placeholders, ", ") + `) RETURNING ` + s.selectList()

	args := make([]any, 0, len(values)+1)
	args = append(args, tenant)
	args = append(args, values...)
	rec, err := s.schema.ScanRow(sess.tx.QueryRow(ctx, query, args...))
	if err != nil {
		return zero, mapPgError(err)
	}
	return rec, nil
}

// Update applies the columns present in patch to the tenant's record and
// returns the updated row. Unknown columns are rejected before any SQL is
// built; id and tenant_id are not part of any schema's column list and so
// can never be patched. An empty patch returns the current record
// unchanged.
func (s *Store[T]) Update(ctx context.Context, sess *Session, id uuid.UUID, patch map[string]any, tenant uuid.UUID) (T, error) {
	var zero T
	if len(patch) == 0 {
		return s.GetByID(ctx, sess, id, tenant)
	}

	args := []any{id, tenant}
	sets := make([]string, 0, len(patch))
	for _, key := range sortedKeys(patch) {
		if _, ok := s.columns[key]; !ok {
			return zero, fmt.Errorf("%w: %s", ErrUnknownColumn, key)
		}
		args = append(args, patch[key])
		sets = append(sets, key+" = $"+strconv.Itoa(len(args)))
	}
	query := `UPDATE ` + s.schema.Table + ` SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 AND tenant_id = $2 RETURNING ` + s.selectList()

	rec, err := s.schema.ScanRow(sess.tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, mapPgError(err)
	}
	return rec, nil
}

// Delete removes the tenant's record, reporting whether a row was deleted.
func (s *Store[T]) Delete(ctx context.Context, sess *Session, id, tenant uuid.UUID) (bool, error) {
	tag, err := sess.tx.Exec(ctx, `DELETE FROM `+s.schema.Table+` WHERE id = $1 AND tenant_id = $2`, id, tenant)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store[T]) collect(rows pgx.Rows) ([]T, error) {
	var records []T
	for rows.Next() {
		rec, err := s.schema.ScanRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// mapPgError translates a unique-constraint violation into the platform
// duplicate error so handlers answer 409 instead of 500.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", httpx.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
