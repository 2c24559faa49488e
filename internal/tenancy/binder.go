package tenancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian/internal/platform/db"
)

// TenantVar is the session-scoped variable the row-level security policies
// on every tenant-scoped table read.
const TenantVar = "app.current_tenant"

// TenantNone is written to TenantVar when no tenant is in scope. Real
// tenant ids are random UUIDs, so the nil UUID matches zero rows. The
// variable is never left unset: on a pooled connection an unset variable
// could retain the binding of whichever request used the connection last.
var TenantNone = uuid.Nil

// Backend is the transaction surface a Session drives. pgx.Tx satisfies
// it; tests substitute fakes.
type Backend interface {
	db.Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Session is a database transaction bound to the tenant of the request
// that opened it. All tenant-scoped statements run through a Session, so
// the security variable is rebound on every transaction rather than once
// per pooled connection.
type Session struct {
	tx   Backend
	done bool
}

// NewSession wraps an already-open transaction. Begin is the production
// path; NewSession exists for code that manages its own transaction and
// for tests.
func NewSession(tx Backend) *Session {
	return &Session{tx: tx}
}

// Begin opens a transaction and binds the security variable from the
// request scope before any other statement runs. A binding failure aborts
// the transaction: proceeding would silently disable row-level isolation.
func Begin(ctx context.Context, pool *pgxpool.Pool) (*Session, error) {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("tenancy: begin tx: %w", err)
	}
	if err := bind(ctx, tx, TenantFromContext(ctx)); err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	return &Session{tx: tx}, nil
}

// bind issues the configuration command. The third argument makes the
// setting transaction-local, so it cannot outlive the transaction on a
// pooled connection.
func bind(ctx context.Context, tx Backend, tenant uuid.UUID) error {
	if _, err := tx.Exec(ctx, `SELECT set_config($1, $2, true)`, TenantVar, tenant.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrBindFailed, err)
	}
	return nil
}

// Commit finishes the transaction.
func (s *Session) Commit(ctx context.Context) error {
	if s == nil || s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("tenancy: commit: %w", err)
	}
	return nil
}

// Rollback aborts the transaction. Safe to defer after Commit.
func (s *Session) Rollback(ctx context.Context) error {
	if s == nil || s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// Querier exposes the bound transaction for statement execution.
func (s *Session) Querier() db.Querier {
	return s.tx
}

// WithSession runs fn inside a bound transaction, committing on success
// and rolling back on error, cancellation or panic.
func WithSession(ctx context.Context, pool *pgxpool.Pool, fn func(*Session) error) error {
	sess, err := Begin(ctx, pool)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	if err := fn(sess); err != nil {
		return err
	}
	return sess.Commit(ctx)
}

// Runner opens bound sessions on behalf of services, which keeps the pool
// out of their constructors and lets tests drive fakes.
type Runner interface {
	WithSession(ctx context.Context, fn func(*Session) error) error
}

// PoolRunner is the production Runner backed by a pgx pool.
type PoolRunner struct {
	Pool *pgxpool.Pool
}

// WithSession implements Runner.
func (r PoolRunner) WithSession(ctx context.Context, fn func(*Session) error) error {
	return WithSession(ctx, r.Pool, fn)
}
