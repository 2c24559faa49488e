package tenancy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian/internal/platform/httpx"
)

type widget struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
	Qty      int
}

func widgetSchema() Schema[widget] {
	return Schema[widget]{
		Table:   "widgets",
		Columns: []string{"name", "qty"},
		ScanRow: func(row pgx.Row) (widget, error) {
			var w widget
			err := row.Scan(&w.ID, &w.TenantID, &w.Name, &w.Qty)
			return w, err
		},
		Values: func(w widget) []any {
			return []any{w.Name, w.Qty}
		},
	}
}

func scanWidget(w widget) func(dest ...any) error {
	return func(dest ...any) error {
		*dest[0].(*uuid.UUID) = w.ID
		*dest[1].(*uuid.UUID) = w.TenantID
		*dest[2].(*string) = w.Name
		*dest[3].(*int) = w.Qty
		return nil
	}
}

func TestGetByIDFiltersByTenant(t *testing.T) {
	id, tenant := uuid.New(), uuid.New()
	tx := &fakeTx{scan: scanWidget(widget{ID: id, TenantID: tenant, Name: "bolt", Qty: 3})}
	store := NewStore(widgetSchema())

	got, err := store.GetByID(context.Background(), NewSession(tx), id, tenant)
	require.NoError(t, err)
	assert.Equal(t, "bolt", got.Name)

	require.Len(t, tx.gotSQL, 1)
	assert.Equal(t, `SELECT id, tenant_id, name, qty FROM widgets WHERE id = $1 AND tenant_id = $2`, tx.gotSQL[0])
	assert.Equal(t, []any{id, tenant}, tx.gotArgs[0])
}

// A record owned by another tenant and a record that does not exist must
// produce the same error.
func TestGetByIDCrossTenantIsNotFound(t *testing.T) {
	tx := &fakeTx{scan: func(...any) error { return pgx.ErrNoRows }}
	store := NewStore(widgetSchema())

	_, err := store.GetByID(context.Background(), NewSession(tx), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateStampsTenantFromArgument(t *testing.T) {
	tenant := uuid.New()
	foreign := uuid.New()
	created := widget{ID: uuid.New(), TenantID: tenant, Name: "nut", Qty: 9}
	tx := &fakeTx{scan: scanWidget(created)}
	store := NewStore(widgetSchema())

	// The record claims to belong to a different tenant; the claim is ignored.
	rec := widget{TenantID: foreign, Name: "nut", Qty: 9}
	got, err := store.Create(context.Background(), NewSession(tx), rec, tenant)
	require.NoError(t, err)
	assert.Equal(t, tenant, got.TenantID)

	require.Len(t, tx.gotSQL, 1)
	assert.Equal(t, `INSERT INTO widgets (tenant_id, name, qty) VALUES ($1, $2, $3) RETURNING id, tenant_id, name, qty`, tx.gotSQL[0])
	assert.Equal(t, []any{tenant, "nut", 9}, tx.gotArgs[0])
	assert.NotContains(t, tx.gotArgs[0], foreign)
}

func TestCreateUniqueViolationIsDuplicate(t *testing.T) {
	tx := &fakeTx{scan: func(...any) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "widgets_tenant_id_name_key"}
	}}
	store := NewStore(widgetSchema())

	_, err := store.Create(context.Background(), NewSession(tx), widget{Name: "nut"}, uuid.New())
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestCreateWithoutTenantFailsClosed(t *testing.T) {
	tx := &fakeTx{}
	store := NewStore(widgetSchema())

	_, err := store.Create(context.Background(), NewSession(tx), widget{Name: "nut"}, uuid.Nil)
	assert.ErrorIs(t, err, ErrNoTenant)
	assert.Empty(t, tx.gotSQL)
}

func TestUpdateEmptyPatchIsARead(t *testing.T) {
	id, tenant := uuid.New(), uuid.New()
	current := widget{ID: id, TenantID: tenant, Name: "bolt", Qty: 3}
	tx := &fakeTx{scan: scanWidget(current)}
	store := NewStore(widgetSchema())

	got, err := store.Update(context.Background(), NewSession(tx), id, map[string]any{}, tenant)
	require.NoError(t, err)
	assert.Equal(t, current, got)

	require.Len(t, tx.gotSQL, 1)
	assert.Contains(t, tx.gotSQL[0], "SELECT")
	assert.NotContains(t, tx.gotSQL[0], "UPDATE")
}

func TestUpdateBuildsPartialSet(t *testing.T) {
	id, tenant := uuid.New(), uuid.New()
	tx := &fakeTx{scan: scanWidget(widget{ID: id, TenantID: tenant, Name: "bolt", Qty: 7})}
	store := NewStore(widgetSchema())

	_, err := store.Update(context.Background(), NewSession(tx), id, map[string]any{"qty": 7}, tenant)
	require.NoError(t, err)

	require.Len(t, tx.gotSQL, 1)
	assert.Equal(t, `UPDATE widgets SET qty = $3 WHERE id = $1 AND tenant_id = $2 RETURNING id, tenant_id, name, qty`, tx.gotSQL[0])
	assert.Equal(t, []any{id, tenant, 7}, tx.gotArgs[0])
}

func TestUpdateRejectsUnknownColumn(t *testing.T) {
	tx := &fakeTx{}
	store := NewStore(widgetSchema())

	_, err := store.Update(context.Background(), NewSession(tx), uuid.New(), map[string]any{"tenant_id": uuid.New()}, uuid.New())
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.Empty(t, tx.gotSQL)
}

func TestUpdateMissReturnsNotFound(t *testing.T) {
	tx := &fakeTx{scan: func(...any) error { return pgx.ErrNoRows }}
	store := NewStore(widgetSchema())

	_, err := store.Update(context.Background(), NewSession(tx), uuid.New(), map[string]any{"qty": 1}, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReportsOutcome(t *testing.T) {
	store := NewStore(widgetSchema())

	tx := &fakeTx{execTag: pgconn.NewCommandTag("DELETE 1")}
	deleted, err := store.Delete(context.Background(), NewSession(tx), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Contains(t, tx.gotSQL[0], "WHERE id = $1 AND tenant_id = $2")

	tx = &fakeTx{execTag: pgconn.NewCommandTag("DELETE 0")}
	deleted, err = store.Delete(context.Background(), NewSession(tx), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetAllReturnsTenantRows(t *testing.T) {
	tenant := uuid.New()
	rows := &fakeRows{scans: []func(dest ...any) error{
		scanWidget(widget{ID: uuid.New(), TenantID: tenant, Name: "bolt", Qty: 3}),
		scanWidget(widget{ID: uuid.New(), TenantID: tenant, Name: "nut", Qty: 9}),
	}}
	tx := &fakeTx{rows: rows}
	store := NewStore(widgetSchema())

	got, err := store.GetAll(context.Background(), NewSession(tx), tenant)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bolt", got[0].Name)

	require.Len(t, tx.gotSQL, 1)
	assert.Equal(t, `SELECT id, tenant_id, name, qty FROM widgets WHERE tenant_id = $1 ORDER BY id`, tx.gotSQL[0])
	assert.Equal(t, []any{tenant}, tx.gotArgs[0])
}

func TestGetMultiClampsPagination(t *testing.T) {
	tenant := uuid.New()
	tx := &fakeTx{}
	store := NewStore(widgetSchema())

	_, err := store.GetMulti(context.Background(), NewSession(tx), tenant, -5, 0, nil)
	require.NoError(t, err)
	require.Len(t, tx.gotArgs, 1)
	assert.Equal(t, []any{tenant, defaultLimit, 0}, tx.gotArgs[0])

	tx = &fakeTx{}
	_, err = store.GetMulti(context.Background(), NewSession(tx), tenant, 10, 10_000, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{tenant, maxLimit, 10}, tx.gotArgs[0])
}

func TestGetMultiComposesFilters(t *testing.T) {
	tenant := uuid.New()
	tx := &fakeTx{}
	store := NewStore(widgetSchema())

	_, err := store.GetMulti(context.Background(), NewSession(tx), tenant, 0, 25, map[string]any{"qty": 2, "name": "bolt"})
	require.NoError(t, err)
	// Filter keys are sorted, so the generated SQL is deterministic.
	assert.Equal(t,
		`SELECT id, tenant_id, name, qty FROM widgets WHERE tenant_id = $1 AND name = $2 AND qty = $3 ORDER BY id LIMIT $4 OFFSET $5`,
		tx.gotSQL[0])
	assert.Equal(t, []any{tenant, "bolt", 2, 25, 0}, tx.gotArgs[0])
}

func TestGetMultiRejectsUnknownFilter(t *testing.T) {
	tx := &fakeTx{}
	store := NewStore(widgetSchema())

	_, err := store.GetMulti(context.Background(), NewSession(tx), uuid.New(), 0, 10, map[string]any{"password": "x"})
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.Empty(t, tx.gotSQL)
}
