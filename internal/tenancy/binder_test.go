package tenancy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindSetsTenantVariable(t *testing.T) {
	tenant := uuid.New()
	tx := &fakeTx{}

	require.NoError(t, bind(context.Background(), tx, tenant))
	require.Len(t, tx.gotSQL, 1)
	assert.Equal(t, `SELECT set_config($1, $2, true)`, tx.gotSQL[0])
	assert.Equal(t, []any{TenantVar, tenant.String()}, tx.gotArgs[0])
}

// With no tenant in scope the variable is still written, with the sentinel
// value. Leaving it unset on a pooled connection could retain a previous
// request's binding.
func TestBindSentinelWhenNoTenant(t *testing.T) {
	tx := &fakeTx{}

	require.NoError(t, bind(context.Background(), tx, TenantFromContext(context.Background())))
	require.Len(t, tx.gotArgs, 1)
	assert.Equal(t, TenantNone.String(), tx.gotArgs[0][1])
}

func TestBindFailure(t *testing.T) {
	tx := &fakeTx{execErr: assert.AnError}

	err := bind(context.Background(), tx, uuid.New())
	assert.ErrorIs(t, err, ErrBindFailed)
}

func TestSessionCommitRollbackOnce(t *testing.T) {
	tx := &fakeTx{}
	sess := NewSession(tx)

	require.NoError(t, sess.Commit(context.Background()))
	assert.True(t, tx.committed)

	// Deferred rollback after a commit must not fire.
	require.NoError(t, sess.Rollback(context.Background()))
	assert.False(t, tx.rolledBack)
}

func TestSessionRollback(t *testing.T) {
	tx := &fakeTx{}
	sess := NewSession(tx)

	require.NoError(t, sess.Rollback(context.Background()))
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)

	require.NoError(t, sess.Commit(context.Background()))
	assert.False(t, tx.committed)
}
