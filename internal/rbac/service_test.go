package rbac

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGrantRepo struct {
	grants map[uuid.UUID][]Grant
	err    error
}

func (s *stubGrantRepo) GrantsForPrincipal(_ context.Context, principalID uuid.UUID) ([]Grant, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.grants[principalID], nil
}

func TestCheckGrantedAction(t *testing.T) {
	principal := uuid.New()
	repo := &stubGrantRepo{grants: map[uuid.UUID][]Grant{
		principal: {{PrincipalID: principal, Resource: "produtos", Actions: []string{"view", "create"}}},
	}}
	svc := NewService(repo)

	ok, err := svc.Check(context.Background(), principal, "produtos", "view")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckDeniesEverythingElse(t *testing.T) {
	principal := uuid.New()
	repo := &stubGrantRepo{grants: map[uuid.UUID][]Grant{
		principal: {{PrincipalID: principal, Resource: "produtos", Actions: []string{"view"}}},
	}}
	svc := NewService(repo)

	cases := []struct {
		name             string
		resource, action string
	}{
		{"action not in grant", "produtos", "delete"},
		{"no grant for resource", "clientes", "view"},
		{"action outside resource vocabulary", "produtos", "export"},
		{"unknown resource", "faturas", "view"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := svc.Check(context.Background(), principal, tc.resource, tc.action)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}

	ok, err := svc.Check(context.Background(), uuid.New(), "produtos", "view")
	require.NoError(t, err)
	assert.False(t, ok, "principal without grants")
}

// Removing a grant must make the very next Check return false.
func TestCheckSeesRevocationImmediately(t *testing.T) {
	principal := uuid.New()
	repo := &stubGrantRepo{grants: map[uuid.UUID][]Grant{
		principal: {{PrincipalID: principal, Resource: "produtos", Actions: []string{"delete"}}},
	}}
	svc := NewService(repo)

	ok, err := svc.Check(context.Background(), principal, "produtos", "delete")
	require.NoError(t, err)
	require.True(t, ok)

	delete(repo.grants, principal)

	ok, err = svc.Check(context.Background(), principal, "produtos", "delete")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPermissionsGroupsByResource(t *testing.T) {
	principal := uuid.New()
	repo := &stubGrantRepo{grants: map[uuid.UUID][]Grant{
		principal: {
			{PrincipalID: principal, Resource: "produtos", Actions: []string{"view", "update"}},
			{PrincipalID: principal, Resource: "clientes", Actions: []string{"view"}},
		},
	}}
	svc := NewService(repo)

	perms, err := svc.Permissions(context.Background(), principal)
	require.NoError(t, err)
	assert.Equal(t, []string{"view", "update"}, perms["produtos"])
	assert.Equal(t, []string{"view"}, perms["clientes"])
}

func TestKnownAction(t *testing.T) {
	assert.True(t, KnownAction("produtos", "delete"))
	assert.True(t, KnownAction("Produtos", "Delete"))
	assert.False(t, KnownAction("produtos", "export"))
	assert.False(t, KnownAction("estoque", "view"))
}
