package tenancy

import (
	"context"

	"github.com/google/uuid"
)

// Scope carries the tenant and principal resolved for one request. It is
// populated once by the authentication middleware and read for the rest of
// the request. Because it travels in the request context, isolation between
// concurrently processed requests is guaranteed by context.Context itself;
// there is no shared container to clear at request boundaries.
type Scope struct {
	TenantID    uuid.UUID
	PrincipalID uuid.UUID
	Role        string
}

type scopeContextKey struct{}

// ContextWithScope stores the scope in context.
func ContextWithScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey{}, scope)
}

// ScopeFromContext extracts the scope from context. Nil means the request
// is anonymous.
func ScopeFromContext(ctx context.Context) *Scope {
	scope, _ := ctx.Value(scopeContextKey{}).(*Scope)
	return scope
}

// TenantFromContext returns the resolved tenant id, or uuid.Nil when none
// was resolved. The nil UUID matches zero rows everywhere, so lookups made
// without a tenant fail closed.
func TenantFromContext(ctx context.Context) uuid.UUID {
	if scope := ScopeFromContext(ctx); scope != nil {
		return scope.TenantID
	}
	return uuid.Nil
}
