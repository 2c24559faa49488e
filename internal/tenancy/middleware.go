package tenancy

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/meridian-erp/meridian/internal/platform/httpx"
)

// Revocations reports whether a token id has been revoked before its
// natural expiry. Implemented by the auth package's redis denylist.
type Revocations interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Middleware resolves the request scope from the Authorization header.
// Requests without a verifiable credential continue anonymously; whether
// anonymous is acceptable is decided by RequireScope and the permission
// guards on each route.
func Middleware(extractor *ClaimsExtractor, revocations Revocations, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := extractor.Extract(raw)
			if err != nil {
				// Unparseable credentials downgrade to anonymous rather
				// than erroring here; protected routes still reject.
				next.ServeHTTP(w, r)
				return
			}
			if revocations != nil && claims.TokenID != "" {
				revoked, err := revocations.IsRevoked(r.Context(), claims.TokenID)
				if err != nil {
					logger.Error("revocation lookup",
						slog.String("request_id", chimw.GetReqID(r.Context())),
						slog.Any("error", err))
					httpx.Problem(w, http.StatusServiceUnavailable, "Service Unavailable", "")
					return
				}
				if revoked {
					next.ServeHTTP(w, r)
					return
				}
			}
			scope := &Scope{
				TenantID:    claims.TenantID,
				PrincipalID: claims.PrincipalID,
				Role:        claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(ContextWithScope(r.Context(), scope)))
		})
	}
}

// RequireScope rejects requests that did not authenticate.
func RequireScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := ScopeFromContext(r.Context())
		if scope == nil || scope.PrincipalID == uuid.Nil {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
