package rbac

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/meridian-erp/meridian/internal/platform/httpx"
	"github.com/meridian-erp/meridian/internal/tenancy"
)

// Middleware wires permission guards for HTTP handlers.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Require ensures the current principal holds the action on the resource.
// A failed check is a uniform 403 with no detail about which check failed.
func (m Middleware) Require(resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := tenancy.ScopeFromContext(r.Context())
			if scope == nil || scope.PrincipalID == uuid.Nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			ok, err := m.Service.Check(r.Context(), scope.PrincipalID, resource, action)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("permission check",
						slog.String("request_id", chimw.GetReqID(r.Context())),
						slog.String("resource", resource),
						slog.String("action", action),
						slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if !ok {
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
