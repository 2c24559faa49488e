package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-erp/meridian/internal/platform/httpx"
	"github.com/meridian-erp/meridian/internal/tenancy"
)

// Handler exposes read-only permission endpoints. Grant administration
// lives in back-office tooling, not in this API.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers permission routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/me", h.myPermissions)
	r.Get("/resources", h.resources)
}

func (h *Handler) myPermissions(w http.ResponseWriter, r *http.Request) {
	scope := tenancy.ScopeFromContext(r.Context())
	if scope == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	perms, err := h.service.Permissions(r.Context(), scope.PrincipalID)
	if err != nil {
		h.logger.Error("list permissions",
			slog.String("request_id", chimw.GetReqID(r.Context())),
			slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"permissions": perms})
}

func (h *Handler) resources(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"resources": Resources()})
}
