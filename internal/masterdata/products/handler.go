package products

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/meridian-erp/meridian/internal/platform/httpx"
	"github.com/meridian-erp/meridian/internal/rbac"
	"github.com/meridian-erp/meridian/internal/tenancy"
)

// Handler exposes product CRUD endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	guard    rbac.Middleware
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		guard:    guard,
		validate: validator.New(),
	}
}

// MountRoutes registers product routes on the provided router. Every route
// is guarded by the matching permission on the product resource.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.Require(Resource, rbac.ActionView)).Get("/", h.list)
	r.With(h.guard.Require(Resource, rbac.ActionView)).Get("/{id}", h.get)
	r.With(h.guard.Require(Resource, rbac.ActionCreate)).Post("/", h.create)
	r.With(h.guard.Require(Resource, rbac.ActionUpdate)).Patch("/{id}", h.update)
	r.With(h.guard.Require(Resource, rbac.ActionDelete)).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	filters := map[string]any{}
	if code := r.URL.Query().Get("code"); code != "" {
		filters["code"] = code
	}
	if active := r.URL.Query().Get("is_active"); active != "" {
		parsed, err := strconv.ParseBool(active)
		if err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: invalid is_active", httpx.ErrValidation))
			return
		}
		filters["is_active"] = parsed
	}

	page, err := h.service.List(r.Context(), skip, limit, filters)
	if err != nil {
		h.logger.Error("list products",
			slog.String("request_id", chimw.GetReqID(r.Context())),
			slog.Any("error", err))
		tenancy.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": page})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid id", httpx.ErrValidation))
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		tenancy.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid request body", httpx.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	created, err := h.service.Create(r.Context(), req.product())
	if err != nil {
		h.logger.Error("create product",
			slog.String("request_id", chimw.GetReqID(r.Context())),
			slog.Any("error", err))
		tenancy.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid id", httpx.ErrValidation))
		return
	}
	var req UpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid request body", httpx.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	updated, err := h.service.Update(r.Context(), id, req.patch())
	if err != nil {
		tenancy.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid id", httpx.ErrValidation))
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		tenancy.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
