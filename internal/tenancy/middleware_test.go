package tenancy

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s stubRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[jti], nil
}

func scopeCapture(captured **Scope) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = ScopeFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewarePopulatesScope(t *testing.T) {
	principal, tenant := uuid.New(), uuid.New()
	extractor := NewClaimsExtractor(testSecret, slog.Default())

	var captured *Scope
	handler := Middleware(extractor, nil, slog.Default())(scopeCapture(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"sub":       principal.String(),
		"tenant_id": tenant.String(),
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, captured)
	assert.Equal(t, principal, captured.PrincipalID)
	assert.Equal(t, tenant, captured.TenantID)
}

func TestMiddlewareUnparseableCredentialIsAnonymous(t *testing.T) {
	extractor := NewClaimsExtractor(testSecret, slog.Default())

	var captured *Scope
	handler := Middleware(extractor, nil, slog.Default())(scopeCapture(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, captured)
}

func TestMiddlewareRevokedTokenIsAnonymous(t *testing.T) {
	extractor := NewClaimsExtractor(testSecret, slog.Default())
	revocations := stubRevocations{revoked: map[string]bool{"revoked-jti": true}}

	var captured *Scope
	handler := Middleware(extractor, revocations, slog.Default())(scopeCapture(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"sub": uuid.NewString(),
		"jti": "revoked-jti",
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Nil(t, captured)
}

func TestMiddlewareRevocationLookupFailure(t *testing.T) {
	extractor := NewClaimsExtractor(testSecret, slog.Default())
	revocations := stubRevocations{err: errors.New("redis down")}

	var logged bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logged, nil))

	var captured *Scope
	handler := Middleware(extractor, revocations, logger)(scopeCapture(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chimw.RequestIDKey, "req-42"))
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"sub": uuid.NewString(),
		"jti": "some-jti",
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Nil(t, captured)
	assert.Contains(t, logged.String(), "request_id=req-42")
}

func TestRequireScope(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireScope(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticated passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := ContextWithScope(req.Context(), &Scope{PrincipalID: uuid.New(), TenantID: uuid.New()})
		rec := httptest.NewRecorder()
		RequireScope(next).ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
