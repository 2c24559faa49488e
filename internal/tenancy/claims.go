package tenancy

import (
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// tenantClaimKeys is the fixed priority order for resolving the tenant id
// from a token payload. Upstream identity providers have emitted all three
// names over time; the first match wins. Append new names, never reorder.
var tenantClaimKeys = []string{"tenant_id", "empresa_id", "company_id"}

// metadataClaimKeys are nested objects searched after the top level misses.
var metadataClaimKeys = []string{"app_metadata", "user_metadata"}

// Claims is the normalized view of a bearer token payload.
type Claims struct {
	PrincipalID uuid.UUID
	TenantID    uuid.UUID // uuid.Nil when the token carries no tenant claim
	Role        string
	TokenID     string
	ExpiresAt   time.Time
}

// ClaimsExtractor parses and verifies bearer tokens. Signature verification
// is mandatory at every entry point and only HS256 is accepted; a token a
// caller cannot verify is treated the same as no token at all.
type ClaimsExtractor struct {
	secret []byte
	logger *slog.Logger
}

// NewClaimsExtractor constructs an extractor for the given signing secret.
func NewClaimsExtractor(secret string, logger *slog.Logger) *ClaimsExtractor {
	return &ClaimsExtractor{secret: []byte(secret), logger: logger}
}

// Extract verifies raw and returns its normalized claims. A missing tenant
// claim is not an error: the zero tenant propagates fail-closed. Structurally
// invalid or unverifiable tokens return ErrTokenInvalid.
func (e *ClaimsExtractor) Extract(raw string) (Claims, error) {
	payload := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, payload, e.key, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		if e.logger != nil {
			e.logger.Warn("unparseable credential", slog.Any("error", err))
		}
		return Claims{}, ErrTokenInvalid
	}

	var claims Claims
	if sub, _ := payload["sub"].(string); sub != "" {
		if id, err := uuid.Parse(sub); err == nil {
			claims.PrincipalID = id
		}
	}
	if role, ok := payload["role"].(string); ok {
		claims.Role = role
	}
	if jti, ok := payload["jti"].(string); ok {
		claims.TokenID = jti
	}
	if exp, ok := payload["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	claims.TenantID = resolveTenant(payload)
	return claims, nil
}

func (e *ClaimsExtractor) key(_ *jwt.Token) (any, error) {
	return e.secret, nil
}

// resolveTenant walks the accepted key names at the payload top level
// first, then inside each nested metadata object, stopping at the first
// value that parses as a UUID.
func resolveTenant(payload map[string]any) uuid.UUID {
	if id, ok := tenantFrom(payload); ok {
		return id
	}
	for _, meta := range metadataClaimKeys {
		nested, ok := payload[meta].(map[string]any)
		if !ok {
			continue
		}
		if id, ok := tenantFrom(nested); ok {
			return id
		}
	}
	return uuid.Nil
}

func tenantFrom(values map[string]any) (uuid.UUID, bool) {
	for _, key := range tenantClaimKeys {
		raw, ok := values[key].(string)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		return id, true
	}
	return uuid.Nil, false
}
