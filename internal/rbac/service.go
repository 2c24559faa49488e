package rbac

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Service evaluates permission grants. Grants are read from the store on
// every call, so a revocation is visible to the very next Check; there is
// no caching with a lifetime beyond the call itself.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Permissions returns the principal's granted actions keyed by resource.
func (s *Service) Permissions(ctx context.Context, principalID uuid.UUID) (map[string][]string, error) {
	grants, err := s.repo.GrantsForPrincipal(ctx, principalID)
	if err != nil {
		return nil, err
	}
	perms := make(map[string][]string, len(grants))
	for _, g := range grants {
		perms[g.Resource] = append(perms[g.Resource], g.Actions...)
	}
	return perms, nil
}

// Check reports whether the principal may perform action on resource. An
// unknown resource, an action outside the resource's vocabulary, a missing
// grant and a grant lacking the action all evaluate to false.
func (s *Service) Check(ctx context.Context, principalID uuid.UUID, resource, action string) (bool, error) {
	if !KnownAction(resource, action) {
		return false, nil
	}
	grants, err := s.repo.GrantsForPrincipal(ctx, principalID)
	if err != nil {
		return false, err
	}
	for _, g := range grants {
		if strings.EqualFold(g.Resource, resource) {
			return g.Allows(action), nil
		}
	}
	return false, nil
}
