package products

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian/internal/audit"
	"github.com/meridian-erp/meridian/internal/tenancy"
)

// Service owns product business rules. Every operation runs inside a
// tenant-bound session and reads its tenant from the request scope; a
// request without a tenant resolves to the nil UUID and matches nothing.
type Service struct {
	runner tenancy.Runner
	repo   Repository
	sink   audit.Sink
}

// NewService constructs the product service.
func NewService(runner tenancy.Runner, repo Repository, sink audit.Sink) *Service {
	return &Service{runner: runner, repo: repo, sink: sink}
}

// Get returns one product of the caller's tenant.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	tenant := tenancy.TenantFromContext(ctx)
	var product Product
	err := s.runner.WithSession(ctx, func(sess *tenancy.Session) error {
		var err error
		product, err = s.repo.GetByID(ctx, sess, id, tenant)
		return err
	})
	return product, err
}

// List returns a page of the caller's tenant's products.
func (s *Service) List(ctx context.Context, skip, limit int, filters map[string]any) ([]Product, error) {
	tenant := tenancy.TenantFromContext(ctx)
	var page []Product
	err := s.runner.WithSession(ctx, func(sess *tenancy.Session) error {
		var err error
		page, err = s.repo.GetMulti(ctx, sess, tenant, skip, limit, filters)
		return err
	})
	if err != nil {
		return nil, err
	}
	if page == nil {
		page = []Product{}
	}
	return page, nil
}

// Create inserts a product under the caller's tenant.
func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	tenant := tenancy.TenantFromContext(ctx)
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	var created Product
	err := s.runner.WithSession(ctx, func(sess *tenancy.Session) error {
		var err error
		created, err = s.repo.Create(ctx, sess, product, tenant)
		return err
	})
	if err != nil {
		return Product{}, err
	}
	s.recordAudit(ctx, created.ID, "create", nil, audit.Snapshot(created))
	return created, nil
}

// Update applies a partial change to the tenant's product and returns the
// updated row. An empty patch is a read: no row is touched and no audit
// event is emitted.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch map[string]any) (Product, error) {
	tenant := tenancy.TenantFromContext(ctx)
	empty := len(patch) == 0
	if !empty {
		// Stamp updated_at on a copy; the caller's map stays untouched.
		stamped := make(map[string]any, len(patch)+1)
		for k, v := range patch {
			stamped[k] = v
		}
		stamped["updated_at"] = time.Now().UTC()
		patch = stamped
	}

	var before, after Product
	err := s.runner.WithSession(ctx, func(sess *tenancy.Session) error {
		var err error
		before, err = s.repo.GetByID(ctx, sess, id, tenant)
		if err != nil {
			return err
		}
		if empty {
			after = before
			return nil
		}
		after, err = s.repo.Update(ctx, sess, id, patch, tenant)
		return err
	})
	if err != nil {
		return Product{}, err
	}
	if !empty {
		s.recordAudit(ctx, id, "update", audit.Snapshot(before), audit.Snapshot(after))
	}
	return after, nil
}

// Delete removes the tenant's product.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	tenant := tenancy.TenantFromContext(ctx)
	var before Product
	err := s.runner.WithSession(ctx, func(sess *tenancy.Session) error {
		var err error
		before, err = s.repo.GetByID(ctx, sess, id, tenant)
		if err != nil {
			return err
		}
		deleted, err := s.repo.Delete(ctx, sess, id, tenant)
		if err != nil {
			return err
		}
		if !deleted {
			return tenancy.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.recordAudit(ctx, id, "delete", audit.Snapshot(before), nil)
	return nil
}

func (s *Service) recordAudit(ctx context.Context, id uuid.UUID, action string, before, after []byte) {
	event := audit.Event{
		EntityType: "products",
		EntityID:   id.String(),
		Action:     action,
		TenantID:   tenancy.TenantFromContext(ctx),
		Before:     before,
		After:      after,
		At:         time.Now().UTC(),
	}
	if scope := tenancy.ScopeFromContext(ctx); scope != nil {
		event.PrincipalID = scope.PrincipalID
	}
	s.sink.Record(ctx, event)
}
