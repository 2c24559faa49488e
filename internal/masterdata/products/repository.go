package products

import (
	"context"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian/internal/tenancy"
)

// Repository defines persistence operations for products. Every operation
// is tenant-scoped.
type Repository interface {
	GetByID(ctx context.Context, sess *tenancy.Session, id, tenant uuid.UUID) (Product, error)
	GetMulti(ctx context.Context, sess *tenancy.Session, tenant uuid.UUID, skip, limit int, filters map[string]any) ([]Product, error)
	Create(ctx context.Context, sess *tenancy.Session, product Product, tenant uuid.UUID) (Product, error)
	Update(ctx context.Context, sess *tenancy.Session, id uuid.UUID, patch map[string]any, tenant uuid.UUID) (Product, error)
	Delete(ctx context.Context, sess *tenancy.Session, id, tenant uuid.UUID) (bool, error)
}

type repository struct {
	store *tenancy.Store[Product]
}

// NewRepository constructs the tenant-scoped product repository.
func NewRepository() Repository {
	return &repository{store: tenancy.NewStore(schema())}
}

func (r *repository) GetByID(ctx context.Context, sess *tenancy.Session, id, tenant uuid.UUID) (Product, error) {
	return r.store.GetByID(ctx, sess, id, tenant)
}

func (r *repository) GetMulti(ctx context.Context, sess *tenancy.Session, tenant uuid.UUID, skip, limit int, filters map[string]any) ([]Product, error) {
	return r.store.GetMulti(ctx, sess, tenant, skip, limit, filters)
}

func (r *repository) Create(ctx context.Context, sess *tenancy.Session, product Product, tenant uuid.UUID) (Product, error) {
	return r.store.Create(ctx, sess, product, tenant)
}

func (r *repository) Update(ctx context.Context, sess *tenancy.Session, id uuid.UUID, patch map[string]any, tenant uuid.UUID) (Product, error) {
	return r.store.Update(ctx, sess, id, patch, tenant)
}

func (r *repository) Delete(ctx context.Context, sess *tenancy.Session, id, tenant uuid.UUID) (bool, error) {
	return r.store.Delete(ctx, sess, id, tenant)
}
