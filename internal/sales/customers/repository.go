package customers

import (
	"context"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian/internal/tenancy"
)

// Repository defines tenant-scoped persistence operations for customers.
type Repository interface {
	GetByID(ctx context.Context, sess *tenancy.Session, id, tenant uuid.UUID) (Customer, error)
	GetMulti(ctx context.Context, sess *tenancy.Session, tenant uuid.UUID, skip, limit int, filters map[string]any) ([]Customer, error)
	Create(ctx context.Context, sess *tenancy.Session, customer Customer, tenant uuid.UUID) (Customer, error)
	Update(ctx context.Context, sess *tenancy.Session, id uuid.UUID, patch map[string]any, tenant uuid.UUID) (Customer, error)
	Delete(ctx context.Context, sess *tenancy.Session, id, tenant uuid.UUID) (bool, error)
}

type repository struct {
	store *tenancy.Store[Customer]
}

// NewRepository constructs the tenant-scoped customer repository.
func NewRepository() Repository {
	return &repository{store: tenancy.NewStore(schema())}
}

func (r *repository) GetByID(ctx context.Context, sess *tenancy.Session, id, tenant uuid.UUID) (Customer, error) {
	return r.store.GetByID(ctx, sess, id, tenant)
}

func (r *repository) GetMulti(ctx context.Context, sess *tenancy.Session, tenant uuid.UUID, skip, limit int, filters map[string]any) ([]Customer, error) {
	return r.store.GetMulti(ctx, sess, tenant, skip, limit, filters)
}

func (r *repository) Create(ctx context.Context, sess *tenancy.Session, customer Customer, tenant uuid.UUID) (Customer, error) {
	return r.store.Create(ctx, sess, customer, tenant)
}

func (r *repository) Update(ctx context.Context, sess *tenancy.Session, id uuid.UUID, patch map[string]any, tenant uuid.UUID) (Customer, error) {
	return r.store.Update(ctx, sess, id, patch, tenant)
}

func (r *repository) Delete(ctx context.Context, sess *tenancy.Session, id, tenant uuid.UUID) (bool, error) {
	return r.store.Delete(ctx, sess, id, tenant)
}
