package rbac

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence operations for permission grants. Grants
// are read-only from this package's perspective; their lifecycle is
// managed by back-office tooling.
type Repository interface {
	GrantsForPrincipal(ctx context.Context, principalID uuid.UUID) ([]Grant, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// GrantsForPrincipal returns the principal's grants ordered by resource.
func (r *PGRepository) GrantsForPrincipal(ctx context.Context, principalID uuid.UUID) ([]Grant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT principal_id, resource, actions, description, updated_at
		   FROM permission_grants
		  WHERE principal_id = $1
		  ORDER BY resource`, principalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		var g Grant
		if err := rows.Scan(&g.PrincipalID, &g.Resource, &g.Actions, &g.Description, &g.UpdatedAt); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
