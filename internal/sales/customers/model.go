package customers

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meridian-erp/meridian/internal/tenancy"
)

// Resource is the permission resource name guarding customer routes.
const Resource = "clientes"

// Customer is a tenant-scoped trading partner.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func schema() tenancy.Schema[Customer] {
	return tenancy.Schema[Customer]{
		Table:   "customers",
		Columns: []string{"code", "name", "email", "phone", "is_active", "created_at", "updated_at"},
		ScanRow: func(row pgx.Row) (Customer, error) {
			var c Customer
			err := row.Scan(&c.ID, &c.TenantID, &c.Code, &c.Name, &c.Email, &c.Phone, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
			return c, err
		},
		Values: func(c Customer) []any {
			return []any{c.Code, c.Name, c.Email, c.Phone, c.IsActive, c.CreatedAt, c.UpdatedAt}
		},
	}
}
