package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meridian-erp/meridian/internal/tenancy"
)

// Resource is the permission resource name guarding product routes.
const Resource = "produtos"

// Product is a tenant-scoped catalog item.
type Product struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Cost      float64   `json:"cost"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func schema() tenancy.Schema[Product] {
	return tenancy.Schema[Product]{
		Table:   "products",
		Columns: []string{"code", "name", "price", "cost", "is_active", "created_at", "updated_at"},
		ScanRow: func(row pgx.Row) (Product, error) {
			var p Product
			err := row.Scan(&p.ID, &p.TenantID, &p.Code, &p.Name, &p.Price, &p.Cost, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
			return p, err
		},
		Values: func(p Product) []any {
			return []any{p.Code, p.Name, p.Price, p.Cost, p.IsActive, p.CreatedAt, p.UpdatedAt}
		},
	}
}
