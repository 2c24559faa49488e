package products

// CreateRequest is the payload for creating a product.
type CreateRequest struct {
	Code     string  `json:"code" validate:"required,max=64"`
	Name     string  `json:"name" validate:"required,max=255"`
	Price    float64 `json:"price" validate:"gte=0"`
	Cost     float64 `json:"cost" validate:"gte=0"`
	IsActive *bool   `json:"is_active"`
}

func (r CreateRequest) product() Product {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return Product{
		Code:     r.Code,
		Name:     r.Name,
		Price:    r.Price,
		Cost:     r.Cost,
		IsActive: active,
	}
}

// UpdateRequest is the payload for a partial product update. Absent fields
// leave the stored value untouched.
type UpdateRequest struct {
	Code     *string  `json:"code" validate:"omitempty,max=64"`
	Name     *string  `json:"name" validate:"omitempty,max=255"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Cost     *float64 `json:"cost" validate:"omitempty,gte=0"`
	IsActive *bool    `json:"is_active"`
}

func (r UpdateRequest) patch() map[string]any {
	patch := map[string]any{}
	if r.Code != nil {
		patch["code"] = *r.Code
	}
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.Price != nil {
		patch["price"] = *r.Price
	}
	if r.Cost != nil {
		patch["cost"] = *r.Cost
	}
	if r.IsActive != nil {
		patch["is_active"] = *r.IsActive
	}
	return patch
}
