package customers

// CreateRequest is the payload for creating a customer.
type CreateRequest struct {
	Code     string `json:"code" validate:"required,max=64"`
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	IsActive *bool  `json:"is_active"`
}

func (r CreateRequest) customer() Customer {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return Customer{
		Code:     r.Code,
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		IsActive: active,
	}
}

// UpdateRequest is the payload for a partial customer update. Absent
// fields leave the stored value untouched.
type UpdateRequest struct {
	Code     *string `json:"code" validate:"omitempty,max=64"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	IsActive *bool   `json:"is_active"`
}

func (r UpdateRequest) patch() map[string]any {
	patch := map[string]any{}
	if r.Code != nil {
		patch["code"] = *r.Code
	}
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.Email != nil {
		patch["email"] = *r.Email
	}
	if r.Phone != nil {
		patch["phone"] = *r.Phone
	}
	if r.IsActive != nil {
		patch["is_active"] = *r.IsActive
	}
	return patch
}
