package dto

import "github.com/spec-kit/shop-service/internal/domain"

// UpdateProfileRequest carries the fields a user may change on their
// own profile. Nil pointers leave the current value untouched.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// UpsertAddressRequest adds or replaces a shipping address.
type UpsertAddressRequest struct {
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

func (r UpsertAddressRequest) ToDomain() domain.Address {
	return domain.Address{
		Street:    r.Street,
		City:      r.City,
		State:     r.State,
		ZipCode:   r.ZipCode,
		Country:   r.Country,
		IsDefault: r.IsDefault,
	}
}

// UpdateRoleRequest changes an account's role. Admin only.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UserListResponse is the paginated admin user listing.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
