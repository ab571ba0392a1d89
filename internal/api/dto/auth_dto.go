package dto

import "github.com/spec-kit/shop-service/internal/domain"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest payload for reset link requests.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload carrying the new password; the token
// travels in the URL.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// UpdatePasswordRequest payload for authenticated password changes.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse is the public view of an account. The password hash
// never appears here.
type UserResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone,omitempty"`
	Role       domain.Role      `json:"role"`
	IsVerified bool             `json:"is_verified"`
	Addresses  []domain.Address `json:"addresses,omitempty"`
}

// NewUserResponse maps a domain user onto its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		Addresses:  user.Addresses,
	}
}
