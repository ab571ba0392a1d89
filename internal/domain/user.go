package domain

import "time"

// Role controls access to admin-only operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Address is a shipping address stored on the user record.
type Address struct {
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

// User is the domain model for customer accounts. PasswordHash never
// leaves the auth boundary; handlers serialize users through DTOs that
// exclude it.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	IsVerified   bool
	Addresses    []Address
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
