package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account. Managers additionally have access to the
// back-office endpoints.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"fullName" db:"full_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	IsManager    bool      `json:"isManager" db:"is_manager"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// ShippingAddress represents one delivery address of a user. A user may keep
// several; at most one should be treated as the default, but the data layer
// does not enforce uniqueness of the flag.
type ShippingAddress struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"userId" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	PhoneNumber   string    `json:"phoneNumber" db:"phone_number"`
	AddressLine1  string    `json:"addressLine1" db:"address_line1"`
	AddressLine2  string    `json:"addressLine2" db:"address_line2"`
	City          string    `json:"city" db:"city"`
	StateProvince string    `json:"stateProvince" db:"state_province"`
	PostalCode    string    `json:"postalCode" db:"postal_code"`
	IsDefault     bool      `json:"isDefault" db:"is_default"`
}

// RegisterRequest represents the payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// LoginRequest represents the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the signed token and the authenticated user.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ProfileRequest represents the payload for editing the own profile.
type ProfileRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// AddressRequest represents the payload for creating or updating a shipping
// address.
type AddressRequest struct {
	Name          string `json:"name"`
	PhoneNumber   string `json:"phoneNumber"`
	AddressLine1  string `json:"addressLine1"`
	AddressLine2  string `json:"addressLine2"`
	City          string `json:"city"`
	StateProvince string `json:"stateProvince"`
	PostalCode    string `json:"postalCode"`
	IsDefault     bool   `json:"isDefault"`
}

// AdminUserRequest represents the manager payload for creating or updating
// a user account. Password is optional on update.
type AdminUserRequest struct {
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Password  string `json:"password,omitempty"`
	IsActive  bool   `json:"isActive"`
	IsManager bool   `json:"isManager"`
}
