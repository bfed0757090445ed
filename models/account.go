package models

import "strings"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

// Account is one record of the account registry. Email is the normalized
// registry key. Password is kept in plaintext; this storefront has no real
// authentication backend.
type Account struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
	Status   Status `json:"status,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// IsAdmin compares the role case-insensitively, persisted records may carry "Admin".
func (a Account) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(string(a.Role)), string(RoleAdmin))
}

// NormalizeEmail trims and lower-cases an email so it can be used as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
