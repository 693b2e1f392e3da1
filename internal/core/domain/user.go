package domain

import "time"

// Role is the access level of a back-office account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operador"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

// User models an account that can log into the back office.
// Users are never removed; Active=false marks a soft deletion.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"nome"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"tipo"`
	Active       bool       `json:"ativo"`
	CreatedAt    time.Time  `json:"data_criacao"`
	LastAccessAt *time.Time `json:"ultimo_acesso"`
}

// Summary returns the non-sensitive view handed back on login.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// UserSummary is what callers see of a user after authenticating.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Role  Role   `json:"tipo"`
}

// UserUpdate carries the mutable fields of a user. PasswordHash is only
// applied when non-empty.
type UserUpdate struct {
	Name         string
	Email        string
	Role         Role
	PasswordHash string
}

// Claims is the identity asserted by a signed token as of issuance.
type Claims struct {
	UserID    string    `json:"usuario_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"tipo"`
	ExpiresAt time.Time `json:"exp"`
}

// IsAdmin reports whether the token holder has the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
