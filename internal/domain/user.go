package domain

import "time"

// Role is the closed set of access levels a user can hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User is the persisted identity record. RefreshToken holds the single
// currently-valid refresh token; overwriting it revokes the previous one.
type User struct {
	ID           int64     `json:"id"         db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name"  db:"last_name"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password"` // never serialized to JSON
	Role         Role      `json:"role"       db:"role"`
	RefreshToken *string   `json:"-"          db:"refresh_token"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// AuthenticatedUser is the resolved identity attached to a request after the
// bearer token has been verified and the user looked up.
type AuthenticatedUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}
