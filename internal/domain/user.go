package domain

import (
	"strings"
	"time"
)

// Role granted to freshly registered users unless one is supplied.
const DefaultRole = "User"

// AdminRole grants deletion and bulk-discount rights.
const AdminRole = "Admin"

// User is an authenticated identity. The password is only ever held as
// an opaque hash.
type User struct {
	id           int64
	username     string
	email        string
	passwordHash string
	role         string
	createdAt    time.Time
	lastLoginAt  *time.Time
}

// NewUser creates a user with an already-hashed password. Uniqueness of
// username and email is checked by the service against the repository.
func NewUser(username, email, passwordHash, role string) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, NewValidationError("username cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		return nil, NewValidationError("email cannot be empty")
	}
	if role == "" {
		role = DefaultRole
	}
	return &User{
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    time.Now().UTC(),
	}, nil
}

// RehydrateUser restores a user from storage.
func RehydrateUser(id int64, username, email, passwordHash, role string, createdAt time.Time, lastLoginAt *time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		lastLoginAt:  lastLoginAt,
	}
}

// AssignID records the identity generated by storage.
func (u *User) AssignID(id int64) { u.id = id }

func (u *User) ID() int64               { return u.id }
func (u *User) Username() string        { return u.username }
func (u *User) Email() string           { return u.email }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) Role() string            { return u.role }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) LastLoginAt() *time.Time { return u.lastLoginAt }

// RecordLogin stamps the last successful authentication.
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.lastLoginAt = &now
}

// ChangePasswordHash replaces the stored hash, keeping identity intact.
func (u *User) ChangePasswordHash(hash string) {
	u.passwordHash = hash
}

// IsAdmin reports whether the role grants elevated authorization.
func (u *User) IsAdmin() bool { return strings.EqualFold(u.role, AdminRole) }
