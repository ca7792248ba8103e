package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/tourvista/service-tours/pkg/domain"
)

// Role is an access tag assigned to a user, gating route authorization.
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// User is the aggregate root for an account. A user holds exactly one role:
// the storage model used to be many-to-many but every write replaced the
// whole set, so the single-role form is the honest shape.
type User struct {
	id           uuid.UUID
	username     string
	passwordHash string
	role         Role
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a user with an already-hashed password and its single role.
func NewUser(username, passwordHash string, role Role) (*User, error) {
	if username == "" {
		return nil, domain.NewValidationError("username is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		username:     username,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, username, passwordHash string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// --- Behavior ---

// AssignRole replaces the user's role. Replace, never merge.
func (u *User) AssignRole(role Role) {
	u.role = role
	u.updatedAt = time.Now().UTC()
}
