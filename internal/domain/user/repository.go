package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for users.
type Repository interface {
	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername retrieves a user by unique username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// ExistsByUsername reports whether the username is taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// FindAll retrieves all users.
	FindAll(ctx context.Context) ([]*User, error)

	// Save persists a new user.
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user (role replacement).
	Update(ctx context.Context, u *User) error

	// Delete removes a user, failing with NotFound on a missing id.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total user count.
	Count(ctx context.Context) (int64, error)

	// CountByRole returns user counts grouped by role name.
	CountByRole(ctx context.Context) (map[string]int64, error)
}

// RoleRepository defines the persistence contract for roles.
type RoleRepository interface {
	// FindByName retrieves a role by its unique name.
	FindByName(ctx context.Context, name string) (*Role, error)

	// FindAll retrieves all roles.
	FindAll(ctx context.Context) ([]*Role, error)
}
