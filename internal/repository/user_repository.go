package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDomain "github.com/tourvista/service-tours/internal/domain/user"
	"github.com/tourvista/service-tours/pkg/domain"
)

// RoleModel is the GORM model for the roles table.
type RoleModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"uniqueIndex;not null;size:50"`
}

// TableName returns the table name for the GORM model.
func (RoleModel) TableName() string {
	return "roles"
}

// UserModel is the GORM model for the users table. A user references
// exactly one role.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string    `gorm:"not null;size:100"`
	RoleID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Role         RoleModel `gorm:"foreignKey:RoleID"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (UserModel) TableName() string {
	return "users"
}

// GormUserRepository is the GORM-based implementation of the user Repository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by ID.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Preload("Role").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", id.String())
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return toDomainUser(&model), nil
}

// FindByUsername retrieves a user by unique username.
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Preload("Role").Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", username)
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return toDomainUser(&model), nil
}

// ExistsByUsername reports whether the username is taken.
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// FindAll retrieves all users ordered by username.
func (r *GormUserRepository) FindAll(ctx context.Context) ([]*userDomain.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Preload("Role").Order("username ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*userDomain.User, len(models))
	for i := range models {
		users[i] = toDomainUser(&models[i])
	}
	return users, nil
}

// Save persists a new user. A concurrent registration of the same username
// surfaces as a duplicate error via the unique index.
func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	if err := r.db.WithContext(ctx).Omit("Role").Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewDuplicateError("User", u.Username())
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Update persists role replacement and other mutable fields.
func (r *GormUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"password_hash": model.PasswordHash,
			"role_id":       model.RoleID,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	return nil
}

// Delete removes a user, failing with NotFound on a missing id.
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User", id.String())
	}
	return nil
}

// Count returns the total user count.
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// CountByRole returns user counts grouped by role name.
func (r *GormUserRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	type roleCount struct {
		Name  string
		Count int64
	}
	var results []roleCount
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Select("roles.name AS name, COUNT(users.id) AS count").
		Joins("JOIN roles ON roles.id = users.role_id").
		Group("roles.name").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}

	counts := make(map[string]int64, len(results))
	for _, rc := range results {
		counts[rc.Name] = rc.Count
	}
	return counts, nil
}

// GormRoleRepository is the GORM-based implementation of the role repository.
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository.
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByName retrieves a role by its unique name.
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*userDomain.Role, error) {
	var model RoleModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Role", name)
		}
		return nil, fmt.Errorf("failed to find role by name: %w", err)
	}
	return &userDomain.Role{ID: model.ID, Name: model.Name}, nil
}

// FindAll retrieves all roles.
func (r *GormRoleRepository) FindAll(ctx context.Context) ([]*userDomain.Role, error) {
	var models []RoleModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	roles := make([]*userDomain.Role, len(models))
	for i, m := range models {
		roles[i] = &userDomain.Role{ID: m.ID, Name: m.Name}
	}
	return roles, nil
}

// --- Conversion helpers ---

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		PasswordHash: u.PasswordHash(),
		RoleID:       u.Role().ID,
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func toDomainUser(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(
		m.ID,
		m.Username,
		m.PasswordHash,
		userDomain.Role{ID: m.Role.ID, Name: m.Role.Name},
		m.CreatedAt,
		m.UpdatedAt,
	)
}
