package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	userDomain "github.com/tourvista/service-tours/internal/domain/user"
	"github.com/tourvista/service-tours/internal/events"
	"github.com/tourvista/service-tours/pkg/auth"
	"github.com/tourvista/service-tours/pkg/domain"
	"github.com/tourvista/service-tours/pkg/kafka"
)

// RegisterRequest holds the data for creating an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// LoginRequest holds the credentials for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token and the user identity.
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

// UserDTO is the response representation of a user. The password hash never
// leaves the service layer.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is the application service for account use cases.
type UserService struct {
	users    userDomain.Repository
	roles    userDomain.RoleRepository
	jwt      *auth.JWTManager
	producer EventPublisher
	logger   *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	users userDomain.Repository,
	roles userDomain.RoleRepository,
	jwt *auth.JWTManager,
	producer EventPublisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		users:    users,
		roles:    roles,
		jwt:      jwt,
		producer: producer,
		logger:   logger,
	}
}

// Register creates a new account with a bcrypt-hashed password and exactly
// one role. An unspecified role defaults to USER.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*UserDTO, error) {
	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewDuplicateError("User", req.Username)
	}

	roleName := req.Role
	if roleName == "" {
		roleName = auth.RoleUser
	}
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u, err := userDomain.NewUser(req.Username, hash, *role)
	if err != nil {
		return nil, err
	}

	// The unique index backs up the existence check against races.
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicUserEvents, events.UserRegistered, events.UserRegisteredEvent{
		UserID:     u.ID(),
		Username:   u.Username(),
		Role:       u.Role().Name,
		OccurredAt: time.Now().UTC(),
	})

	result := toUserDTO(u)
	return &result, nil
}

// Login verifies the credentials and issues an access token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if !auth.VerifyPassword(u.PasswordHash(), req.Password) {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.jwt.GenerateAccessToken(u.ID(), u.Username(), u.Role().Name)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		User:        toUserDTO(u),
	}, nil
}

// UpdateRole replaces the user's role with the named one. The resulting
// role set is exactly the new role.
func (s *UserService) UpdateRole(ctx context.Context, userID uuid.UUID, roleName string) (*UserDTO, error) {
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.AssignRole(*role)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	result := toUserDTO(u)
	return &result, nil
}

// Delete removes an account, failing with NotFound on a missing id.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.users.Delete(ctx, userID)
}

// ListUsers retrieves all accounts (admin).
func (s *UserService) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	return dtos, nil
}

// GetByUsername retrieves a single account by its unique username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*UserDTO, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// --- Helpers ---

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Username:  u.Username(),
		Role:      u.Role().Name,
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func (s *UserService) publishEvent(ctx context.Context, topic, eventType string, data any) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
