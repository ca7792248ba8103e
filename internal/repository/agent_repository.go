package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	agentDomain "github.com/tourvista/service-tours/internal/domain/agent"
	"github.com/tourvista/service-tours/pkg/domain"
)

// AgentModel is the GORM model for the agents table.
type AgentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;size:255"`
	PhoneNumber string    `gorm:"size:50"`
	Available   bool      `gorm:"not null;default:true"`
	ImageURL    string    `gorm:"size:512"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (AgentModel) TableName() string {
	return "agents"
}

// GormAgentRepository is the GORM-based implementation of the agent
// Repository.
type GormAgentRepository struct {
	db *gorm.DB
}

// NewGormAgentRepository creates a new GormAgentRepository.
func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// FindByID retrieves an agent by ID.
func (r *GormAgentRepository) FindByID(ctx context.Context, id uuid.UUID) (*agentDomain.Agent, error) {
	var model AgentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Agent", id.String())
		}
		return nil, fmt.Errorf("failed to find agent by ID: %w", err)
	}
	return toDomainAgent(&model), nil
}

// FindAll retrieves all agents ordered by name.
func (r *GormAgentRepository) FindAll(ctx context.Context) ([]*agentDomain.Agent, error) {
	var models []AgentModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	agents := make([]*agentDomain.Agent, len(models))
	for i := range models {
		agents[i] = toDomainAgent(&models[i])
	}
	return agents, nil
}

// Save persists a new agent.
func (r *GormAgentRepository) Save(ctx context.Context, a *agentDomain.Agent) error {
	if err := r.db.WithContext(ctx).Create(toAgentModel(a)).Error; err != nil {
		return fmt.Errorf("failed to save agent: %w", err)
	}
	return nil
}

// Update persists changes to an existing agent.
func (r *GormAgentRepository) Update(ctx context.Context, a *agentDomain.Agent) error {
	model := toAgentModel(a)
	result := r.db.WithContext(ctx).
		Model(&AgentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":         model.Name,
			"phone_number": model.PhoneNumber,
			"available":    model.Available,
			"image_url":    model.ImageURL,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update agent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Agent", a.ID().String())
	}
	return nil
}

// Delete removes an agent, failing with NotFound on a missing id.
func (r *GormAgentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AgentModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete agent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Agent", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toAgentModel(a *agentDomain.Agent) *AgentModel {
	return &AgentModel{
		ID:          a.ID(),
		Name:        a.Name(),
		PhoneNumber: a.PhoneNumber(),
		Available:   a.Available(),
		ImageURL:    a.ImageURL(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func toDomainAgent(m *AgentModel) *agentDomain.Agent {
	return agentDomain.Reconstruct(m.ID, m.Name, m.PhoneNumber, m.Available, m.ImageURL, m.CreatedAt, m.UpdatedAt)
}
