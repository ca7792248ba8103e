package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	agentDomain "github.com/tourvista/service-tours/internal/domain/agent"
)

// AgentRequest holds the data for creating or fully overwriting an agent.
type AgentRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Available   bool   `json:"available"`
	ImageURL    string `json:"image_url"`
}

// AgentDTO is the response representation of an agent.
type AgentDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Available   bool      `json:"available"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AgentService is the application service for the agent directory.
type AgentService struct {
	agents agentDomain.Repository
	logger *zap.Logger
}

// NewAgentService creates a new AgentService.
func NewAgentService(agents agentDomain.Repository, logger *zap.Logger) *AgentService {
	return &AgentService{agents: agents, logger: logger}
}

// CreateAgent adds an agent to the directory.
func (s *AgentService) CreateAgent(ctx context.Context, req AgentRequest) (*AgentDTO, error) {
	a, err := agentDomain.NewAgent(req.Name, req.PhoneNumber, req.Available, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.agents.Save(ctx, a); err != nil {
		return nil, err
	}

	result := toAgentDTO(a)
	return &result, nil
}

// UpdateAgent overwrites every editable field of an existing agent.
func (s *AgentService) UpdateAgent(ctx context.Context, id uuid.UUID, req AgentRequest) (*AgentDTO, error) {
	a, err := s.agents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := a.Update(req.Name, req.PhoneNumber, req.Available, req.ImageURL); err != nil {
		return nil, err
	}

	if err := s.agents.Update(ctx, a); err != nil {
		return nil, err
	}

	result := toAgentDTO(a)
	return &result, nil
}

// GetAgent retrieves a single agent by ID.
func (s *AgentService) GetAgent(ctx context.Context, id uuid.UUID) (*AgentDTO, error) {
	a, err := s.agents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAgentDTO(a)
	return &result, nil
}

// ListAgents retrieves the whole directory.
func (s *AgentService) ListAgents(ctx context.Context) ([]AgentDTO, error) {
	agents, err := s.agents.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]AgentDTO, len(agents))
	for i, a := range agents {
		dtos[i] = toAgentDTO(a)
	}
	return dtos, nil
}

// DeleteAgent removes an agent, failing with NotFound on a missing id.
func (s *AgentService) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	return s.agents.Delete(ctx, id)
}

func toAgentDTO(a *agentDomain.Agent) AgentDTO {
	return AgentDTO{
		ID:          a.ID(),
		Name:        a.Name(),
		PhoneNumber: a.PhoneNumber(),
		Available:   a.Available(),
		ImageURL:    a.ImageURL(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}
