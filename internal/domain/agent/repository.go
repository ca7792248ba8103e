package agent

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for the agent directory.
type Repository interface {
	// FindByID retrieves an agent by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Agent, error)

	// FindAll retrieves all agents.
	FindAll(ctx context.Context) ([]*Agent, error)

	// Save persists a new agent.
	Save(ctx context.Context, a *Agent) error

	// Update persists changes to an existing agent.
	Update(ctx context.Context, a *Agent) error

	// Delete removes an agent, failing with NotFound on a missing id.
	Delete(ctx context.Context, id uuid.UUID) error
}
