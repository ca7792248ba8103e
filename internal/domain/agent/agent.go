package agent

import (
	"time"

	"github.com/google/uuid"

	"github.com/tourvista/service-tours/pkg/domain"
)

// Agent is a travel agent listed in the directory.
type Agent struct {
	id          uuid.UUID
	name        string
	phoneNumber string
	available   bool
	imageURL    string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewAgent creates an agent directory entry.
func NewAgent(name, phoneNumber string, available bool, imageURL string) (*Agent, error) {
	if name == "" {
		return nil, domain.NewValidationError("agent name is required")
	}

	now := time.Now().UTC()
	return &Agent{
		id:          uuid.New(),
		name:        name,
		phoneNumber: phoneNumber,
		available:   available,
		imageURL:    imageURL,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Agent from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, phoneNumber string, available bool, imageURL string, createdAt, updatedAt time.Time) *Agent {
	return &Agent{
		id:          id,
		name:        name,
		phoneNumber: phoneNumber,
		available:   available,
		imageURL:    imageURL,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (a *Agent) ID() uuid.UUID        { return a.id }
func (a *Agent) Name() string         { return a.name }
func (a *Agent) PhoneNumber() string  { return a.phoneNumber }
func (a *Agent) Available() bool      { return a.available }
func (a *Agent) ImageURL() string     { return a.imageURL }
func (a *Agent) CreatedAt() time.Time { return a.createdAt }
func (a *Agent) UpdatedAt() time.Time { return a.updatedAt }

// Update overwrites every editable field.
func (a *Agent) Update(name, phoneNumber string, available bool, imageURL string) error {
	if name == "" {
		return domain.NewValidationError("agent name is required")
	}
	a.name = name
	a.phoneNumber = phoneNumber
	a.available = available
	a.imageURL = imageURL
	a.updatedAt = time.Now().UTC()
	return nil
}
