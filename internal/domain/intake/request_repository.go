package intake

import (
	"context"

	"github.com/google/uuid"
)

// RequestRepository defines the interface for intake request persistence
type RequestRepository interface {
	// Create creates a new request
	Create(ctx context.Context, request *Request) error

	// Update updates an existing request
	Update(ctx context.Context, request *Request) error

	// FindByIDForPsychologist finds a request targeting the given psychologist
	FindByIDForPsychologist(ctx context.Context, id, psychologistID uuid.UUID) (*Request, error)

	// FindByPsychologist lists all requests targeting the given psychologist
	FindByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*Request, error)

	// FindByEmail lists all requests submitted with the given requester email
	FindByEmail(ctx context.Context, email string) ([]*Request, error)

	// HasPending checks whether a pending request from the same requester
	// email to the same psychologist already exists
	HasPending(ctx context.Context, email string, psychologistID uuid.UUID) (bool, error)
}
