package clinic

import (
	"context"

	"github.com/google/uuid"
)

// PatientRepository defines the interface for patient record persistence
type PatientRepository interface {
	// Create creates a new patient record
	Create(ctx context.Context, patient *Patient) error

	// Update updates an existing patient record
	Update(ctx context.Context, patient *Patient) error

	// FindByID finds a patient by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// FindByIDForPsychologist finds a patient owned by the given psychologist
	FindByIDForPsychologist(ctx context.Context, id, psychologistID uuid.UUID) (*Patient, error)

	// FindByEmail finds a patient by contact email
	FindByEmail(ctx context.Context, email string) (*Patient, error)

	// FindByPsychologist lists all patients owned by the given psychologist
	FindByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*Patient, error)

	// ExistsByEmailForPsychologist checks for an existing record with the same
	// email under the same owner
	ExistsByEmailForPsychologist(ctx context.Context, email string, psychologistID uuid.UUID) (bool, error)
}
