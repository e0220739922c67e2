package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPatientRepository implements clinic.PatientRepository using GORM
type GormPatientRepository struct {
	db *gorm.DB
}

// NewGormPatientRepository creates a new GormPatientRepository
func NewGormPatientRepository(db *gorm.DB) *GormPatientRepository {
	return &GormPatientRepository{db: db}
}

// Create persists a new patient
func (r *GormPatientRepository) Create(ctx context.Context, patient *clinic.Patient) error {
	model := models.PatientModelFromDomain(patient)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an existing patient
func (r *GormPatientRepository) Update(ctx context.Context, patient *clinic.Patient) error {
	model := models.PatientModelFromDomain(patient)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a patient by its ID
func (r *GormPatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*clinic.Patient, error) {
	var model models.PatientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPsychologist finds a patient by ID scoped to its owning
// psychologist. A patient owned by someone else is indistinguishable
// from one that does not exist.
func (r *GormPatientRepository) FindByIDForPsychologist(ctx context.Context, id, psychologistID uuid.UUID) (*clinic.Patient, error) {
	var model models.PatientModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND psychologist_id = ?", id, psychologistID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a patient by email
func (r *GormPatientRepository) FindByEmail(ctx context.Context, email string) (*clinic.Patient, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.PatientModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPsychologist lists all patients owned by the psychologist
func (r *GormPatientRepository) FindByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*clinic.Patient, error) {
	var patientModels []models.PatientModel
	if err := r.db.WithContext(ctx).
		Where("psychologist_id = ?", psychologistID).
		Order("name ASC").
		Find(&patientModels).Error; err != nil {
		return nil, err
	}

	patients := make([]*clinic.Patient, len(patientModels))
	for i := range patientModels {
		patients[i] = patientModels[i].ToDomain()
	}
	return patients, nil
}

// ExistsByEmailForPsychologist reports whether the psychologist already
// has a patient with the email.
func (r *GormPatientRepository) ExistsByEmailForPsychologist(ctx context.Context, email string, psychologistID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PatientModel{}).
		Where("email = ? AND psychologist_id = ?", strings.ToLower(email), psychologistID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ clinic.PatientRepository = (*GormPatientRepository)(nil)
