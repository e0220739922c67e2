package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/intake"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRequestRepository implements intake.RequestRepository using GORM
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Create persists a new intake request
func (r *GormRequestRepository) Create(ctx context.Context, request *intake.Request) error {
	model := models.RequestModelFromDomain(request)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing request
func (r *GormRequestRepository) Update(ctx context.Context, request *intake.Request) error {
	model := models.RequestModelFromDomain(request)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByIDForPsychologist finds a request by ID scoped to the target
// psychologist. Requests addressed to another psychologist look absent.
func (r *GormRequestRepository) FindByIDForPsychologist(ctx context.Context, id, psychologistID uuid.UUID) (*intake.Request, error) {
	var model models.RequestModel
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

// FindByPsychologist lists requests addressed to the psychologist,
// newest first.
func (r *GormRequestRepository) FindByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*intake.Request, error) {
	var requestModels []models.RequestModel
	if err := r.db.WithContext(ctx).
		Where("psychologist_id = ?", psychologistID).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*intake.Request, len(requestModels))
	for i := range requestModels {
		requests[i] = requestModels[i].ToDomain()
	}
	return requests, nil
}

// FindByEmail lists requests submitted with the patient email, newest first
func (r *GormRequestRepository) FindByEmail(ctx context.Context, email string) ([]*intake.Request, error) {
	var requestModels []models.RequestModel
	if err := r.db.WithContext(ctx).
		Where("patient_email = ?", strings.ToLower(email)).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*intake.Request, len(requestModels))
	for i := range requestModels {
		requests[i] = requestModels[i].ToDomain()
	}
	return requests, nil
}

// HasPending reports whether the email already has a pending request for
// the psychologist.
func (r *GormRequestRepository) HasPending(ctx context.Context, email string, psychologistID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RequestModel{}).
		Where("patient_email = ? AND psychologist_id = ? AND status = ?",
			strings.ToLower(email), psychologistID, intake.StatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ intake.RequestRepository = (*GormRequestRepository)(nil)
