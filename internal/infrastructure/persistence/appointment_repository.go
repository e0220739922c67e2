package persistence

import (
	"context"
	"errors"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/scheduling"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAppointmentRepository implements scheduling.AppointmentRepository
// using GORM. Slot exclusivity rests on the partial unique index over
// (psychologist_id, date, time) for non-canceled rows; the database is
// the arbiter when two bookings race for the same slot.
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewGormAppointmentRepository creates a new GormAppointmentRepository
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// Create persists a new appointment, translating a unique violation on
// the slot index into shared.ErrSlotConflict.
func (r *GormAppointmentRepository) Create(ctx context.Context, appointment *scheduling.Appointment) error {
	model := models.AppointmentModelFromDomain(appointment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrSlotConflict
		}
		return err
	}
	return nil
}

// Update persists changes to an existing appointment
func (r *GormAppointmentRepository) Update(ctx context.Context, appointment *scheduling.Appointment) error {
	model := models.AppointmentModelFromDomain(appointment)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrSlotConflict
		}
		return err
	}
	return nil
}

// FindByID finds an appointment by its ID
func (r *GormAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	var model models.AppointmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPsychologist lists all appointments of the psychologist
func (r *GormAppointmentRepository) FindByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*scheduling.Appointment, error) {
	return r.findAll(ctx, "psychologist_id = ?", psychologistID)
}

// FindByPatient lists all appointments of the patient
func (r *GormAppointmentRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*scheduling.Appointment, error) {
	return r.findAll(ctx, "patient_id = ?", patientID)
}

// FindByPatientForPsychologist lists the appointments a psychologist has
// with one of their patients.
func (r *GormAppointmentRepository) FindByPatientForPsychologist(ctx context.Context, patientID, psychologistID uuid.UUID) ([]*scheduling.Appointment, error) {
	return r.findAll(ctx, "patient_id = ? AND psychologist_id = ?", patientID, psychologistID)
}

func (r *GormAppointmentRepository) findAll(ctx context.Context, query string, args ...any) ([]*scheduling.Appointment, error) {
	var appointmentModels []models.AppointmentModel
	if err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("date ASC, time ASC").
		Find(&appointmentModels).Error; err != nil {
		return nil, err
	}

	appointments := make([]*scheduling.Appointment, len(appointmentModels))
	for i := range appointmentModels {
		appointments[i] = appointmentModels[i].ToDomain()
	}
	return appointments, nil
}

// TakenSlots returns the slot labels held by active appointments for the
// psychologist on the date.
func (r *GormAppointmentRepository) TakenSlots(ctx context.Context, psychologistID uuid.UUID, date string) ([]string, error) {
	var slots []string
	err := r.db.WithContext(ctx).Model(&models.AppointmentModel{}).
		Where("psychologist_id = ? AND date = ? AND status <> ?",
			psychologistID, date, scheduling.StatusCanceled).
		Order("time ASC").
		Pluck("time", &slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// HasAppointmentBetween reports whether the patient and psychologist
// share any appointment, whatever its status. A canceled session still
// counts: the clinical relationship outlives the booking. PatientID on
// appointments references the clinic patient record, which carries the
// patient's email; the join resolves the patient's user account by
// email.
func (r *GormAppointmentRepository) HasAppointmentBetween(ctx context.Context, patientUserID, psychologistID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AppointmentModel{}).
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins("JOIN users ON users.email = patients.email").
		Where("users.id = ? AND appointments.psychologist_id = ?",
			patientUserID, psychologistID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ scheduling.AppointmentRepository = (*GormAppointmentRepository)(nil)
