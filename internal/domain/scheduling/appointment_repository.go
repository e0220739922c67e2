package scheduling

import (
	"context"

	"github.com/google/uuid"
)

// AppointmentRepository persists appointments. Create must fail with
// shared.ErrSlotConflict when an active appointment already holds the
// same (psychologist, date, time) slot; the storage layer enforces this
// atomically so concurrent bookings cannot both succeed.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *Appointment) error
	Update(ctx context.Context, appointment *Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	FindByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*Appointment, error)
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)
	FindByPatientForPsychologist(ctx context.Context, patientID, psychologistID uuid.UUID) ([]*Appointment, error)
	// TakenSlots returns the time labels of active (non-canceled)
	// appointments for the psychologist on the given date.
	TakenSlots(ctx context.Context, psychologistID uuid.UUID, date string) ([]string, error)
	// HasAppointmentBetween reports whether the patient and psychologist
	// share any appointment, canceled ones included. Used by the
	// messaging gate.
	HasAppointmentBetween(ctx context.Context, patientUserID, psychologistID uuid.UUID) (bool, error)
}
