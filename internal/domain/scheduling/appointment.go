package scheduling

import (
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status is the lifecycle state of an appointment
type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
	StatusCanceled    Status = "canceled"
	StatusRescheduled Status = "rescheduled"
)

// DefaultDurationMinutes is the session length used when none is supplied
const DefaultDurationMinutes = 50

// DateLayout and TimeLayout are the wire formats for appointment slots
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// allowedTransitions is the appointment state graph. Cancel is handled
// separately and is allowed from any state.
var allowedTransitions = map[Status][]Status{
	StatusScheduled:   {StatusCompleted, StatusCanceled, StatusRescheduled},
	StatusRescheduled: {StatusCompleted, StatusCanceled},
}

// Appointment is a booked session between a psychologist and a patient.
// Canceled appointments are kept; the slot they held becomes free again.
type Appointment struct {
	shared.BaseEntity
	PatientID      uuid.UUID
	PsychologistID uuid.UUID
	Date           string // YYYY-MM-DD
	Time           string // HH:MM slot label
	Status         Status
	Description    string
	Duration       int // minutes
	Notes          string
	FullReport     string
}

// NewAppointment creates a scheduled appointment
func NewAppointment(patientID, psychologistID uuid.UUID, date, timeLabel, description string, duration int, notes string) (*Appointment, error) {
	if patientID == uuid.Nil || psychologistID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Patient and psychologist are required")
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(TimeLayout, timeLabel); err != nil {
		return nil, shared.NewDomainError("INVALID_TIME", "Time must be in HH:MM format")
	}
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}

	return &Appointment{
		BaseEntity:     shared.NewBaseEntity(),
		PatientID:      patientID,
		PsychologistID: psychologistID,
		Date:           date,
		Time:           timeLabel,
		Status:         StatusScheduled,
		Description:    description,
		Duration:       duration,
		Notes:          notes,
	}, nil
}

// ChangeStatus moves the appointment along the state graph:
// scheduled -> {completed, canceled, rescheduled}, rescheduled -> {completed, canceled}.
// Completed and canceled are terminal here.
func (a *Appointment) ChangeStatus(next Status) error {
	switch next {
	case StatusScheduled, StatusCompleted, StatusCanceled, StatusRescheduled:
	default:
		return shared.NewDomainError("INVALID_INPUT", "Unknown appointment status")
	}
	for _, allowed := range allowedTransitions[a.Status] {
		if allowed == next {
			a.Status = next
			a.Touch()
			return nil
		}
	}
	return shared.NewDomainError("INVALID_STATE", "Status transition not allowed")
}

// Cancel marks the appointment canceled regardless of its current state.
// The record is never deleted.
func (a *Appointment) Cancel() {
	a.Status = StatusCanceled
	a.Touch()
}

// Reschedule moves the appointment to a new slot and flags it rescheduled
func (a *Appointment) Reschedule(date, timeLabel string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(TimeLayout, timeLabel); err != nil {
		return shared.NewDomainError("INVALID_TIME", "Time must be in HH:MM format")
	}
	if err := a.ChangeStatus(StatusRescheduled); err != nil {
		return err
	}
	a.Date = date
	a.Time = timeLabel
	return nil
}

// IsActive reports whether the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCanceled
}
