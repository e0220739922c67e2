package scheduling

import (
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/scheduling"
)

// CreateAppointmentRequest represents a booking request filed by a
// psychologist for one of their patients.
type CreateAppointmentRequest struct {
	PatientID   string `json:"patient_id" binding:"omitempty,uuid"`
	Date        string `json:"date" binding:"required,dateonly"`
	Time        string `json:"time" binding:"required,timeslot"`
	Description string `json:"description" binding:"max=2000"`
	Duration    int    `json:"duration" binding:"omitempty,min=1,max=480"`
	Notes       string `json:"notes" binding:"max=2000"`
}

// UpdateAppointmentRequest carries a partial update. Pointer fields
// distinguish "not sent" from "set to empty"; unknown JSON fields are
// rejected at the handler.
type UpdateAppointmentRequest struct {
	Status      *string `json:"status" binding:"omitempty,oneof=scheduled completed canceled rescheduled"`
	Date        *string `json:"date" binding:"omitempty,dateonly"`
	Time        *string `json:"time" binding:"omitempty,timeslot"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Duration    *int    `json:"duration" binding:"omitempty,min=1,max=480"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
	FullReport  *string `json:"full_report"`
}

// AppointmentResponse is the API representation of an appointment
type AppointmentResponse struct {
	ID             string    `json:"id"`
	PatientID      string    `json:"patient_id"`
	PsychologistID string    `json:"psychologist_id"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Status         string    `json:"status"`
	Description    string    `json:"description,omitempty"`
	Duration       int       `json:"duration"`
	Notes          string    `json:"notes,omitempty"`
	FullReport     string    `json:"full_report,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AvailableSlotsResponse lists the free slot labels for one day
type AvailableSlotsResponse struct {
	PsychologistID string   `json:"psychologist_id"`
	Date           string   `json:"date"`
	Slots          []string `json:"slots"`
}

// ToAppointmentResponse converts a domain appointment to its API representation
func ToAppointmentResponse(a *scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:             a.ID.String(),
		PatientID:      a.PatientID.String(),
		PsychologistID: a.PsychologistID.String(),
		Date:           a.Date,
		Time:           a.Time,
		Status:         string(a.Status),
		Description:    a.Description,
		Duration:       a.Duration,
		Notes:          a.Notes,
		FullReport:     a.FullReport,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
