package intake

import (
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/intake"
)

// SubmitRequestRequest represents a public intake submission
type SubmitRequestRequest struct {
	PatientName    string   `json:"patient_name" binding:"required,min=1,max=200"`
	PatientEmail   string   `json:"patient_email" binding:"required,email,max=200"`
	PatientPhone   string   `json:"patient_phone" binding:"max=50"`
	PsychologistID string   `json:"psychologist_id" binding:"required,uuid"`
	Description    string   `json:"description" binding:"max=2000"`
	Urgency        string   `json:"urgency" binding:"omitempty,oneof=baixa media alta"`
	PreferredDates []string `json:"preferred_dates" binding:"omitempty,dive,dateonly"`
	PreferredTimes []string `json:"preferred_times" binding:"omitempty,dive,timeslot"`
}

// DecideRequestRequest carries the psychologist's decision on a request
type DecideRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
	Notes  string `json:"notes" binding:"max=2000"`
}

// RequestResponse is the API representation of an intake request
type RequestResponse struct {
	ID             string    `json:"id"`
	PatientName    string    `json:"patient_name"`
	PatientEmail   string    `json:"patient_email"`
	PatientPhone   string    `json:"patient_phone,omitempty"`
	PsychologistID string    `json:"psychologist_id"`
	Description    string    `json:"description,omitempty"`
	Urgency        string    `json:"urgency,omitempty"`
	PreferredDates []string  `json:"preferred_dates"`
	PreferredTimes []string  `json:"preferred_times"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToRequestResponse converts a domain request to its API representation
func ToRequestResponse(r *intake.Request) RequestResponse {
	return RequestResponse{
		ID:             r.ID.String(),
		PatientName:    r.PatientName,
		PatientEmail:   r.PatientEmail,
		PatientPhone:   r.PatientPhone,
		PsychologistID: r.PsychologistID.String(),
		Description:    r.Description,
		Urgency:        r.Urgency,
		PreferredDates: r.PreferredDates,
		PreferredTimes: r.PreferredTimes,
		Status:         string(r.Status),
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
