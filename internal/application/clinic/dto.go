package clinic

import (
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
)

// CreatePatientRequest represents a request to create a patient record
type CreatePatientRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	Email     string `json:"email" binding:"required,email,max=200"`
	Phone     string `json:"phone" binding:"max=50"`
	BirthDate string `json:"birth_date" binding:"omitempty,dateonly"`
}

// UpdatePatientRequest carries partial updates to a patient record.
// Pointer fields distinguish "not sent" from "set to empty".
type UpdatePatientRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone              *string `json:"phone" binding:"omitempty,max=50"`
	Status             *string `json:"status" binding:"omitempty,max=30"`
	EmergencyContact   *string `json:"emergency_contact" binding:"omitempty,max=200"`
	EmergencyPhone     *string `json:"emergency_phone" binding:"omitempty,max=50"`
	MedicalHistory     *string `json:"medical_history"`
	CurrentMedications *string `json:"current_medications"`
}

// PatientResponse is the API representation of a patient record
type PatientResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	BirthDate          string    `json:"birth_date"`
	Age                int       `json:"age"`
	Status             string    `json:"status"`
	EmergencyContact   string    `json:"emergency_contact,omitempty"`
	EmergencyPhone     string    `json:"emergency_phone,omitempty"`
	MedicalHistory     string    `json:"medical_history,omitempty"`
	CurrentMedications string    `json:"current_medications,omitempty"`
	PsychologistID     *string   `json:"psychologist_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// PatientSummaryResponse is a list row: the record plus session counters
type PatientSummaryResponse struct {
	PatientResponse
	TotalSessions     int `json:"total_sessions"`
	CompletedSessions int `json:"completed_sessions"`
}

// SessionResponse is one appointment row on a patient's session history
type SessionResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	Duration    int    `json:"duration"`
	Notes       string `json:"notes,omitempty"`
	FullReport  string `json:"full_report,omitempty"`
}

// PatientProfileResponse joins the patient record with the linked user
// account when one exists.
type PatientProfileResponse struct {
	Patient PatientResponse     `json:"patient"`
	Account *PatientAccountInfo `json:"account,omitempty"`
}

// PatientAccountInfo is the subset of the user account shown on a
// patient profile.
type PatientAccountInfo struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ToPatientResponse converts a domain patient to its API representation
func ToPatientResponse(p *clinic.Patient) PatientResponse {
	resp := PatientResponse{
		ID:                 p.ID.String(),
		Name:               p.Name,
		Email:              p.Email,
		Phone:              p.Phone,
		BirthDate:          p.BirthDate.Format("2006-01-02"),
		Age:                p.Age,
		Status:             p.Status,
		EmergencyContact:   p.EmergencyContact,
		EmergencyPhone:     p.EmergencyPhone,
		MedicalHistory:     p.MedicalHistory,
		CurrentMedications: p.CurrentMedications,
		CreatedAt:          p.CreatedAt,
	}
	if p.PsychologistID != nil {
		id := p.PsychologistID.String()
		resp.PsychologistID = &id
	}
	return resp
}
