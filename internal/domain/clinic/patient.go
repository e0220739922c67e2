package clinic

import (
	"strings"
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StatusActive is the treatment status set on creation and on intake acceptance
const StatusActive = "Ativo"

// DefaultBirthDate is the placeholder used when a birth date was not collected
// at intake time.
var DefaultBirthDate = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

// Patient is the per-patient clinical record. It can exist without a linked
// user account and without an owning psychologist.
type Patient struct {
	shared.BaseEntity
	Name               string
	Email              string
	Phone              string
	BirthDate          time.Time
	Age                int
	Status             string
	EmergencyContact   string
	EmergencyPhone     string
	MedicalHistory     string
	CurrentMedications string
	PsychologistID     *uuid.UUID
}

// NewPatient creates a patient record, deriving age from the birth date
func NewPatient(name, email, phone string, birthDate time.Time, psychologistID *uuid.UUID) (*Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Patient name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Patient email cannot be empty")
	}

	return &Patient{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		Email:          email,
		Phone:          strings.TrimSpace(phone),
		BirthDate:      birthDate,
		Age:            CalculateAge(birthDate, time.Now()),
		Status:         StatusActive,
		PsychologistID: psychologistID,
	}, nil
}

// AssignPsychologist reassigns the owning clinician and reactivates treatment.
// Any prior assignment is overwritten.
func (p *Patient) AssignPsychologist(psychologistID uuid.UUID) {
	p.PsychologistID = &psychologistID
	p.Status = StatusActive
	p.Touch()
}

// SetClinicalInfo updates the free-text clinical fields
func (p *Patient) SetClinicalInfo(emergencyContact, emergencyPhone, medicalHistory, currentMedications string) {
	p.EmergencyContact = emergencyContact
	p.EmergencyPhone = emergencyPhone
	p.MedicalHistory = medicalHistory
	p.CurrentMedications = currentMedications
	p.Touch()
}

// SetStatus sets the treatment status label
func (p *Patient) SetStatus(status string) {
	p.Status = status
	p.Touch()
}

// OwnedBy reports whether the given psychologist owns this record
func (p *Patient) OwnedBy(psychologistID uuid.UUID) bool {
	return p.PsychologistID != nil && *p.PsychologistID == psychologistID
}

// CalculateAge returns full years between birthDate and now, counting a year
// only once the birthday has passed.
func CalculateAge(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}
