package models

import (
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
	"github.com/google/uuid"
)

// PatientModel is the persistence model for the Patient domain entity.
type PatientModel struct {
	BaseModel
	Name               string    `gorm:"type:varchar(200);not null"`
	Email              string    `gorm:"type:varchar(200);not null;index"`
	Phone              string    `gorm:"type:varchar(50)"`
	BirthDate          time.Time `gorm:"not null"`
	Age                int       `gorm:"not null;default:0"`
	Status             string    `gorm:"type:varchar(30);not null;default:'Ativo'"`
	EmergencyContact   string    `gorm:"type:varchar(200)"`
	EmergencyPhone     string    `gorm:"type:varchar(50)"`
	MedicalHistory     string    `gorm:"type:text"`
	CurrentMedications string    `gorm:"type:text"`
	PsychologistID     *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (PatientModel) TableName() string {
	return "patients"
}

// ToDomain converts the persistence model to a domain Patient entity.
func (m *PatientModel) ToDomain() *clinic.Patient {
	return &clinic.Patient{
		BaseEntity:         m.BaseModel.ToDomain(),
		Name:               m.Name,
		Email:              m.Email,
		Phone:              m.Phone,
		BirthDate:          m.BirthDate,
		Age:                m.Age,
		Status:             m.Status,
		EmergencyContact:   m.EmergencyContact,
		EmergencyPhone:     m.EmergencyPhone,
		MedicalHistory:     m.MedicalHistory,
		CurrentMedications: m.CurrentMedications,
		PsychologistID:     m.PsychologistID,
	}
}

// FromDomain populates the persistence model from a domain Patient entity.
func (m *PatientModel) FromDomain(p *clinic.Patient) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Email = p.Email
	m.Phone = p.Phone
	m.BirthDate = p.BirthDate
	m.Age = p.Age
	m.Status = p.Status
	m.EmergencyContact = p.EmergencyContact
	m.EmergencyPhone = p.EmergencyPhone
	m.MedicalHistory = p.MedicalHistory
	m.CurrentMedications = p.CurrentMedications
	m.PsychologistID = p.PsychologistID
}

// PatientModelFromDomain creates a new persistence model from a domain Patient entity.
func PatientModelFromDomain(p *clinic.Patient) *PatientModel {
	m := &PatientModel{}
	m.FromDomain(p)
	return m
}
