package models

import (
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/scheduling"
	"github.com/google/uuid"
)

// AppointmentModel is the persistence model for the Appointment entity.
// A partial unique index on (psychologist_id, date, time) excluding
// canceled rows is created by the migrations; it is what turns a slot
// race into a unique-violation the repository can translate.
type AppointmentModel struct {
	BaseModel
	PatientID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	PsychologistID uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_psych_date"`
	Date           string            `gorm:"type:varchar(10);not null;index:idx_appointments_psych_date"`
	Time           string            `gorm:"type:varchar(5);not null"`
	Status         scheduling.Status `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	Description    string            `gorm:"type:text"`
	Duration       int               `gorm:"not null;default:50"`
	Notes          string            `gorm:"type:text"`
	FullReport     string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AppointmentModel) TableName() string {
	return "appointments"
}

// ToDomain converts the persistence model to a domain Appointment entity.
func (m *AppointmentModel) ToDomain() *scheduling.Appointment {
	return &scheduling.Appointment{
		BaseEntity:     m.BaseModel.ToDomain(),
		PatientID:      m.PatientID,
		PsychologistID: m.PsychologistID,
		Date:           m.Date,
		Time:           m.Time,
		Status:         m.Status,
		Description:    m.Description,
		Duration:       m.Duration,
		Notes:          m.Notes,
		FullReport:     m.FullReport,
	}
}

// FromDomain populates the persistence model from a domain Appointment entity.
func (m *AppointmentModel) FromDomain(a *scheduling.Appointment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.PatientID = a.PatientID
	m.PsychologistID = a.PsychologistID
	m.Date = a.Date
	m.Time = a.Time
	m.Status = a.Status
	m.Description = a.Description
	m.Duration = a.Duration
	m.Notes = a.Notes
	m.FullReport = a.FullReport
}

// AppointmentModelFromDomain creates a new persistence model from a domain Appointment entity.
func AppointmentModelFromDomain(a *scheduling.Appointment) *AppointmentModel {
	m := &AppointmentModel{}
	m.FromDomain(a)
	return m
}
