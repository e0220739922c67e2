package models

import (
	"encoding/json"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/intake"
	"github.com/google/uuid"
)

// RequestModel is the persistence model for the intake Request entity.
// Preferred dates and times are stored as JSON arrays in text columns.
type RequestModel struct {
	BaseModel
	PatientName    string        `gorm:"type:varchar(200);not null"`
	PatientEmail   string        `gorm:"type:varchar(200);not null;index"`
	PatientPhone   string        `gorm:"type:varchar(50)"`
	PsychologistID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Description    string        `gorm:"type:text"`
	Urgency        string        `gorm:"type:varchar(30)"`
	PreferredDates string        `gorm:"type:text"`
	PreferredTimes string        `gorm:"type:text"`
	Status         intake.Status `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes          string        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RequestModel) TableName() string {
	return "requests"
}

// ToDomain converts the persistence model to a domain Request entity.
func (m *RequestModel) ToDomain() *intake.Request {
	return &intake.Request{
		BaseEntity:     m.BaseModel.ToDomain(),
		PatientName:    m.PatientName,
		PatientEmail:   m.PatientEmail,
		PatientPhone:   m.PatientPhone,
		PsychologistID: m.PsychologistID,
		Description:    m.Description,
		Urgency:        m.Urgency,
		PreferredDates: decodeStringList(m.PreferredDates),
		PreferredTimes: decodeStringList(m.PreferredTimes),
		Status:         m.Status,
		Notes:          m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Request entity.
func (m *RequestModel) FromDomain(r *intake.Request) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.PatientName = r.PatientName
	m.PatientEmail = r.PatientEmail
	m.PatientPhone = r.PatientPhone
	m.PsychologistID = r.PsychologistID
	m.Description = r.Description
	m.Urgency = r.Urgency
	m.PreferredDates = encodeStringList(r.PreferredDates)
	m.PreferredTimes = encodeStringList(r.PreferredTimes)
	m.Status = r.Status
	m.Notes = r.Notes
}

// RequestModelFromDomain creates a new persistence model from a domain Request entity.
func RequestModelFromDomain(r *intake.Request) *RequestModel {
	m := &RequestModel{}
	m.FromDomain(r)
	return m
}

func encodeStringList(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}
