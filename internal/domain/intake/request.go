package intake

import (
	"strings"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status is the lifecycle state of an intake request
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Request is an intake request from a prospective patient. It is created by
// an unauthenticated requester and decided by the target psychologist.
// Accepted and rejected are terminal.
type Request struct {
	shared.BaseEntity
	PatientName    string
	PatientEmail   string
	PatientPhone   string
	PsychologistID uuid.UUID
	Description    string
	Urgency        string
	// PreferredDates and PreferredTimes are opaque ordered labels; this layer
	// does not validate that they parse as dates or times.
	PreferredDates []string
	PreferredTimes []string
	Status         Status
	Notes          string
}

// NewRequest creates a pending intake request
func NewRequest(name, email, phone string, psychologistID uuid.UUID, description, urgency string, preferredDates, preferredTimes []string) (*Request, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Requester name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Requester email cannot be empty")
	}
	if psychologistID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Target psychologist is required")
	}
	if preferredDates == nil {
		preferredDates = []string{}
	}
	if preferredTimes == nil {
		preferredTimes = []string{}
	}

	return &Request{
		BaseEntity:     shared.NewBaseEntity(),
		PatientName:    name,
		PatientEmail:   email,
		PatientPhone:   strings.TrimSpace(phone),
		PsychologistID: psychologistID,
		Description:    description,
		Urgency:        urgency,
		PreferredDates: preferredDates,
		PreferredTimes: preferredTimes,
		Status:         StatusPending,
	}, nil
}

// Decide moves a pending request to a terminal state. Decided requests are
// immutable; a second decision fails.
func (r *Request) Decide(status Status, notes string) error {
	if status != StatusAccepted && status != StatusRejected {
		return shared.NewDomainError("INVALID_INPUT", "Decision must be accepted or rejected")
	}
	if r.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Request has already been decided")
	}
	r.Status = status
	r.Notes = notes
	r.Touch()
	return nil
}

// IsPending reports whether the request still awaits a decision
func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}
