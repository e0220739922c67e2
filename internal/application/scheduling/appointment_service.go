package scheduling

import (
	"context"
	"errors"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/identity"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/scheduling"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/notification"
	"github.com/google/uuid"
)

// AppointmentService handles booking, updates and slot availability.
// Slot exclusivity is enforced by the storage layer, so two racing
// bookings for the same slot cannot both succeed.
type AppointmentService struct {
	appointmentRepo scheduling.AppointmentRepository
	patientRepo     clinic.PatientRepository
	userRepo        identity.UserRepository
	grid            scheduling.SlotGrid
	notifier        notification.Notifier
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(
	appointmentRepo scheduling.AppointmentRepository,
	patientRepo clinic.PatientRepository,
	userRepo identity.UserRepository,
	grid scheduling.SlotGrid,
	notifier notification.Notifier,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		grid:            grid,
		notifier:        notifier,
	}
}

// Create books an appointment for one of the clinician's own patients.
// Patient accounts cannot book directly; they go through an intake
// request instead.
func (s *AppointmentService) Create(ctx context.Context, principal identity.Principal, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	if !principal.IsPsychologist() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only psychologists can book appointments")
	}

	if req.PatientID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "patient_id is required")
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid patient id")
	}
	psychologistID := principal.ID
	patient, err := s.patientRepo.FindByIDForPsychologist(ctx, patientID, psychologistID)
	if err != nil {
		return nil, err
	}

	if !s.grid.Contains(req.Time) {
		return nil, shared.NewDomainError("INVALID_TIME", "Time is outside the booking grid")
	}

	appointment, err := scheduling.NewAppointment(
		patient.ID, psychologistID,
		req.Date, req.Time, req.Description, req.Duration, req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notification.Event{
		Template:  notification.TemplateAppointmentCreated,
		Recipient: patient.Email,
		Data: map[string]any{
			"appointment_id": appointment.ID.String(),
			"date":           appointment.Date,
			"time":           appointment.Time,
		},
	})

	resp := ToAppointmentResponse(appointment)
	return &resp, nil
}

// List returns the principal's appointments: a psychologist sees their
// schedule, a patient sees their own bookings.
func (s *AppointmentService) List(ctx context.Context, principal identity.Principal) ([]AppointmentResponse, error) {
	var appointments []*scheduling.Appointment
	var err error

	if principal.IsPsychologist() {
		appointments, err = s.appointmentRepo.FindByPsychologist(ctx, principal.ID)
	} else {
		var patient *clinic.Patient
		patient, err = s.patientRepo.FindByEmail(ctx, principal.Email)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return []AppointmentResponse{}, nil
			}
			return nil, err
		}
		appointments, err = s.appointmentRepo.FindByPatient(ctx, patient.ID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		responses[i] = ToAppointmentResponse(a)
	}
	return responses, nil
}

// ListByEmail returns the appointments booked under the patient email.
// The endpoint predates authentication on the patient side and stays
// public; an unknown email yields an empty list rather than an error.
func (s *AppointmentService) ListByEmail(ctx context.Context, email string) ([]AppointmentResponse, error) {
	patient, err := s.patientRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []AppointmentResponse{}, nil
		}
		return nil, err
	}

	appointments, err := s.appointmentRepo.FindByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		responses[i] = ToAppointmentResponse(a)
	}
	return responses, nil
}

// Get returns a single appointment visible to the principal
func (s *AppointmentService) Get(ctx context.Context, principal identity.Principal, appointmentID uuid.UUID) (*AppointmentResponse, error) {
	appointment, err := s.findVisible(ctx, principal, appointmentID)
	if err != nil {
		return nil, err
	}
	resp := ToAppointmentResponse(appointment)
	return &resp, nil
}

// Update applies a partial update. Only the owning clinician may change
// an appointment. Status changes follow the transition graph; a
// rescheduled status must come with the new date and time.
func (s *AppointmentService) Update(ctx context.Context, principal identity.Principal, appointmentID uuid.UUID, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	if !principal.IsPsychologist() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only psychologists can manage appointments")
	}

	appointment, err := s.findVisible(ctx, principal, appointmentID)
	if err != nil {
		return nil, err
	}

	previousStatus := appointment.Status

	if req.Status != nil {
		next := scheduling.Status(*req.Status)
		if next == scheduling.StatusRescheduled {
			if req.Date == nil || req.Time == nil {
				return nil, shared.NewDomainError("INVALID_INPUT", "Rescheduling requires date and time")
			}
			if !s.grid.Contains(*req.Time) {
				return nil, shared.NewDomainError("INVALID_TIME", "Time is outside the booking grid")
			}
			if err := appointment.Reschedule(*req.Date, *req.Time); err != nil {
				return nil, err
			}
		} else {
			if err := appointment.ChangeStatus(next); err != nil {
				return nil, err
			}
		}
	} else if req.Date != nil || req.Time != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Date and time can only change through rescheduling")
	}

	if req.Description != nil {
		appointment.Description = *req.Description
		appointment.Touch()
	}
	if req.Duration != nil {
		appointment.Duration = *req.Duration
		appointment.Touch()
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
		appointment.Touch()
	}
	if req.FullReport != nil {
		appointment.FullReport = *req.FullReport
		appointment.Touch()
	}

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	if req.Status != nil {
		s.notifyStatusChange(ctx, appointment, previousStatus)
	}

	resp := ToAppointmentResponse(appointment)
	return &resp, nil
}

// Cancel marks the appointment canceled. Only the owning clinician may
// cancel. The record survives and the slot becomes bookable again.
// Canceling twice is a no-op.
func (s *AppointmentService) Cancel(ctx context.Context, principal identity.Principal, appointmentID uuid.UUID) (*AppointmentResponse, error) {
	if !principal.IsPsychologist() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only psychologists can manage appointments")
	}

	appointment, err := s.findVisible(ctx, principal, appointmentID)
	if err != nil {
		return nil, err
	}

	wasActive := appointment.IsActive()
	appointment.Cancel()
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	if wasActive {
		s.notifyCancellation(ctx, appointment)
	}

	resp := ToAppointmentResponse(appointment)
	return &resp, nil
}

// AvailableSlots returns the free slot labels for a psychologist on a
// date. The full daily grid minus slots held by active appointments, in
// ascending order.
func (s *AppointmentService) AvailableSlots(ctx context.Context, psychologistID uuid.UUID, date string) (*AvailableSlotsResponse, error) {
	psychologist, err := s.userRepo.FindByID(ctx, psychologistID)
	if err != nil {
		return nil, err
	}
	if !psychologist.IsPsychologist() {
		return nil, shared.ErrNotFound
	}

	taken, err := s.appointmentRepo.TakenSlots(ctx, psychologistID, date)
	if err != nil {
		return nil, err
	}

	return &AvailableSlotsResponse{
		PsychologistID: psychologistID.String(),
		Date:           date,
		Slots:          s.grid.Available(taken),
	}, nil
}

// findVisible loads an appointment and checks the principal can see it.
// An appointment that belongs to someone else is indistinguishable from
// one that does not exist.
func (s *AppointmentService) findVisible(ctx context.Context, principal identity.Principal, appointmentID uuid.UUID) (*scheduling.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if principal.IsPsychologist() {
		if appointment.PsychologistID != principal.ID {
			return nil, shared.ErrNotFound
		}
		return appointment, nil
	}

	patient, err := s.patientRepo.FindByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if appointment.PatientID != patient.ID {
		return nil, shared.ErrNotFound
	}
	return appointment, nil
}

func (s *AppointmentService) notifyStatusChange(ctx context.Context, appointment *scheduling.Appointment, previous scheduling.Status) {
	recipient := s.patientEmail(ctx, appointment.PatientID)
	if recipient == "" {
		return
	}
	template := notification.TemplateAppointmentStatusChanged
	if appointment.Status == scheduling.StatusCanceled {
		template = notification.TemplateAppointmentCanceled
	}
	s.notifier.Notify(ctx, notification.Event{
		Template:  template,
		Recipient: recipient,
		Data: map[string]any{
			"appointment_id":  appointment.ID.String(),
			"previous_status": string(previous),
			"status":          string(appointment.Status),
			"date":            appointment.Date,
			"time":            appointment.Time,
		},
	})
}

func (s *AppointmentService) notifyCancellation(ctx context.Context, appointment *scheduling.Appointment) {
	recipient := s.patientEmail(ctx, appointment.PatientID)
	if recipient == "" {
		return
	}
	s.notifier.Notify(ctx, notification.Event{
		Template:  notification.TemplateAppointmentCanceled,
		Recipient: recipient,
		Data: map[string]any{
			"appointment_id": appointment.ID.String(),
			"date":           appointment.Date,
			"time":           appointment.Time,
		},
	})
}

func (s *AppointmentService) patientEmail(ctx context.Context, patientID uuid.UUID) string {
	patient, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		return ""
	}
	return patient.Email
}
