package intake

import (
	"context"
	"errors"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/identity"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/intake"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/notification"
	"github.com/google/uuid"
)

// RequestService handles the intake request lifecycle: public submission,
// listing for the target psychologist and the accept/reject decision.
type RequestService struct {
	requestRepo intake.RequestRepository
	patientRepo clinic.PatientRepository
	userRepo    identity.UserRepository
	notifier    notification.Notifier
}

// NewRequestService creates a new RequestService
func NewRequestService(
	requestRepo intake.RequestRepository,
	patientRepo clinic.PatientRepository,
	userRepo identity.UserRepository,
	notifier notification.Notifier,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		patientRepo: patientRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Submit files a public intake request addressed to a psychologist. An
// email may hold at most one pending request per psychologist.
func (s *RequestService) Submit(ctx context.Context, req SubmitRequestRequest) (*RequestResponse, error) {
	psychologistID, err := uuid.Parse(req.PsychologistID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid psychologist id")
	}

	psychologist, err := s.userRepo.FindByID(ctx, psychologistID)
	if err != nil {
		return nil, err
	}
	if !psychologist.IsPsychologist() {
		return nil, shared.ErrNotFound
	}

	pending, err := s.requestRepo.HasPending(ctx, req.PatientEmail, psychologistID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, shared.ErrDuplicateRequest
	}

	request, err := intake.NewRequest(
		req.PatientName, req.PatientEmail, req.PatientPhone,
		psychologistID, req.Description, req.Urgency,
		req.PreferredDates, req.PreferredTimes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notification.Event{
		Template:  notification.TemplateRequestReceived,
		Recipient: psychologist.Email,
		Data: map[string]any{
			"request_id":   request.ID.String(),
			"patient_name": request.PatientName,
			"urgency":      request.Urgency,
		},
	})

	resp := ToRequestResponse(request)
	return &resp, nil
}

// List returns the principal's view of the intake queue. Psychologists
// see the requests addressed to them; patients see the requests filed
// under their own email, so they can follow the outcome.
func (s *RequestService) List(ctx context.Context, principal identity.Principal) ([]RequestResponse, error) {
	var requests []*intake.Request
	var err error

	if principal.IsPsychologist() {
		requests, err = s.requestRepo.FindByPsychologist(ctx, principal.ID)
	} else {
		requests, err = s.requestRepo.FindByEmail(ctx, principal.Email)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = ToRequestResponse(r)
	}
	return responses, nil
}

// Get returns a single request addressed to the psychologist
func (s *RequestService) Get(ctx context.Context, psychologistID, requestID uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByIDForPsychologist(ctx, requestID, psychologistID)
	if err != nil {
		return nil, err
	}
	resp := ToRequestResponse(request)
	return &resp, nil
}

// Decide accepts or rejects a pending request. Accepting links a patient
// record to the psychologist: an existing record with the request's email
// is reassigned, otherwise a new record is created. The decision outcome
// is notified to the requester.
func (s *RequestService) Decide(ctx context.Context, psychologistID, requestID uuid.UUID, req DecideRequestRequest) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByIDForPsychologist(ctx, requestID, psychologistID)
	if err != nil {
		return nil, err
	}

	status := intake.Status(req.Status)
	if err := request.Decide(status, req.Notes); err != nil {
		return nil, err
	}

	if status == intake.StatusAccepted {
		if err := s.linkPatient(ctx, request, psychologistID); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	template := notification.TemplateRequestAccepted
	if status == intake.StatusRejected {
		template = notification.TemplateRequestRejected
	}
	s.notifier.Notify(ctx, notification.Event{
		Template:  template,
		Recipient: request.PatientEmail,
		Data: map[string]any{
			"request_id": request.ID.String(),
			"notes":      request.Notes,
		},
	})

	resp := ToRequestResponse(request)
	return &resp, nil
}

func (s *RequestService) linkPatient(ctx context.Context, request *intake.Request, psychologistID uuid.UUID) error {
	patient, err := s.patientRepo.FindByEmail(ctx, request.PatientEmail)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		patient, err = clinic.NewPatient(
			request.PatientName, request.PatientEmail, request.PatientPhone,
			clinic.DefaultBirthDate, &psychologistID,
		)
		if err != nil {
			return err
		}
		return s.patientRepo.Create(ctx, patient)
	}

	patient.AssignPsychologist(psychologistID)
	return s.patientRepo.Update(ctx, patient)
}
