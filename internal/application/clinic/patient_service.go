package clinic

import (
	"context"
	"errors"
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/identity"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/scheduling"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PatientService handles patient record operations. All lookups are
// scoped to the requesting psychologist: a record owned by someone else
// is reported as not found.
type PatientService struct {
	patientRepo     clinic.PatientRepository
	appointmentRepo scheduling.AppointmentRepository
	userRepo        identity.UserRepository
}

// NewPatientService creates a new PatientService
func NewPatientService(
	patientRepo clinic.PatientRepository,
	appointmentRepo scheduling.AppointmentRepository,
	userRepo identity.UserRepository,
) *PatientService {
	return &PatientService{
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
	}
}

// Create registers a new patient record under the psychologist
func (s *PatientService) Create(ctx context.Context, psychologistID uuid.UUID, req CreatePatientRequest) (*PatientResponse, error) {
	exists, err := s.patientRepo.ExistsByEmailForPsychologist(ctx, req.Email, psychologistID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A patient with this email already exists")
	}

	birthDate := clinic.DefaultBirthDate
	if req.BirthDate != "" {
		parsed, parseErr := time.Parse("2006-01-02", req.BirthDate)
		if parseErr != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "Birth date must be in YYYY-MM-DD format")
		}
		birthDate = parsed
	}

	patient, err := clinic.NewPatient(req.Name, req.Email, req.Phone, birthDate, &psychologistID)
	if err != nil {
		return nil, err
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	resp := ToPatientResponse(patient)
	return &resp, nil
}

// List returns the psychologist's patients with session counters
func (s *PatientService) List(ctx context.Context, psychologistID uuid.UUID) ([]PatientSummaryResponse, error) {
	patients, err := s.patientRepo.FindByPsychologist(ctx, psychologistID)
	if err != nil {
		return nil, err
	}

	summaries := make([]PatientSummaryResponse, 0, len(patients))
	for _, patient := range patients {
		appointments, err := s.appointmentRepo.FindByPatientForPsychologist(ctx, patient.ID, psychologistID)
		if err != nil {
			return nil, err
		}

		summary := PatientSummaryResponse{PatientResponse: ToPatientResponse(patient)}
		for _, appt := range appointments {
			if appt.Status == scheduling.StatusCanceled {
				continue
			}
			summary.TotalSessions++
			if appt.Status == scheduling.StatusCompleted {
				summary.CompletedSessions++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Get returns a single patient record owned by the psychologist
func (s *PatientService) Get(ctx context.Context, psychologistID, patientID uuid.UUID) (*PatientResponse, error) {
	patient, err := s.patientRepo.FindByIDForPsychologist(ctx, patientID, psychologistID)
	if err != nil {
		return nil, err
	}
	resp := ToPatientResponse(patient)
	return &resp, nil
}

// Update applies a partial update to a patient record
func (s *PatientService) Update(ctx context.Context, psychologistID, patientID uuid.UUID, req UpdatePatientRequest) (*PatientResponse, error) {
	patient, err := s.patientRepo.FindByIDForPsychologist(ctx, patientID, psychologistID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		patient.Name = *req.Name
		patient.Touch()
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
		patient.Touch()
	}
	if req.Status != nil {
		patient.SetStatus(*req.Status)
	}
	if req.EmergencyContact != nil || req.EmergencyPhone != nil || req.MedicalHistory != nil || req.CurrentMedications != nil {
		emergencyContact := patient.EmergencyContact
		emergencyPhone := patient.EmergencyPhone
		medicalHistory := patient.MedicalHistory
		currentMedications := patient.CurrentMedications
		if req.EmergencyContact != nil {
			emergencyContact = *req.EmergencyContact
		}
		if req.EmergencyPhone != nil {
			emergencyPhone = *req.EmergencyPhone
		}
		if req.MedicalHistory != nil {
			medicalHistory = *req.MedicalHistory
		}
		if req.CurrentMedications != nil {
			currentMedications = *req.CurrentMedications
		}
		patient.SetClinicalInfo(emergencyContact, emergencyPhone, medicalHistory, currentMedications)
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}

	resp := ToPatientResponse(patient)
	return &resp, nil
}

// Sessions lists the appointments the psychologist has with the patient
func (s *PatientService) Sessions(ctx context.Context, psychologistID, patientID uuid.UUID) ([]SessionResponse, error) {
	if _, err := s.patientRepo.FindByIDForPsychologist(ctx, patientID, psychologistID); err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.FindByPatientForPsychologist(ctx, patientID, psychologistID)
	if err != nil {
		return nil, err
	}

	sessions := make([]SessionResponse, len(appointments))
	for i, appt := range appointments {
		sessions[i] = SessionResponse{
			ID:          appt.ID.String(),
			Date:        appt.Date,
			Time:        appt.Time,
			Status:      string(appt.Status),
			Description: appt.Description,
			Duration:    appt.Duration,
			Notes:       appt.Notes,
			FullReport:  appt.FullReport,
		}
	}
	return sessions, nil
}

// Profile returns the patient record together with the linked user
// account, matched by email, when the patient registered one.
func (s *PatientService) Profile(ctx context.Context, psychologistID, patientID uuid.UUID) (*PatientProfileResponse, error) {
	patient, err := s.patientRepo.FindByIDForPsychologist(ctx, patientID, psychologistID)
	if err != nil {
		return nil, err
	}

	profile := &PatientProfileResponse{Patient: ToPatientResponse(patient)}

	user, err := s.userRepo.FindByEmail(ctx, patient.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return profile, nil
		}
		return nil, err
	}
	profile.Account = &PatientAccountInfo{
		ID:          user.ID.String(),
		Email:       user.Email,
		Phone:       user.Phone,
		AvatarURL:   user.AvatarURL,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
	}
	return profile, nil
}
