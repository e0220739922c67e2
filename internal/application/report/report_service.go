package report

import (
	"context"
	"fmt"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/scheduling"
	"github.com/google/uuid"
)

// ReportService aggregates practice statistics and a heuristic risk
// label per patient. The label is derived from the cancellation pattern:
// patients who abandon half their sessions are flagged Alto, a quarter
// (or an all-scheduled history of three or more) Moderado, the rest
// Baixo.
type ReportService struct {
	patientRepo     clinic.PatientRepository
	appointmentRepo scheduling.AppointmentRepository
}

// NewReportService creates a new ReportService
func NewReportService(patientRepo clinic.PatientRepository, appointmentRepo scheduling.AppointmentRepository) *ReportService {
	return &ReportService{
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
	}
}

// Stats builds the psychologist's practice summary
func (s *ReportService) Stats(ctx context.Context, psychologistID uuid.UUID) (*StatsResponse, error) {
	appointments, err := s.appointmentRepo.FindByPsychologist(ctx, psychologistID)
	if err != nil {
		return nil, err
	}
	patients, err := s.patientRepo.FindByPsychologist(ctx, psychologistID)
	if err != nil {
		return nil, err
	}

	stats := &StatsResponse{
		ActivePatients: len(patients),
		TotalSessions:  len(appointments),
		RiskAlerts:     []RiskAlert{},
	}
	for _, appt := range appointments {
		switch appt.Status {
		case scheduling.StatusCompleted:
			stats.CompletedSessions++
		case scheduling.StatusCanceled:
			stats.CanceledSessions++
		case scheduling.StatusScheduled:
			stats.ScheduledSessions++
		}
	}

	// Attendance over decided sessions only: scheduled and rescheduled
	// ones have no outcome yet.
	decided := stats.CompletedSessions + stats.CanceledSessions
	rate := 0.0
	if decided > 0 {
		rate = float64(stats.CompletedSessions) / float64(decided) * 100
	}
	stats.AttendanceRate = fmt.Sprintf("%.1f", rate)

	alerts, err := s.assessPatients(ctx, patients, psychologistID)
	if err != nil {
		return nil, err
	}
	for _, alert := range alerts {
		if alert.Risk == RiskHigh || alert.Risk == RiskModerate {
			stats.RiskAlerts = append(stats.RiskAlerts, alert)
		}
	}
	return stats, nil
}

// RiskAnalysis labels every patient of the psychologist
func (s *ReportService) RiskAnalysis(ctx context.Context, psychologistID uuid.UUID) (*RiskAnalysisResponse, error) {
	patients, err := s.patientRepo.FindByPsychologist(ctx, psychologistID)
	if err != nil {
		return nil, err
	}

	alerts, err := s.assessPatients(ctx, patients, psychologistID)
	if err != nil {
		return nil, err
	}

	resp := &RiskAnalysisResponse{
		TotalPatients: len(alerts),
		Patients:      alerts,
	}
	for _, alert := range alerts {
		switch alert.Risk {
		case RiskHigh:
			resp.HighRisk++
		case RiskModerate:
			resp.ModerateRisk++
		default:
			resp.LowRisk++
		}
	}
	return resp, nil
}

func (s *ReportService) assessPatients(ctx context.Context, patients []*clinic.Patient, psychologistID uuid.UUID) ([]RiskAlert, error) {
	alerts := make([]RiskAlert, 0, len(patients))
	for _, patient := range patients {
		appointments, err := s.appointmentRepo.FindByPatientForPsychologist(ctx, patient.ID, psychologistID)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, assess(patient, appointments))
	}
	return alerts, nil
}

func assess(patient *clinic.Patient, appointments []*scheduling.Appointment) RiskAlert {
	total := len(appointments)
	canceled := 0
	completed := 0
	for _, appt := range appointments {
		switch appt.Status {
		case scheduling.StatusCanceled:
			canceled++
		case scheduling.StatusCompleted:
			completed++
		}
	}

	cancelRate := 0.0
	if total > 0 {
		cancelRate = float64(canceled) / float64(total)
	}

	risk := RiskLow
	switch {
	case total >= 2 && cancelRate >= 0.5:
		risk = RiskHigh
	case cancelRate >= 0.25:
		risk = RiskModerate
	case total >= 3 && completed == 0:
		risk = RiskModerate
	}

	return RiskAlert{
		PatientID:        patient.ID.String(),
		PatientName:      patient.Name,
		Risk:             risk,
		TotalSessions:    total,
		CanceledSessions: canceled,
		CancelRate:       cancelRate,
	}
}
