package report

import (
	"context"
	"testing"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/scheduling"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockPatientRepository is a mock implementation of PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *clinic.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) Update(ctx context.Context, patient *clinic.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*clinic.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clinic.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByIDForPsychologist(ctx context.Context, id, psychologistID uuid.UUID) (*clinic.Patient, error) {
	args := m.Called(ctx, id, psychologistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clinic.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByEmail(ctx context.Context, email string) (*clinic.Patient, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clinic.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*clinic.Patient, error) {
	args := m.Called(ctx, psychologistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*clinic.Patient), args.Error(1)
}

func (m *MockPatientRepository) ExistsByEmailForPsychologist(ctx context.Context, email string, psychologistID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, psychologistID)
	return args.Bool(0), args.Error(1)
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *scheduling.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appointment *scheduling.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*scheduling.Appointment, error) {
	args := m.Called(ctx, psychologistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*scheduling.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByPatientForPsychologist(ctx context.Context, patientID, psychologistID uuid.UUID) ([]*scheduling.Appointment, error) {
	args := m.Called(ctx, patientID, psychologistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) TakenSlots(ctx context.Context, psychologistID uuid.UUID, date string) ([]string, error) {
	args := m.Called(ctx, psychologistID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAppointmentRepository) HasAppointmentBetween(ctx context.Context, patientUserID, psychologistID uuid.UUID) (bool, error) {
	args := m.Called(ctx, patientUserID, psychologistID)
	return args.Bool(0), args.Error(1)
}

// =============================================================================
// Test Helpers
// =============================================================================

func newTestService() (*ReportService, *MockPatientRepository, *MockAppointmentRepository) {
	patientRepo := new(MockPatientRepository)
	appointmentRepo := new(MockAppointmentRepository)
	return NewReportService(patientRepo, appointmentRepo), patientRepo, appointmentRepo
}

func newPatient(t *testing.T, name string, owner uuid.UUID) *clinic.Patient {
	t.Helper()
	patient, err := clinic.NewPatient(name, name+"@example.com", "", clinic.DefaultBirthDate, &owner)
	assert.NoError(t, err)
	return patient
}

func appointmentsWithStatuses(t *testing.T, patientID, psychologistID uuid.UUID, statuses ...scheduling.Status) []*scheduling.Appointment {
	t.Helper()
	appointments := make([]*scheduling.Appointment, len(statuses))
	for i, status := range statuses {
		appt, err := scheduling.NewAppointment(patientID, psychologistID, "2025-03-10", "09:40", "", 0, "")
		assert.NoError(t, err)
		appt.Status = status
		appointments[i] = appt
	}
	return appointments
}

// =============================================================================
// Stats
// =============================================================================

func TestReportService_Stats(t *testing.T) {
	svc, patientRepo, appointmentRepo := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patient := newPatient(t, "carlos", psychologistID)

	schedule := appointmentsWithStatuses(t, patient.ID, psychologistID,
		scheduling.StatusCompleted, scheduling.StatusCompleted, scheduling.StatusCompleted,
		scheduling.StatusCanceled, scheduling.StatusScheduled,
	)

	appointmentRepo.On("FindByPsychologist", ctx, psychologistID).Return(schedule, nil)
	patientRepo.On("FindByPsychologist", ctx, psychologistID).Return([]*clinic.Patient{patient}, nil)
	appointmentRepo.On("FindByPatientForPsychologist", ctx, patient.ID, psychologistID).Return(schedule, nil)

	stats, err := svc.Stats(ctx, psychologistID)

	assert.NoError(t, err)
	assert.Equal(t, 1, stats.ActivePatients)
	assert.Equal(t, 5, stats.TotalSessions)
	assert.Equal(t, 3, stats.CompletedSessions)
	assert.Equal(t, 1, stats.CanceledSessions)
	assert.Equal(t, 1, stats.ScheduledSessions)
	// 3 completed out of 4 decided sessions.
	assert.Equal(t, "75.0", stats.AttendanceRate)
	appointmentRepo.AssertExpectations(t)
	patientRepo.AssertExpectations(t)
}

func TestReportService_Stats_NoSessions(t *testing.T) {
	svc, patientRepo, appointmentRepo := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	appointmentRepo.On("FindByPsychologist", ctx, psychologistID).Return([]*scheduling.Appointment{}, nil)
	patientRepo.On("FindByPsychologist", ctx, psychologistID).Return([]*clinic.Patient{}, nil)

	stats, err := svc.Stats(ctx, psychologistID)

	assert.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSessions)
	assert.Equal(t, "0.0", stats.AttendanceRate)
	assert.Empty(t, stats.RiskAlerts)
}

func TestReportService_Stats_AlertsOnlyElevatedRisk(t *testing.T) {
	svc, patientRepo, appointmentRepo := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	steady := newPatient(t, "steady", psychologistID)
	dropout := newPatient(t, "dropout", psychologistID)

	steadySessions := appointmentsWithStatuses(t, steady.ID, psychologistID,
		scheduling.StatusCompleted, scheduling.StatusCompleted,
	)
	dropoutSessions := appointmentsWithStatuses(t, dropout.ID, psychologistID,
		scheduling.StatusCanceled, scheduling.StatusCanceled, scheduling.StatusCompleted,
	)

	all := append(append([]*scheduling.Appointment{}, steadySessions...), dropoutSessions...)
	appointmentRepo.On("FindByPsychologist", ctx, psychologistID).Return(all, nil)
	patientRepo.On("FindByPsychologist", ctx, psychologistID).Return([]*clinic.Patient{steady, dropout}, nil)
	appointmentRepo.On("FindByPatientForPsychologist", ctx, steady.ID, psychologistID).Return(steadySessions, nil)
	appointmentRepo.On("FindByPatientForPsychologist", ctx, dropout.ID, psychologistID).Return(dropoutSessions, nil)

	stats, err := svc.Stats(ctx, psychologistID)

	assert.NoError(t, err)
	// Only the patient with an elevated label surfaces as an alert.
	assert.Len(t, stats.RiskAlerts, 1)
	assert.Equal(t, dropout.ID.String(), stats.RiskAlerts[0].PatientID)
	assert.Equal(t, RiskHigh, stats.RiskAlerts[0].Risk)
}

// =============================================================================
// RiskAnalysis
// =============================================================================

func TestReportService_RiskAnalysis_Labels(t *testing.T) {
	svc, patientRepo, appointmentRepo := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()

	// Half the sessions abandoned: Alto.
	high := newPatient(t, "high", psychologistID)
	highSessions := appointmentsWithStatuses(t, high.ID, psychologistID,
		scheduling.StatusCanceled, scheduling.StatusCompleted,
	)

	// A quarter abandoned: Moderado.
	moderate := newPatient(t, "moderate", psychologistID)
	moderateSessions := appointmentsWithStatuses(t, moderate.ID, psychologistID,
		scheduling.StatusCanceled, scheduling.StatusCompleted,
		scheduling.StatusCompleted, scheduling.StatusCompleted,
	)

	// Three sessions booked, none ever held: Moderado.
	noShow := newPatient(t, "noshow", psychologistID)
	noShowSessions := appointmentsWithStatuses(t, noShow.ID, psychologistID,
		scheduling.StatusScheduled, scheduling.StatusScheduled, scheduling.StatusScheduled,
	)

	// Regular attendance: Baixo.
	low := newPatient(t, "low", psychologistID)
	lowSessions := appointmentsWithStatuses(t, low.ID, psychologistID,
		scheduling.StatusCompleted, scheduling.StatusCompleted,
	)

	// A single canceled session is all-cancel but too little history
	// for Alto; the rate still flags Moderado.
	sparse := newPatient(t, "sparse", psychologistID)
	sparseSessions := appointmentsWithStatuses(t, sparse.ID, psychologistID,
		scheduling.StatusCanceled,
	)

	patientRepo.On("FindByPsychologist", ctx, psychologistID).Return(
		[]*clinic.Patient{high, moderate, noShow, low, sparse}, nil,
	)
	appointmentRepo.On("FindByPatientForPsychologist", ctx, high.ID, psychologistID).Return(highSessions, nil)
	appointmentRepo.On("FindByPatientForPsychologist", ctx, moderate.ID, psychologistID).Return(moderateSessions, nil)
	appointmentRepo.On("FindByPatientForPsychologist", ctx, noShow.ID, psychologistID).Return(noShowSessions, nil)
	appointmentRepo.On("FindByPatientForPsychologist", ctx, low.ID, psychologistID).Return(lowSessions, nil)
	appointmentRepo.On("FindByPatientForPsychologist", ctx, sparse.ID, psychologistID).Return(sparseSessions, nil)

	result, err := svc.RiskAnalysis(ctx, psychologistID)

	assert.NoError(t, err)
	assert.Equal(t, 5, result.TotalPatients)
	assert.Equal(t, 1, result.HighRisk)
	assert.Equal(t, 3, result.ModerateRisk)
	assert.Equal(t, 1, result.LowRisk)

	byName := map[string]string{}
	for _, alert := range result.Patients {
		byName[alert.PatientName] = alert.Risk
	}
	assert.Equal(t, RiskHigh, byName["high"])
	assert.Equal(t, RiskModerate, byName["moderate"])
	assert.Equal(t, RiskModerate, byName["noshow"])
	assert.Equal(t, RiskLow, byName["low"])
	assert.Equal(t, RiskModerate, byName["sparse"])
}

func TestReportService_RiskAnalysis_NoPatients(t *testing.T) {
	svc, patientRepo, _ := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patientRepo.On("FindByPsychologist", ctx, psychologistID).Return([]*clinic.Patient{}, nil)

	result, err := svc.RiskAnalysis(ctx, psychologistID)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.TotalPatients)
	assert.Empty(t, result.Patients)
}
