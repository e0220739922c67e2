package clinic

import (
	"context"
	"testing"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/identity"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/scheduling"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
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

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// =============================================================================
// Test Helpers
// =============================================================================

func newTestService() (*PatientService, *MockPatientRepository, *MockAppointmentRepository, *MockUserRepository) {
	patientRepo := new(MockPatientRepository)
	appointmentRepo := new(MockAppointmentRepository)
	userRepo := new(MockUserRepository)
	svc := NewPatientService(patientRepo, appointmentRepo, userRepo)
	return svc, patientRepo, appointmentRepo, userRepo
}

func newRecord(t *testing.T, owner uuid.UUID) *clinic.Patient {
	t.Helper()
	patient, err := clinic.NewPatient("Carlos Lima", "carlos@example.com", "", clinic.DefaultBirthDate, &owner)
	assert.NoError(t, err)
	return patient
}

// =============================================================================
// Create
// =============================================================================

func TestPatientService_Create_Success(t *testing.T) {
	svc, patientRepo, _, _ := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patientRepo.On("ExistsByEmailForPsychologist", ctx, "carlos@example.com", psychologistID).Return(false, nil)
	patientRepo.On("Create", ctx, mock.AnythingOfType("*clinic.Patient")).Return(nil)

	result, err := svc.Create(ctx, psychologistID, CreatePatientRequest{
		Name:      "Carlos Lima",
		Email:     "carlos@example.com",
		BirthDate: "1994-06-15",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Carlos Lima", result.Name)
	assert.Equal(t, "1994-06-15", result.BirthDate)
	assert.Equal(t, clinic.StatusActive, result.Status)
	assert.NotNil(t, result.PsychologistID)
	assert.Equal(t, psychologistID.String(), *result.PsychologistID)
	patientRepo.AssertExpectations(t)
}

func TestPatientService_Create_DuplicateEmail(t *testing.T) {
	svc, patientRepo, _, _ := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patientRepo.On("ExistsByEmailForPsychologist", ctx, "carlos@example.com", psychologistID).Return(true, nil)

	result, err := svc.Create(ctx, psychologistID, CreatePatientRequest{
		Name:  "Carlos Lima",
		Email: "carlos@example.com",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	patientRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPatientService_Create_InvalidBirthDate(t *testing.T) {
	svc, patientRepo, _, _ := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patientRepo.On("ExistsByEmailForPsychologist", ctx, "carlos@example.com", psychologistID).Return(false, nil)

	result, err := svc.Create(ctx, psychologistID, CreatePatientRequest{
		Name:      "Carlos Lima",
		Email:     "carlos@example.com",
		BirthDate: "15-06-1994",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_DATE", domainErr.Code)
}

// =============================================================================
// List
// =============================================================================

func TestPatientService_List_CountsNonCanceledSessions(t *testing.T) {
	svc, patientRepo, appointmentRepo, _ := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patient := newRecord(t, psychologistID)

	statuses := []scheduling.Status{
		scheduling.StatusCompleted,
		scheduling.StatusScheduled,
		scheduling.StatusCanceled,
	}
	appointments := make([]*scheduling.Appointment, len(statuses))
	for i, status := range statuses {
		appt, err := scheduling.NewAppointment(patient.ID, psychologistID, "2025-03-10", "09:40", "", 0, "")
		assert.NoError(t, err)
		appt.Status = status
		appointments[i] = appt
	}

	patientRepo.On("FindByPsychologist", ctx, psychologistID).Return([]*clinic.Patient{patient}, nil)
	appointmentRepo.On("FindByPatientForPsychologist", ctx, patient.ID, psychologistID).Return(appointments, nil)

	results, err := svc.List(ctx, psychologistID)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	// Canceled sessions do not count toward the totals.
	assert.Equal(t, 2, results[0].TotalSessions)
	assert.Equal(t, 1, results[0].CompletedSessions)
	patientRepo.AssertExpectations(t)
	appointmentRepo.AssertExpectations(t)
}

// =============================================================================
// Get / Update
// =============================================================================

func TestPatientService_Get_NotOwnedLooksMissing(t *testing.T) {
	svc, patientRepo, _, _ := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patientID := uuid.New()
	patientRepo.On("FindByIDForPsychologist", ctx, patientID, psychologistID).Return(nil, shared.ErrNotFound)

	result, err := svc.Get(ctx, psychologistID, patientID)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	patientRepo.AssertExpectations(t)
}

func TestPatientService_Update_PartialFields(t *testing.T) {
	svc, patientRepo, _, _ := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patient := newRecord(t, psychologistID)
	patient.SetClinicalInfo("Maria Lima", "11 97777-1111", "None", "")

	patientRepo.On("FindByIDForPsychologist", ctx, patient.ID, psychologistID).Return(patient, nil)
	patientRepo.On("Update", ctx, patient).Return(nil)

	phone := "11 96666-2222"
	history := "Mild insomnia"
	result, err := svc.Update(ctx, psychologistID, patient.ID, UpdatePatientRequest{
		Phone:          &phone,
		MedicalHistory: &history,
	})

	assert.NoError(t, err)
	assert.Equal(t, phone, result.Phone)
	assert.Equal(t, history, result.MedicalHistory)
	// Untouched clinical fields survive the partial update.
	assert.Equal(t, "Maria Lima", result.EmergencyContact)
	assert.Equal(t, "Carlos Lima", result.Name)
	patientRepo.AssertExpectations(t)
}

// =============================================================================
// Sessions / Profile
// =============================================================================

func TestPatientService_Sessions_RequiresOwnership(t *testing.T) {
	svc, patientRepo, appointmentRepo, _ := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patientID := uuid.New()
	patientRepo.On("FindByIDForPsychologist", ctx, patientID, psychologistID).Return(nil, shared.ErrNotFound)

	results, err := svc.Sessions(ctx, psychologistID, patientID)

	assert.Error(t, err)
	assert.Nil(t, results)
	appointmentRepo.AssertNotCalled(t, "FindByPatientForPsychologist", mock.Anything, mock.Anything, mock.Anything)
}

func TestPatientService_Sessions(t *testing.T) {
	svc, patientRepo, appointmentRepo, _ := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patient := newRecord(t, psychologistID)
	appt, err := scheduling.NewAppointment(patient.ID, psychologistID, "2025-03-10", "09:40", "First session", 0, "")
	assert.NoError(t, err)

	patientRepo.On("FindByIDForPsychologist", ctx, patient.ID, psychologistID).Return(patient, nil)
	appointmentRepo.On("FindByPatientForPsychologist", ctx, patient.ID, psychologistID).Return([]*scheduling.Appointment{appt}, nil)

	results, err := svc.Sessions(ctx, psychologistID, patient.ID)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "2025-03-10", results[0].Date)
	assert.Equal(t, "09:40", results[0].Time)
	assert.Equal(t, "First session", results[0].Description)
	appointmentRepo.AssertExpectations(t)
}

func TestPatientService_Profile_WithLinkedAccount(t *testing.T) {
	svc, patientRepo, _, userRepo := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patient := newRecord(t, psychologistID)
	account, err := identity.NewUser(patient.Email, "s3cret-pass", patient.Name, identity.RolePatient)
	assert.NoError(t, err)

	patientRepo.On("FindByIDForPsychologist", ctx, patient.ID, psychologistID).Return(patient, nil)
	userRepo.On("FindByEmail", ctx, patient.Email).Return(account, nil)

	result, err := svc.Profile(ctx, psychologistID, patient.ID)

	assert.NoError(t, err)
	assert.NotNil(t, result.Account)
	assert.Equal(t, account.ID.String(), result.Account.ID)
	userRepo.AssertExpectations(t)
}

func TestPatientService_Profile_WithoutAccount(t *testing.T) {
	svc, patientRepo, _, userRepo := newTestService()
	ctx := context.Background()

	psychologistID := uuid.New()
	patient := newRecord(t, psychologistID)

	patientRepo.On("FindByIDForPsychologist", ctx, patient.ID, psychologistID).Return(patient, nil)
	userRepo.On("FindByEmail", ctx, patient.Email).Return(nil, shared.ErrNotFound)

	result, err := svc.Profile(ctx, psychologistID, patient.ID)

	assert.NoError(t, err)
	assert.Nil(t, result.Account)
	assert.Equal(t, patient.ID.String(), result.Patient.ID)
}
