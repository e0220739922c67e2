package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPatientRepository creates a GormPatientRepository with a mocked SQL connection
func newMockPatientRepository(t *testing.T) (*GormPatientRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPatientRepository(gormDB), mock, mockDB
}

func patientRows(id uuid.UUID, name, email string, psychologistID uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	birth := time.Date(1994, 6, 15, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "name", "email",
		"birth_date", "age", "status", "psychologist_id",
	}).AddRow(id, now, now, name, email, birth, 31, "Ativo", psychologistID)
}

func newStoredPatient(t *testing.T) *clinic.Patient {
	t.Helper()
	psychologistID := uuid.New()
	patient, err := clinic.NewPatient("Carlos Lima", "carlos@example.com", "11 99999-0000",
		time.Date(1994, 6, 15, 0, 0, 0, 0, time.UTC), &psychologistID)
	require.NoError(t, err)
	return patient
}

func TestGormPatientRepository_FindByIDForPsychologist(t *testing.T) {
	t.Run("finds patient owned by the psychologist", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()
		psychologistID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1 AND psychologist_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(patientID, psychologistID, 1).
			WillReturnRows(patientRows(patientID, "Carlos Lima", "carlos@example.com", psychologistID))

		patient, err := repo.FindByIDForPsychologist(context.Background(), patientID, psychologistID)

		assert.NoError(t, err)
		require.NotNil(t, patient)
		assert.Equal(t, patientID, patient.ID)
		assert.Equal(t, "Carlos Lima", patient.Name)
		require.NotNil(t, patient.PsychologistID)
		assert.Equal(t, psychologistID, *patient.PsychologistID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("patient of another psychologist looks absent", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()
		psychologistID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1 AND psychologist_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(patientID, psychologistID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		patient, err := repo.FindByIDForPsychologist(context.Background(), patientID, psychologistID)

		assert.Nil(t, patient)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_FindByEmail(t *testing.T) {
	t.Run("queries the lowercased email", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()
		psychologistID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("carlos@example.com", 1).
			WillReturnRows(patientRows(patientID, "Carlos Lima", "carlos@example.com", psychologistID))

		patient, err := repo.FindByEmail(context.Background(), "Carlos@Example.COM")

		assert.NoError(t, err)
		require.NotNil(t, patient)
		assert.Equal(t, "carlos@example.com", patient.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty email without touching the database", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patient, err := repo.FindByEmail(context.Background(), "")

		assert.Nil(t, patient)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_EMAIL", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_FindByPsychologist(t *testing.T) {
	t.Run("lists patients ordered by name", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		psychologistID := uuid.New()

		rows := patientRows(uuid.New(), "Ana Souza", "ana@example.com", psychologistID).
			AddRow(uuid.New(), time.Now(), time.Now(), "Carlos Lima", "carlos@example.com",
				time.Date(1994, 6, 15, 0, 0, 0, 0, time.UTC), 31, "Ativo", psychologistID)

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE psychologist_id = \$1 ORDER BY name ASC`).
			WithArgs(psychologistID).
			WillReturnRows(rows)

		patients, err := repo.FindByPsychologist(context.Background(), psychologistID)

		assert.NoError(t, err)
		require.Len(t, patients, 2)
		assert.Equal(t, "Ana Souza", patients[0].Name)
		assert.Equal(t, "Carlos Lima", patients[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_ExistsByEmailForPsychologist(t *testing.T) {
	t.Run("returns true when the psychologist already has the email", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		psychologistID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "patients" WHERE email = \$1 AND psychologist_id = \$2`).
			WithArgs("carlos@example.com", psychologistID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByEmailForPsychologist(context.Background(), "Carlos@example.com", psychologistID)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false otherwise", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		psychologistID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "patients" WHERE email = \$1 AND psychologist_id = \$2`).
			WithArgs("ghost@example.com", psychologistID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByEmailForPsychologist(context.Background(), "ghost@example.com", psychologistID)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_Update(t *testing.T) {
	t.Run("saves an existing patient", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patient := newStoredPatient(t)

		mock.ExpectExec(`UPDATE "patients" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), patient)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
