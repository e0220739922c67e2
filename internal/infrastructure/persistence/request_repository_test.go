package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/intake"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteRequestRepository(t *testing.T) *GormRequestRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.RequestModel{}))

	return NewGormRequestRepository(db)
}

func storedRequest(t *testing.T, repo *GormRequestRepository, email string, psychologistID uuid.UUID, at time.Time) *intake.Request {
	t.Helper()

	request, err := intake.NewRequest("Carlos Lima", email, "11 99999-0000", psychologistID,
		"Gostaria de iniciar acompanhamento", "media",
		[]string{"2025-03-10"}, []string{"09:40"})
	require.NoError(t, err)
	request.CreatedAt = at
	request.UpdatedAt = at
	require.NoError(t, repo.Create(context.Background(), request))
	return request
}

func TestGormRequestRepository_FindByIDForPsychologist(t *testing.T) {
	t.Run("finds a request addressed to the psychologist", func(t *testing.T) {
		repo := newSQLiteRequestRepository(t)
		psychologistID := uuid.New()

		request := storedRequest(t, repo, "carlos@example.com", psychologistID,
			time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

		found, err := repo.FindByIDForPsychologist(context.Background(), request.ID, psychologistID)

		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, request.ID, found.ID)
		assert.Equal(t, "carlos@example.com", found.PatientEmail)
		assert.Equal(t, intake.StatusPending, found.Status)
		assert.Equal(t, []string{"2025-03-10"}, found.PreferredDates)
		assert.Equal(t, []string{"09:40"}, found.PreferredTimes)
	})

	t.Run("request of another psychologist looks absent", func(t *testing.T) {
		repo := newSQLiteRequestRepository(t)

		request := storedRequest(t, repo, "carlos@example.com", uuid.New(),
			time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

		found, err := repo.FindByIDForPsychologist(context.Background(), request.ID, uuid.New())

		assert.Nil(t, found)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormRequestRepository_FindByPsychologist(t *testing.T) {
	t.Run("lists requests newest first", func(t *testing.T) {
		repo := newSQLiteRequestRepository(t)
		psychologistID := uuid.New()
		base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

		older := storedRequest(t, repo, "carlos@example.com", psychologistID, base)
		newer := storedRequest(t, repo, "joana@example.com", psychologistID, base.Add(time.Hour))
		storedRequest(t, repo, "outro@example.com", uuid.New(), base.Add(2*time.Hour))

		requests, err := repo.FindByPsychologist(context.Background(), psychologistID)

		assert.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, newer.ID, requests[0].ID)
		assert.Equal(t, older.ID, requests[1].ID)
	})
}

func TestGormRequestRepository_FindByEmail(t *testing.T) {
	t.Run("matches the lowercased email", func(t *testing.T) {
		repo := newSQLiteRequestRepository(t)

		storedRequest(t, repo, "carlos@example.com", uuid.New(),
			time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

		requests, err := repo.FindByEmail(context.Background(), "Carlos@Example.COM")

		assert.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, "carlos@example.com", requests[0].PatientEmail)
	})

	t.Run("returns empty for unknown email", func(t *testing.T) {
		repo := newSQLiteRequestRepository(t)

		requests, err := repo.FindByEmail(context.Background(), "ghost@example.com")

		assert.NoError(t, err)
		assert.Empty(t, requests)
	})
}

func TestGormRequestRepository_HasPending(t *testing.T) {
	t.Run("true while the request awaits a decision", func(t *testing.T) {
		repo := newSQLiteRequestRepository(t)
		psychologistID := uuid.New()

		storedRequest(t, repo, "carlos@example.com", psychologistID,
			time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

		pending, err := repo.HasPending(context.Background(), "Carlos@example.com", psychologistID)

		assert.NoError(t, err)
		assert.True(t, pending)
	})

	t.Run("false once the request is decided", func(t *testing.T) {
		repo := newSQLiteRequestRepository(t)
		psychologistID := uuid.New()
		ctx := context.Background()

		request := storedRequest(t, repo, "carlos@example.com", psychologistID,
			time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
		require.NoError(t, request.Decide(intake.StatusAccepted, ""))
		require.NoError(t, repo.Update(ctx, request))

		pending, err := repo.HasPending(ctx, "carlos@example.com", psychologistID)

		assert.NoError(t, err)
		assert.False(t, pending)
	})

	t.Run("scoped to the target psychologist", func(t *testing.T) {
		repo := newSQLiteRequestRepository(t)

		storedRequest(t, repo, "carlos@example.com", uuid.New(),
			time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

		pending, err := repo.HasPending(context.Background(), "carlos@example.com", uuid.New())

		assert.NoError(t, err)
		assert.False(t, pending)
	})
}

func TestGormRequestRepository_Update(t *testing.T) {
	t.Run("persists the decision and notes", func(t *testing.T) {
		repo := newSQLiteRequestRepository(t)
		psychologistID := uuid.New()
		ctx := context.Background()

		request := storedRequest(t, repo, "carlos@example.com", psychologistID,
			time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
		require.NoError(t, request.Decide(intake.StatusRejected, "Agenda cheia no momento"))
		require.NoError(t, repo.Update(ctx, request))

		found, err := repo.FindByIDForPsychologist(ctx, request.ID, psychologistID)

		assert.NoError(t, err)
		assert.Equal(t, intake.StatusRejected, found.Status)
		assert.Equal(t, "Agenda cheia no momento", found.Notes)
	})
}
