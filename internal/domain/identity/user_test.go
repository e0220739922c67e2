package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active psychologist", func(t *testing.T) {
		user, err := NewUser("ana@clinic.com", "secret123", "Ana Souza", RolePsychologist)

		require.NoError(t, err)
		assert.Equal(t, "ana@clinic.com", user.Email)
		assert.Equal(t, RolePsychologist, user.Role)
		assert.True(t, user.IsActive)
		assert.True(t, user.IsPsychologist())
		assert.NotEqual(t, "secret123", user.PasswordHash)
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		user, err := NewUser("  Ana@Clinic.COM ", "secret123", "Ana", RolePatient)

		require.NoError(t, err)
		assert.Equal(t, "ana@clinic.com", user.Email)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "secret123", "Ana", RolePatient)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("ana@clinic.com", "12345", "Ana", RolePatient)
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewUser("ana@clinic.com", "secret123", "   ", RolePatient)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("ana@clinic.com", "secret123", "Ana", Role("admin"))
		assert.Error(t, err)
	})
}

func TestUserVerifyPassword(t *testing.T) {
	user, err := NewUser("ana@clinic.com", "secret123", "Ana", RolePatient)
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("secret123"))
	assert.False(t, user.VerifyPassword("wrong"))
	assert.False(t, user.VerifyPassword(""))
}

func TestUserSetPassword(t *testing.T) {
	user, err := NewUser("ana@clinic.com", "secret123", "Ana", RolePatient)
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("another456"))
	assert.True(t, user.VerifyPassword("another456"))
	assert.False(t, user.VerifyPassword("secret123"))

	assert.Error(t, user.SetPassword("short"))
}

func TestUserSetProfessionalInfo(t *testing.T) {
	t.Run("psychologist carries specialty and registration", func(t *testing.T) {
		user, err := NewUser("ana@clinic.com", "secret123", "Ana", RolePsychologist)
		require.NoError(t, err)

		require.NoError(t, user.SetProfessionalInfo(" Terapia Cognitiva ", " CRP 06/12345 "))
		assert.Equal(t, "Terapia Cognitiva", user.Specialty)
		assert.Equal(t, "CRP 06/12345", user.CRP)
	})

	t.Run("patients cannot carry professional info", func(t *testing.T) {
		user, err := NewUser("leo@mail.com", "secret123", "Leo", RolePatient)
		require.NoError(t, err)

		assert.Error(t, user.SetProfessionalInfo("x", "y"))
	})
}

func TestUserRecordLoginAndDeactivate(t *testing.T) {
	user, err := NewUser("ana@clinic.com", "secret123", "Ana", RolePatient)
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	now := time.Now()
	user.RecordLogin(now)
	require.NotNil(t, user.LastLoginAt)
	assert.True(t, user.LastLoginAt.Equal(now))

	user.Deactivate()
	assert.False(t, user.IsActive)
}

func TestPrincipalIsPsychologist(t *testing.T) {
	assert.True(t, Principal{Role: RolePsychologist}.IsPsychologist())
	assert.False(t, Principal{Role: RolePatient}.IsPsychologist())
}
