package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role identifies the kind of principal
type Role string

const (
	RolePsychologist Role = "psicologo"
	RolePatient      Role = "paciente"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a principal in the system: a psychologist or a patient account.
// Users are never hard-deleted; IsActive is the soft status flag.
type User struct {
	shared.BaseEntity
	Email        string
	PasswordHash string
	Role         Role
	Name         string
	Phone        string
	AvatarURL    string
	BirthDate    *time.Time
	Specialty    string // psychologists only
	CRP          string // professional registration, psychologists only
	IsActive     bool
	LastLoginAt  *time.Time
}

// NewUser creates a user with a hashed credential
func NewUser(email, password, name string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	if len(password) < 6 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must have at least 6 characters")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if role != RolePsychologist && role != RolePatient {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be psicologo or paciente")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         name,
		IsActive:     true,
	}, nil
}

// VerifyPassword reports whether the provided password matches the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the user's credential
func (u *User) SetPassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must have at least 6 characters")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// SetProfessionalInfo sets the psychologist-only profile fields
func (u *User) SetProfessionalInfo(specialty, crp string) error {
	if u.Role != RolePsychologist {
		return shared.NewDomainError("INVALID_ROLE", "Only psychologists carry professional info")
	}
	u.Specialty = strings.TrimSpace(specialty)
	u.CRP = strings.TrimSpace(crp)
	u.Touch()
	return nil
}

// SetContact sets the optional contact fields
func (u *User) SetContact(phone, avatarURL string) {
	u.Phone = strings.TrimSpace(phone)
	u.AvatarURL = strings.TrimSpace(avatarURL)
	u.Touch()
}

// SetBirthDate sets the user's birth date
func (u *User) SetBirthDate(birthDate time.Time) {
	u.BirthDate = &birthDate
	u.Touch()
}

// RecordLogin stamps a successful authentication
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.Touch()
}

// Deactivate soft-disables the account
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}

// IsPsychologist reports whether the user holds the clinician role
func (u *User) IsPsychologist() bool {
	return u.Role == RolePsychologist
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Principal is the authenticated identity attached to a request
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

// IsPsychologist reports whether the principal holds the clinician role
func (p Principal) IsPsychologist() bool {
	return p.Role == RolePsychologist
}
