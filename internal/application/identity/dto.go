package identity

import (
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/identity"
)

// RegisterRequest represents a registration payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=200"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	Name      string `json:"name" binding:"required,min=1,max=200"`
	Role      string `json:"role" binding:"required,oneof=psicologo paciente"`
	Phone     string `json:"phone" binding:"max=50"`
	BirthDate string `json:"birth_date" binding:"omitempty,dateonly"`
	Specialty string `json:"specialty" binding:"max=200"`
	CRP       string `json:"crp" binding:"max=50"`
}

// LoginRequest represents a login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public representation of a user account
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Phone       string     `json:"phone,omitempty"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	BirthDate   *string    `json:"birth_date,omitempty"`
	Specialty   string     `json:"specialty,omitempty"`
	CRP         string     `json:"crp,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthResponse bundles the issued token with the authenticated user
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(u *identity.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		Phone:       u.Phone,
		AvatarURL:   u.AvatarURL,
		Specialty:   u.Specialty,
		CRP:         u.CRP,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
	if u.BirthDate != nil {
		formatted := u.BirthDate.Format("2006-01-02")
		resp.BirthDate = &formatted
	}
	return resp
}
