package models

import (
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Email        string        `gorm:"type:varchar(200);not null;uniqueIndex:idx_users_email"`
	PasswordHash string        `gorm:"type:varchar(100);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null;index"`
	Name         string        `gorm:"type:varchar(200);not null"`
	Phone        string        `gorm:"type:varchar(50)"`
	AvatarURL    string        `gorm:"type:text"`
	BirthDate    *time.Time
	Specialty    string `gorm:"type:varchar(200)"`
	CRP          string `gorm:"type:varchar(50)"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		Name:         m.Name,
		Phone:        m.Phone,
		AvatarURL:    m.AvatarURL,
		BirthDate:    m.BirthDate,
		Specialty:    m.Specialty,
		CRP:          m.CRP,
		IsActive:     m.IsActive,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.Name = u.Name
	m.Phone = u.Phone
	m.AvatarURL = u.AvatarURL
	m.BirthDate = u.BirthDate
	m.Specialty = u.Specialty
	m.CRP = u.CRP
	m.IsActive = u.IsActive
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
