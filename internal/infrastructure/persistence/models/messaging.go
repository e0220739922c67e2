package models

import (
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/messaging"
	"github.com/google/uuid"
)

// MessageModel is the persistence model for the Message entity.
type MessageModel struct {
	BaseModel
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_sender_receiver"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_sender_receiver"`
	Content    string    `gorm:"type:text;not null"`
	Read       bool      `gorm:"not null;default:false;index"`
	ReadAt     *time.Time
}

// TableName returns the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts the persistence model to a domain Message entity.
func (m *MessageModel) ToDomain() *messaging.Message {
	return &messaging.Message{
		BaseEntity: m.BaseModel.ToDomain(),
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Read:       m.Read,
		ReadAt:     m.ReadAt,
	}
}

// FromDomain populates the persistence model from a domain Message entity.
func (m *MessageModel) FromDomain(msg *messaging.Message) {
	m.FromDomainBaseEntity(msg.BaseEntity)
	m.SenderID = msg.SenderID
	m.ReceiverID = msg.ReceiverID
	m.Content = msg.Content
	m.Read = msg.Read
	m.ReadAt = msg.ReadAt
}

// MessageModelFromDomain creates a new persistence model from a domain Message entity.
func MessageModelFromDomain(msg *messaging.Message) *MessageModel {
	m := &MessageModel{}
	m.FromDomain(msg)
	return m
}
