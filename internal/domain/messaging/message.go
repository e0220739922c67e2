package messaging

import (
	"strings"
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Message is a direct message between two users. Messaging is gated:
// a pair may exchange messages only when they hold a clinical
// relationship (the application layer enforces the gate).
type Message struct {
	shared.BaseEntity
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
	Read       bool
	ReadAt     *time.Time
}

func NewMessage(senderID, receiverID uuid.UUID, content string) (*Message, error) {
	if senderID == uuid.Nil || receiverID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sender and receiver are required")
	}
	if senderID == receiverID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Cannot send a message to yourself")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Message content is required")
	}

	return &Message{
		BaseEntity: shared.NewBaseEntity(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Read:       false,
	}, nil
}

// MarkRead flags the message as read. Only the receiver may do so.
func (m *Message) MarkRead(by uuid.UUID) error {
	if by != m.ReceiverID {
		return shared.NewDomainError("FORBIDDEN", "Only the receiver can mark a message as read")
	}
	if !m.Read {
		now := time.Now()
		m.Read = true
		m.ReadAt = &now
		m.Touch()
	}
	return nil
}
