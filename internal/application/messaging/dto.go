package messaging

import (
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/messaging"
)

// SendMessageRequest represents a request to send a direct message
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required,uuid"`
	Content    string `json:"content" binding:"required,min=1,max=5000"`
}

// MessageResponse is the API representation of a message
type MessageResponse struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Content    string     `json:"content"`
	Read       bool       `json:"read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ConversationResponse is one inbox row: the peer, the latest message and
// how many unread messages await the user.
type ConversationResponse struct {
	PeerID      string           `json:"peer_id"`
	PeerName    string           `json:"peer_name,omitempty"`
	LastMessage *MessageResponse `json:"last_message,omitempty"`
	UnreadCount int64            `json:"unread_count"`
}

// UnreadCountResponse carries the user's total unread counter
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// ContactResponse is a user the principal is allowed to message
type ContactResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ToMessageResponse converts a domain message to its API representation
func ToMessageResponse(m *messaging.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID.String(),
		SenderID:   m.SenderID.String(),
		ReceiverID: m.ReceiverID.String(),
		Content:    m.Content,
		Read:       m.Read,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
}
