package messaging

import (
	"context"

	"github.com/google/uuid"
)

// ConversationSummary is one row of a user's inbox: the peer plus the
// latest message exchanged and how many unread messages await the user.
type ConversationSummary struct {
	PeerID      uuid.UUID
	LastMessage *Message
	UnreadCount int64
}

type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	Update(ctx context.Context, message *Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)
	// FindConversation returns all messages between the two users in
	// chronological order.
	FindConversation(ctx context.Context, userID, peerID uuid.UUID) ([]*Message, error)
	// MarkConversationRead marks every message sent by peer to user as
	// read and returns how many rows changed.
	MarkConversationRead(ctx context.Context, userID, peerID uuid.UUID) (int64, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*ConversationSummary, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
