package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/messaging"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMessageRepository implements messaging.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create persists a new message
func (r *GormMessageRepository) Create(ctx context.Context, message *messaging.Message) error {
	model := models.MessageModelFromDomain(message)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing message
func (r *GormMessageRepository) Update(ctx context.Context, message *messaging.Message) error {
	model := models.MessageModelFromDomain(message)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a message by its ID
func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	var model models.MessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindConversation returns all messages between the two users in
// chronological order.
func (r *GormMessageRepository) FindConversation(ctx context.Context, userID, peerID uuid.UUID) ([]*messaging.Message, error) {
	var messageModels []models.MessageModel
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at ASC").
		Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]*messaging.Message, len(messageModels))
	for i := range messageModels {
		messages[i] = messageModels[i].ToDomain()
	}
	return messages, nil
}

// MarkConversationRead marks every message sent by peer to user as read
func (r *GormMessageRepository) MarkConversationRead(ctx context.Context, userID, peerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.MessageModel{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", peerID, userID, false).
		Updates(map[string]any{"read": true, "read_at": time.Now()})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListConversations builds the user's inbox: one summary per peer with
// the latest message and the unread count.
func (r *GormMessageRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]*messaging.ConversationSummary, error) {
	var messageModels []models.MessageModel
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messageModels).Error; err != nil {
		return nil, err
	}

	summaries := []*messaging.ConversationSummary{}
	index := make(map[uuid.UUID]*messaging.ConversationSummary)
	for i := range messageModels {
		m := &messageModels[i]
		peerID := m.SenderID
		if peerID == userID {
			peerID = m.ReceiverID
		}

		summary, ok := index[peerID]
		if !ok {
			// Rows are newest-first, so the first hit per peer is the
			// latest message.
			summary = &messaging.ConversationSummary{
				PeerID:      peerID,
				LastMessage: m.ToDomain(),
			}
			index[peerID] = summary
			summaries = append(summaries, summary)
		}
		if m.ReceiverID == userID && !m.Read {
			summary.UnreadCount++
		}
	}
	return summaries, nil
}

// CountUnread counts unread messages addressed to the user
func (r *GormMessageRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MessageModel{}).
		Where("receiver_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

var _ messaging.MessageRepository = (*GormMessageRepository)(nil)
