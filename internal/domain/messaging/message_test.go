package messaging

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	sender := uuid.New()
	receiver := uuid.New()

	t.Run("creates unread message with trimmed content", func(t *testing.T) {
		msg, err := NewMessage(sender, receiver, "  Olá, tudo bem?  ")

		require.NoError(t, err)
		assert.Equal(t, "Olá, tudo bem?", msg.Content)
		assert.False(t, msg.Read)
	})

	t.Run("rejects self-send", func(t *testing.T) {
		_, err := NewMessage(sender, sender, "hi")
		assert.Error(t, err)
	})

	t.Run("rejects missing participants", func(t *testing.T) {
		_, err := NewMessage(uuid.Nil, receiver, "hi")
		assert.Error(t, err)

		_, err = NewMessage(sender, uuid.Nil, "hi")
		assert.Error(t, err)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		_, err := NewMessage(sender, receiver, "   ")
		assert.Error(t, err)
	})
}

func TestMessageMarkRead(t *testing.T) {
	sender := uuid.New()
	receiver := uuid.New()

	t.Run("receiver can mark read", func(t *testing.T) {
		msg, err := NewMessage(sender, receiver, "hi")
		require.NoError(t, err)

		require.NoError(t, msg.MarkRead(receiver))
		assert.True(t, msg.Read)
		assert.NotNil(t, msg.ReadAt)
	})

	t.Run("sender cannot mark read", func(t *testing.T) {
		msg, err := NewMessage(sender, receiver, "hi")
		require.NoError(t, err)

		assert.Error(t, msg.MarkRead(sender))
		assert.False(t, msg.Read)
	})

	t.Run("marking twice stays read", func(t *testing.T) {
		msg, err := NewMessage(sender, receiver, "hi")
		require.NoError(t, err)

		require.NoError(t, msg.MarkRead(receiver))
		require.NoError(t, msg.MarkRead(receiver))
		assert.True(t, msg.Read)
	})
}
