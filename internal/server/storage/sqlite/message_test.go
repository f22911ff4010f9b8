package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bigako/internal/models"
)

func TestMessageStorage_InsertMessage(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		msg  *models.Message
		name string
	}{
		{
			name: "text message",
			msg: &models.Message{
				Username:  "alice",
				Body:      "hello world",
				Kind:      models.KindText,
				CreatedAt: time.Now(),
			},
		},
		{
			name: "file message with attachment metadata",
			msg: &models.Message{
				Username:       "bob",
				Body:           "Shared a file",
				Kind:           models.KindFile,
				AttachmentName: strPtr("abc123_photo.png"),
				AttachmentSize: int64Ptr(10),
				CreatedAt:      time.Now(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.InsertMessage(ctx, tt.msg)
			require.NoError(t, err)
			assert.Positive(t, id)
		})
	}
}

func TestMessageStorage_InsertMessage_MonotonicIDs(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	var prev int64
	for i := 0; i < 5; i++ {
		msg := &models.Message{
			Username:  "alice",
			Body:      fmt.Sprintf("message %d", i),
			Kind:      models.KindText,
			CreatedAt: time.Now(),
		}
		id, err := s.InsertMessage(ctx, msg)
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestMessageStorage_RecentMessages(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	// Вставляем 10 сообщений
	for i := 0; i < 10; i++ {
		msg := &models.Message{
			Username:  "alice",
			Body:      fmt.Sprintf("message %d", i),
			Kind:      models.KindText,
			CreatedAt: time.Now(),
		}
		_, err := s.InsertMessage(ctx, msg)
		require.NoError(t, err)
	}

	// Просим 5 последних: должны вернуться message 5..9 в хронологическом порядке
	messages, err := s.RecentMessages(ctx, 5)
	require.NoError(t, err)
	require.Len(t, messages, 5)

	for i, msg := range messages {
		assert.Equal(t, fmt.Sprintf("message %d", i+5), msg.Body)
		if i > 0 {
			assert.Greater(t, msg.ID, messages[i-1].ID)
		}
	}
}

func TestMessageStorage_RecentMessages_LimitExceedsCount(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		msg := &models.Message{
			Username:  "bob",
			Body:      fmt.Sprintf("message %d", i),
			Kind:      models.KindText,
			CreatedAt: time.Now(),
		}
		_, err := s.InsertMessage(ctx, msg)
		require.NoError(t, err)
	}

	messages, err := s.RecentMessages(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, messages, 3)
}

func TestMessageStorage_RecentMessages_Empty(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	messages, err := s.RecentMessages(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestMessageStorage_AttachmentFieldsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	// Текстовое сообщение: поля вложения NULL
	_, err := s.InsertMessage(ctx, &models.Message{
		Username:  "alice",
		Body:      "plain text",
		Kind:      models.KindText,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	// Файловое сообщение: поля вложения заполнены
	_, err = s.InsertMessage(ctx, &models.Message{
		Username:       "alice",
		Body:           "with file",
		Kind:           models.KindFile,
		AttachmentName: strPtr("key_doc.pdf"),
		AttachmentSize: int64Ptr(2048),
		CreatedAt:      time.Now(),
	})
	require.NoError(t, err)

	messages, err := s.RecentMessages(ctx, 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	textMsg, fileMsg := messages[0], messages[1]

	assert.Equal(t, models.KindText, textMsg.Kind)
	assert.Nil(t, textMsg.AttachmentName)
	assert.Nil(t, textMsg.AttachmentSize)
	assert.False(t, textMsg.IsFile())

	assert.Equal(t, models.KindFile, fileMsg.Kind)
	require.NotNil(t, fileMsg.AttachmentName)
	require.NotNil(t, fileMsg.AttachmentSize)
	assert.Equal(t, "key_doc.pdf", *fileMsg.AttachmentName)
	assert.Equal(t, int64(2048), *fileMsg.AttachmentSize)
	assert.True(t, fileMsg.IsFile())
}
