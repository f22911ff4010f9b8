// Package messages implements the message exchange core: durable appends
// through the message storage plus a bounded in-memory mirror of the most
// recent messages for the poll-latest read path.
package messages

import (
	"context"
	"sync"
	"time"

	"github.com/iudanet/bigako/internal/models"
	"github.com/iudanet/bigako/internal/server/storage"
)

const (
	// HistoryLimit максимальный размер зеркала последних сообщений
	HistoryLimit = 100
	// DefaultRecentLimit лимит выборки по умолчанию
	DefaultRecentLimit = 50
)

// Service owns the durable message log and its in-memory mirror.
// Зеркало не восстанавливается из БД при старте: после рестарта оно
// пустое и наполняется только новыми записями.
type Service struct {
	storage storage.MessageStorage

	mu      sync.Mutex
	history []models.Message
}

// NewService creates a message service over the given storage
func NewService(st storage.MessageStorage) *Service {
	return &Service{
		storage: st,
		history: make([]models.Message, 0, HistoryLimit),
	}
}

// Append assigns the next id via the durable log and then updates the
// mirror. Порядок строгий: сначала durable запись, потом зеркало —
// читатели зеркала никогда не видят сообщение раньше, чем оно в БД.
func (s *Service) Append(ctx context.Context, username, body, kind string, attachmentName *string, attachmentSize *int64) (int64, error) {
	msg := models.Message{
		Username:       username,
		Body:           body,
		Kind:           kind,
		AttachmentName: attachmentName,
		AttachmentSize: attachmentSize,
		CreatedAt:      time.Now(),
	}

	id, err := s.storage.InsertMessage(ctx, &msg)
	if err != nil {
		return 0, err
	}
	msg.ID = id

	s.mu.Lock()
	// Durable запись и попадание в зеркало не атомарны: конкурирующая
	// запись с большим id могла попасть в зеркало раньше. Вставляем по
	// позиции id, чтобы хвост зеркала всегда был хронологическим.
	s.history = append(s.history, msg)
	for i := len(s.history) - 1; i > 0 && s.history[i].ID < s.history[i-1].ID; i-- {
		s.history[i], s.history[i-1] = s.history[i-1], s.history[i]
	}
	if len(s.history) > HistoryLimit {
		s.history = s.history[len(s.history)-HistoryLimit:]
	}
	s.mu.Unlock()

	return id, nil
}

// Recent returns up to limit most recent messages, oldest first.
// Когда зеркало содержит не меньше limit записей, его хвост и есть
// самые свежие сообщения — БД не трогаем. Иначе читаем из хранилища.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	s.mu.Lock()
	if len(s.history) >= limit {
		tail := s.history[len(s.history)-limit:]
		out := make([]models.Message, limit)
		copy(out, tail)
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	return s.storage.RecentMessages(ctx, limit)
}

// History returns a consistent snapshot of the mirror, oldest first
func (s *Service) History() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, len(s.history))
	copy(out, s.history)
	return out
}
