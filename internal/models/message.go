package models

import "time"

// Виды сообщений
const (
	// KindText обычное текстовое сообщение
	KindText = "text"
	// KindFile сообщение с прикрепленным файлом
	KindFile = "file"
)

// Message представляет одно сообщение в чате.
// Сообщения неизменяемы: после создания никогда не обновляются и не удаляются.
type Message struct {
	ID             int64     // монотонный id, назначается хранилищем
	Username       string    // автор сообщения
	Body           string    // текст (может быть пустым для файловых сообщений)
	Kind           string    // KindText или KindFile
	AttachmentName *string   // ключ вложения в хранилище файлов, nil если Kind != KindFile
	AttachmentSize *int64    // размер вложения в байтах, nil если Kind != KindFile
	CreatedAt      time.Time // время создания
}

// IsFile reports whether the message carries a file attachment.
func (m *Message) IsFile() bool {
	return m.Kind == KindFile && m.AttachmentName != nil
}
