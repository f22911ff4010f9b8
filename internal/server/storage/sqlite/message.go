package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iudanet/bigako/internal/models"
)

// InsertMessage appends a message to the durable log and returns the assigned id
func (s *Storage) InsertMessage(ctx context.Context, msg *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (username, message, message_type, file_name, file_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var fileName sql.NullString
	var fileSize sql.NullInt64
	if msg.AttachmentName != nil {
		fileName = sql.NullString{String: *msg.AttachmentName, Valid: true}
	}
	if msg.AttachmentSize != nil {
		fileSize = sql.NullInt64{Int64: *msg.AttachmentSize, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, query,
		msg.Username,
		msg.Body,
		msg.Kind,
		fileName,
		fileSize,
		msg.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return id, nil
}

// RecentMessages returns up to limit most recent messages in chronological order.
// Читаем по id в обратном порядке, потом разворачиваем — так LIMIT
// отбирает именно самые свежие строки.
func (s *Storage) RecentMessages(ctx context.Context, limit int) ([]models.Message, error) {
	query := `
		SELECT id, username, message, message_type, file_name, file_size, created_at
		FROM messages
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0, limit)

	for rows.Next() {
		var msg models.Message
		var fileName sql.NullString
		var fileSize sql.NullInt64

		if err := rows.Scan(
			&msg.ID,
			&msg.Username,
			&msg.Body,
			&msg.Kind,
			&fileName,
			&fileSize,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		if fileName.Valid {
			msg.AttachmentName = &fileName.String
		}
		if fileSize.Valid {
			msg.AttachmentSize = &fileSize.Int64
		}

		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	// Разворачиваем в хронологический порядок
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
