package storage

import (
	"context"

	"github.com/iudanet/bigako/internal/models"
)

// MessageStorage defines interface for the durable message log
type MessageStorage interface {
	// InsertMessage appends a message to the durable log and returns
	// the assigned monotonic id
	InsertMessage(ctx context.Context, msg *models.Message) (int64, error)

	// RecentMessages returns up to limit most recent messages in
	// chronological order (oldest first)
	RecentMessages(ctx context.Context, limit int) ([]models.Message, error)
}
