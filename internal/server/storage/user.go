package storage

import (
	"context"

	"github.com/iudanet/bigako/internal/models"
)

// UserStorage defines interface for account persistence
type UserStorage interface {
	// CreateUser creates a new account in the storage
	// Returns ErrUserAlreadyExists if username is already taken
	CreateUser(ctx context.Context, account *models.Account) error

	// GetUserByUsername retrieves account by username
	// Returns ErrUserNotFound if account doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.Account, error)
}
