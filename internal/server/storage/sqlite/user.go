package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/bigako/internal/models"
	"github.com/iudanet/bigako/internal/server/storage"
)

// CreateUser creates a new account in the storage
func (s *Storage) CreateUser(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO users (username, password_hash, salt, created_at)
		VALUES (?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		account.Username,
		account.PasswordHash,
		account.Salt,
		account.CreatedAt,
	)

	if err != nil {
		// Проверяем на duplicate username
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", err)
	}
	account.ID = id

	return nil
}

// GetUserByUsername retrieves account by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, salt, created_at
		FROM users
		WHERE username = ?
	`

	account := &models.Account{}

	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.Salt,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return account, nil
}
