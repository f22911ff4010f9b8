// Package auth implements credential verification on top of the user
// storage: salted SHA-256 digests, registration and password checks.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/bigako/internal/models"
	"github.com/iudanet/bigako/internal/server/storage"
)

// saltBytes размер случайной соли в байтах (32 hex символа после кодирования)
const saltBytes = 16

// Service provides account registration and credential verification
type Service struct {
	users storage.UserStorage
}

// NewService creates a new credential service
func NewService(users storage.UserStorage) *Service {
	return &Service{users: users}
}

// Register creates a new account with a fresh random salt.
// Returns storage.ErrUserAlreadyExists if the username is taken.
func (s *Service) Register(ctx context.Context, username, password string) error {
	salt, err := generateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: HashPassword(password, salt),
		Salt:         salt,
		CreatedAt:    time.Now(),
	}

	return s.users.CreateUser(ctx, account)
}

// Verify checks the password against the stored salted digest.
// Неизвестный пользователь и неверный пароль неразличимы по результату:
// оба дают false без ошибки.
func (s *Service) Verify(ctx context.Context, username, password string) (bool, error) {
	account, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	return HashPassword(password, account.Salt) == account.PasswordHash, nil
}

// HashPassword computes the hex encoded SHA-256 digest of password+salt.
// Хеш никогда не пересчитывается без исходной соли.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// generateSalt возвращает hex encoded случайную соль
func generateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
