package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/bigako/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func createTestAccount(t *testing.T, ctx context.Context, s *Storage, username string) *models.Account {
	account := &models.Account{
		Username:     username,
		PasswordHash: "deadbeef",
		Salt:         "cafebabe",
		CreatedAt:    time.Now(),
	}
	err := s.CreateUser(ctx, account)
	require.NoError(t, err)
	return account
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(i int64) *int64 {
	return &i
}
