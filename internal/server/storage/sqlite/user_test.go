package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bigako/internal/models"
	"github.com/iudanet/bigako/internal/server/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	account := &models.Account{
		Username:     "testuser1",
		PasswordHash: "hash123",
		Salt:         "salt123",
		CreatedAt:    time.Now(),
	}

	err := s.CreateUser(ctx, account)
	require.NoError(t, err)

	// Id назначается базой
	assert.Positive(t, account.ID)

	// Verify account was created
	retrieved, err := s.GetUserByUsername(ctx, "testuser1")
	require.NoError(t, err)
	assert.Equal(t, account.ID, retrieved.ID)
	assert.Equal(t, account.Username, retrieved.Username)
	assert.Equal(t, account.PasswordHash, retrieved.PasswordHash)
	assert.Equal(t, account.Salt, retrieved.Salt)
}

func TestUserStorage_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	first := createTestAccount(t, ctx, s, "duplicate")

	// Try to create second account with same username
	second := &models.Account{
		Username:     "duplicate", // Same username
		PasswordHash: "otherhash",
		Salt:         "othersalt",
		CreatedAt:    time.Now(),
	}
	err := s.CreateUser(ctx, second)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)

	// Первая запись не пострадала
	retrieved, err := s.GetUserByUsername(ctx, "duplicate")
	require.NoError(t, err)
	assert.Equal(t, first.PasswordHash, retrieved.PasswordHash)
	assert.Equal(t, first.Salt, retrieved.Salt)
}

func TestUserStorage_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	createTestAccount(t, ctx, s, "findme")

	tests := []struct {
		wantError error
		name      string
		username  string
	}{
		{
			name:      "existing user",
			username:  "findme",
			wantError: nil,
		},
		{
			name:      "unknown user",
			username:  "nosuchuser",
			wantError: storage.ErrUserNotFound,
		},
		{
			name:      "username lookup is case-sensitive",
			username:  "FindMe",
			wantError: storage.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := s.GetUserByUsername(ctx, tt.username)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, account)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.username, account.Username)
			}
		})
	}
}
