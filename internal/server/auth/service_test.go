package auth

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bigako/internal/models"
	"github.com/iudanet/bigako/internal/server/storage"
)

// fakeUserStorage простая in-memory реализация storage.UserStorage
type fakeUserStorage struct {
	accounts map[string]*models.Account
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{accounts: make(map[string]*models.Account)}
}

func (f *fakeUserStorage) CreateUser(_ context.Context, account *models.Account) error {
	if _, exists := f.accounts[account.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	account.ID = int64(len(f.accounts) + 1)
	f.accounts[account.Username] = account
	return nil
}

func (f *fakeUserStorage) GetUserByUsername(_ context.Context, username string) (*models.Account, error) {
	account, ok := f.accounts[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return account, nil
}

func TestService_RegisterAndVerify(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStorage()
	s := NewService(users)

	err := s.Register(ctx, "alice", "secret-password")
	require.NoError(t, err)

	ok, err := s.Verify(ctx, "alice", "secret-password")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Verify(ctx, "alice", "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Verify_UnknownUser(t *testing.T) {
	ctx := context.Background()
	s := NewService(newFakeUserStorage())

	// Неизвестный пользователь: false без ошибки, как и неверный пароль
	ok, err := s.Verify(ctx, "nobody", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Register_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := NewService(newFakeUserStorage())

	require.NoError(t, s.Register(ctx, "bob", "password1"))

	err := s.Register(ctx, "bob", "password2")
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)

	// Первая регистрация не пострадала
	ok, err := s.Verify(ctx, "bob", "password1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_Register_SaltIsFreshPerAccount(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStorage()
	s := NewService(users)

	require.NoError(t, s.Register(ctx, "alice", "same-password"))
	require.NoError(t, s.Register(ctx, "bob", "same-password"))

	alice := users.accounts["alice"]
	bob := users.accounts["bob"]

	// Одинаковый пароль, но разные соли и разные хеши
	assert.NotEqual(t, alice.Salt, bob.Salt)
	assert.NotEqual(t, alice.PasswordHash, bob.PasswordHash)

	// Соль: 16 байт в hex кодировке
	raw, err := hex.DecodeString(alice.Salt)
	require.NoError(t, err)
	assert.Len(t, raw, saltBytes)
}

func TestHashPassword(t *testing.T) {
	// Детерминированный hex SHA-256 от password+salt
	h1 := HashPassword("password", "salt")
	h2 := HashPassword("password", "salt")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	_, err := hex.DecodeString(h1)
	require.NoError(t, err)

	// Другая соль дает другой хеш
	assert.NotEqual(t, h1, HashPassword("password", "othersalt"))
}
