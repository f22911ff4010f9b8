// Package session implements the in-process session token registry.
// Токены живут только в памяти: рестарт процесса инвалидирует все сессии.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// tokenBytes размер токена в байтах (256 бит энтропии, 64 hex символа)
const tokenBytes = 32

// Registry maps opaque bearer tokens to authenticated usernames.
// Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]string),
	}
}

// Issue generates a new random token and binds it to username.
// Повторные вызовы для одного пользователя выдают независимые токены:
// одновременных сессий может быть сколько угодно.
func (r *Registry) Issue(username string) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	r.mu.Lock()
	r.sessions[token] = username
	r.mu.Unlock()

	return token, nil
}

// Resolve returns the username bound to token, if any
func (r *Registry) Resolve(token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	username, ok := r.sessions[token]
	return username, ok
}

// Revoke removes the token from the registry.
// Idempotent: revoking an absent token is a no-op.
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

// Len returns the number of active sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
