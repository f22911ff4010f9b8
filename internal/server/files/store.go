// Package files implements the attachment blob store: uploaded files are
// written into a flat directory under uniqueness-prefixed keys.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/bigako/internal/server/storage"
)

// Store persists uploaded file blobs in a single directory.
// Ключ хранения: "<uuid>_<исходное имя файла>" — префикс исключает
// коллизии между одинаковыми именами от разных загрузок.
type Store struct {
	dir string
}

// NewStore creates the uploads directory if needed and returns a store
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the payload under a freshly generated unique key and
// returns that key
func (s *Store) Save(filename string, data []byte) (string, error) {
	if !validName(filename) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	key := uuid.New().String() + "_" + filename

	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}

	return key, nil
}

// Open opens a stored attachment by key.
// Returns storage.ErrAttachmentNotFound for unknown or malformed keys.
func (s *Store) Open(key string) (*os.File, error) {
	if !validName(key) {
		return nil, storage.ErrAttachmentNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}

	return f, nil
}

// DisplayName recovers the original filename by stripping the
// uniqueness prefix from the storage key
func DisplayName(key string) string {
	if _, name, ok := strings.Cut(key, "_"); ok {
		return name
	}
	return key
}

// validName отклоняет имена, способные вывести путь за пределы
// каталога загрузок
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
