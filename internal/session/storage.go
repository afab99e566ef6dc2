package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	errCtxReadTokenFile   = "reading token file"
	errCtxWriteTokenFile  = "writing token file"
	errCtxRemoveTokenFile = "removing token file"
)

// MemoryStorage хранит токен в памяти.
type MemoryStorage struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStorage создает хранилище с начальным токеном (может быть пустым).
func NewMemoryStorage(token string) *MemoryStorage {
	return &MemoryStorage{token: token}
}

func (m *MemoryStorage) Load(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStorage) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStorage) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// FileStorage хранит токен в файле с правами 0600.
type FileStorage struct {
	path string
}

// NewFileStorage создает хранилище по пути path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultTokenPath возвращает ~/.config/cryptovest/token или путь во временном каталоге.
func DefaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "cryptovest", "token")
}

func (f *FileStorage) Load(context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtxReadTokenFile, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileStorage) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", errCtxWriteTokenFile, err)
	}
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("%s: %w", errCtxWriteTokenFile, err)
	}
	return nil
}

func (f *FileStorage) Delete(context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", errCtxRemoveTokenFile, err)
	}
	return nil
}
