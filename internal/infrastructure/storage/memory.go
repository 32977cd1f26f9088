package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	reportapp "github.com/schoolms/backend/internal/application/report"
)

var _ reportapp.ObjectStorage = (*MemoryStorage)(nil)

// MemoryStorage keeps artifacts in process memory. Used in development and
// tests; rejected by config validation in production.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStorage creates an empty in-memory artifact store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[string][]byte),
	}
}

// Upload stores the artifact bytes under the key
func (s *MemoryStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return nil
}

// Delete removes the artifact. Deleting a missing key is not an error.
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Exists reports whether an artifact is stored under the key
func (s *MemoryStorage) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// DownloadURL returns a synthetic URL; the bytes never leave the process
func (s *MemoryStorage) DownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", time.Time{}, fmt.Errorf("object %q not found", key)
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return "memory://" + key, time.Now().Add(expiresIn), nil
}

// Get returns stored bytes, for tests and the in-process download path
func (s *MemoryStorage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Len returns the number of stored artifacts
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
