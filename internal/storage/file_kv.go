package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileKV keeps the whole key space in a single JSON document on disk,
// rewritten in full on every mutation. Writes go through a temp file and an
// atomic rename, which is what makes MultiSet all-or-nothing.
//
// A mutex serializes access within a process; FileKV is still not safe for
// multiple processes sharing the same path.
type FileKV struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFileKV creates a file-backed store at path. The file is created lazily
// on the first write.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

func (s *FileKV) load() error {
	if s.data != nil {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]string)
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	data := make(map[string]string)
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	s.data = data
	return nil
}

func (s *FileKV) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil && !os.IsNotExist(removeErr) {
			return fmt.Errorf("failed to replace storage (cleanup also failed: %v): %w", removeErr, err)
		}
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return "", false, err
	}
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *FileKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	s.data[key] = value
	return s.save()
}

func (s *FileKV) MultiGet(_ context.Context, keys []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	result := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := s.data[key]; ok {
			result[key] = value
		}
	}
	return result, nil
}

func (s *FileKV) MultiSet(_ context.Context, pairs map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	for key, value := range pairs {
		s.data[key] = value
	}
	return s.save()
}

func (s *FileKV) Remove(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	for _, key := range keys {
		delete(s.data, key)
	}
	return s.save()
}

func (s *FileKV) Close() error {
	return nil
}
