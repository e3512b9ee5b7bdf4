package mocks

import (
	"context"
	"io"
	"sync"
	"testing"
)

type DocumentStore struct {
	mu    sync.Mutex
	files map[string][]byte

	UploadErr error
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		files: make(map[string][]byte),
	}
}

func (s *DocumentStore) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UploadErr != nil {
		return s.UploadErr
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	s.files[key] = data
	return nil
}

func (s *DocumentStore) AssertFileExists(t *testing.T, key string) {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[key]; !exists {
		t.Errorf("expected file with key %s to exist, but it does not", key)
	}
}

func (s *DocumentStore) FileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.files)
}
