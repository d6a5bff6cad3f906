// internal/store/jsonfile.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// JSONFileStore persists all documents as one JSON file holding a
// key → raw-document map, rewritten wholesale on every Set. It mirrors the
// localStorage-style persistence the quiz originally used and is handy for
// inspecting state by hand.
type JSONFileStore struct {
	filename string
	mu       sync.Mutex
}

func NewJSONFile(filename string) (*JSONFileStore, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		initial, _ := json.Marshal(map[string]json.RawMessage{})
		if err := os.WriteFile(filename, initial, 0644); err != nil {
			return nil, fmt.Errorf("initialize store file %s: %w", filename, err)
		}
	}
	return &JSONFileStore{filename: filename}, nil
}

func (s *JSONFileStore) Close() error {
	return nil
}

func (s *JSONFileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return nil, err
	}
	value, ok := m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *JSONFileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		// A corrupt store file must not block writes; start over from an
		// empty map, matching the read-side fallback-to-default policy.
		m = make(map[string]json.RawMessage)
	}
	m[key] = json.RawMessage(value)
	return s.save(m)
}

func (s *JSONFileStore) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.filename)
	if err != nil {
		return nil, fmt.Errorf("read store file %s: %w", s.filename, err)
	}
	if len(data) == 0 {
		return make(map[string]json.RawMessage), nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", s.filename, err)
	}
	if m == nil {
		m = make(map[string]json.RawMessage)
	}
	return m, nil
}

func (s *JSONFileStore) save(m map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store contents: %w", err)
	}
	if err := os.WriteFile(s.filename, data, 0644); err != nil {
		return fmt.Errorf("write store file %s: %w", s.filename, err)
	}
	return nil
}
