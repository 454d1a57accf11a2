// Package kvstore is the device-local storage for small opaque JSON
// blobs: the selected-address cache, the buy-now staging object. Values
// carry no schema version; readers must tolerate whatever was written.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is a single JSON file of key → raw value, rewritten wholesale on
// every mutation. Values are opaque to the store.
type Store struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read kv file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("parse kv file: %w", err)
		}
	}
	return s, nil
}

func (s *Store) Get(key string, out any) error {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()

	if !ok {
		return ErrKeyNotFound
	}
	return json.Unmarshal(raw, out)
}

func (s *Store) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal value: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flush()
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

func (s *Store) flush() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	// Write-then-rename so a crash mid-write never corrupts the file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
