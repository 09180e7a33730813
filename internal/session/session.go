package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/avaldes/blogboard/internal/model"
)

// ErrNoSession is returned when no current-user record has been saved.
var ErrNoSession = fmt.Errorf("no active session")

// Store keeps the single serialized current-user record for the lifetime of
// a session. It is written on successful login and read by downstream
// consumers; there is no server-side token behind it.
type Store struct {
	path string

	mu      sync.Mutex
	current *model.User
}

// NewStore creates a session store persisting to path. An empty path keeps
// the record in memory only.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save records user as the current identity and, when a path is configured,
// serializes it to disk.
func (s *Store) Save(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &user

	if s.path == "" {
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating session directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}

	return nil
}

// Load returns the current user, reading the serialized record from disk if
// this process has not saved one yet. Returns ErrNoSession when nothing has
// been saved.
func (s *Store) Load() (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		user := *s.current
		return &user, nil
	}

	if s.path == "" {
		return nil, ErrNoSession
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decoding session file: %w", err)
	}

	s.current = &user
	copied := user
	return &copied, nil
}

// Clear forgets the current user and removes the serialized record.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	if s.path == "" {
		return nil
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}

	return nil
}
