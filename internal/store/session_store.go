package store

import (
	"context"
	"errors"
	"os"
	"sync"

	"stride/internal/types"
)

// SessionStore persists the auth credential and the profile-exists flag
// across restarts. Mutations happen only through Save and Clear.
type SessionStore interface {
	Load(ctx context.Context) (*types.SessionState, error)
	Save(ctx context.Context, state *types.SessionState) error
	Clear(ctx context.Context) error
}

type FileSessionStore struct {
	path string
	mu   sync.Mutex
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Load(ctx context.Context) (*types.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &types.SessionState{}
	if err := readJSON(s.path, state); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return nil, err
	}
	return state, nil
}

func (s *FileSessionStore) Save(ctx context.Context, state *types.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == nil {
		return errors.New("session state is required")
	}
	return writeJSONAtomic(s.path, state)
}

func (s *FileSessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeIfExists(s.path)
}
