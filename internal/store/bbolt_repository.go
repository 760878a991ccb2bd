package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"stride/internal/types"
)

var (
	bucketSession  = []byte("session")
	bucketAppState = []byte("app_state")
	keySession     = []byte("state")
	keyAppState    = []byte("state")
)

type bboltRepository struct {
	db       *bolt.DB
	session  SessionStore
	appState AppStateStore
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{
		db:       db,
		session:  &bboltSessionStore{db: db},
		appState: &bboltAppStateStore{db: db},
	}, nil
}

func (r *bboltRepository) Session() SessionStore   { return r.session }
func (r *bboltRepository) AppState() AppStateStore { return r.appState }
func (r *bboltRepository) Backend() string         { return BackendBbolt }

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSession); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketAppState)
		return err
	})
}

type bboltSessionStore struct {
	db *bolt.DB
}

func (s *bboltSessionStore) Load(ctx context.Context) (*types.SessionState, error) {
	state := &types.SessionState{}
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketSession).Get(keySession)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, state)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *bboltSessionStore) Save(ctx context.Context, state *types.SessionState) error {
	if state == nil {
		return errors.New("session state is required")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put(keySession, data)
	})
}

func (s *bboltSessionStore) Clear(ctx context.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(keySession)
	})
}

type bboltAppStateStore struct {
	db *bolt.DB
}

func (s *bboltAppStateStore) Load(ctx context.Context) (*types.AppState, error) {
	state := &types.AppState{}
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketAppState).Get(keyAppState)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, state)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *bboltAppStateStore) Save(ctx context.Context, state *types.AppState) error {
	if state == nil {
		return errors.New("state is required")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAppState).Put(keyAppState, data)
	})
}
