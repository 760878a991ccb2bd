package store

import "fmt"

const (
	BackendFile  = "file"
	BackendBbolt = "bbolt"
)

// Repository bundles the durable client stores. Only the session credential
// and UI preferences live here; execution state is always re-derived from
// the backend.
type Repository interface {
	Session() SessionStore
	AppState() AppStateStore
	Backend() string
	Close() error
}

type RepositoryPaths struct {
	SessionPath  string
	AppStatePath string
	DBPath       string
}

// Open selects a backend by name. Unknown names fall back to the file
// backend rather than failing startup.
func Open(backend string, paths RepositoryPaths) (Repository, error) {
	switch backend {
	case BackendBbolt:
		repo, err := NewBboltRepository(paths.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open bbolt repository: %w", err)
		}
		return repo, nil
	default:
		return NewFileRepository(paths), nil
	}
}

type fileRepository struct {
	session  SessionStore
	appState AppStateStore
}

func NewFileRepository(paths RepositoryPaths) Repository {
	return &fileRepository{
		session:  NewFileSessionStore(paths.SessionPath),
		appState: NewFileAppStateStore(paths.AppStatePath),
	}
}

func (r *fileRepository) Session() SessionStore   { return r.session }
func (r *fileRepository) AppState() AppStateStore { return r.appState }
func (r *fileRepository) Backend() string         { return BackendFile }
func (r *fileRepository) Close() error            { return nil }
