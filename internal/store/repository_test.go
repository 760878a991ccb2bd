package store

import (
	"context"
	"path/filepath"
	"testing"

	"stride/internal/types"
)

func testRepositories(t *testing.T) map[string]Repository {
	t.Helper()
	dir := t.TempDir()
	filePaths := RepositoryPaths{
		SessionPath:  filepath.Join(dir, "session.json"),
		AppStatePath: filepath.Join(dir, "state.json"),
	}
	boltRepo, err := NewBboltRepository(filepath.Join(dir, "stride.db"))
	if err != nil {
		t.Fatalf("NewBboltRepository error: %v", err)
	}
	t.Cleanup(func() { _ = boltRepo.Close() })
	return map[string]Repository{
		BackendFile:  NewFileRepository(filePaths),
		BackendBbolt: boltRepo,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			exists := true
			saved := &types.SessionState{Token: "jwt", ProfileExists: &exists}
			if err := repo.Session().Save(ctx, saved); err != nil {
				t.Fatalf("Save error: %v", err)
			}

			loaded, err := repo.Session().Load(ctx)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if loaded.Token != "jwt" {
				t.Fatalf("unexpected token %q", loaded.Token)
			}
			if loaded.ProfileExists == nil || !*loaded.ProfileExists {
				t.Fatalf("unexpected profile flag %v", loaded.ProfileExists)
			}
			if !loaded.Authenticated() {
				t.Fatalf("expected loaded session to be authenticated")
			}
		})
	}
}

func TestSessionClear(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := repo.Session().Save(ctx, &types.SessionState{Token: "jwt"}); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			if err := repo.Session().Clear(ctx); err != nil {
				t.Fatalf("Clear error: %v", err)
			}
			loaded, err := repo.Session().Load(ctx)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if loaded.Authenticated() {
				t.Fatalf("expected cleared session, got %+v", loaded)
			}
			if loaded.ProfileExists != nil {
				t.Fatalf("expected profile flag reset to unknown")
			}
			// Clearing an already-empty store is a no-op, not an error.
			if err := repo.Session().Clear(ctx); err != nil {
				t.Fatalf("second Clear error: %v", err)
			}
		})
	}
}

func TestLoadWithoutSavedState(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			session, err := repo.Session().Load(ctx)
			if err != nil {
				t.Fatalf("session Load error: %v", err)
			}
			if session.Authenticated() {
				t.Fatalf("expected empty session")
			}
			state, err := repo.AppState().Load(ctx)
			if err != nil {
				t.Fatalf("app state Load error: %v", err)
			}
			if state.LastRouteID != "" {
				t.Fatalf("expected empty app state")
			}
		})
	}
}

func TestAppStateRoundTrip(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			saved := &types.AppState{LastRouteID: "route-3", DefaultActivity: "RUNNING"}
			if err := repo.AppState().Save(ctx, saved); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			loaded, err := repo.AppState().Load(ctx)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if loaded.LastRouteID != "route-3" || loaded.DefaultActivity != "RUNNING" {
				t.Fatalf("unexpected app state %+v", loaded)
			}
		})
	}
}

func TestOpenFallsBackToFileBackend(t *testing.T) {
	dir := t.TempDir()
	repo, err := Open("unknown", RepositoryPaths{
		SessionPath:  filepath.Join(dir, "session.json"),
		AppStatePath: filepath.Join(dir, "state.json"),
	})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer repo.Close()
	if repo.Backend() != BackendFile {
		t.Fatalf("unexpected backend %q", repo.Backend())
	}
}
