package testsupport

import (
	"context"
	"testing"

	"pemm/internal/config"
	"pemm/internal/store"
)

// MustOpenStore opens the run database configured in cfg and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(context.Background(), cfg.Database.Path)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}
