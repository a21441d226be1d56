package testsupport

import (
	"testing"

	"github.com/carolinebinley/ml-learning-alignment/internal/config"
	"github.com/carolinebinley/ml-learning-alignment/internal/runstore"
)

// MustOpenStore opens a runstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *runstore.Store {
	t.Helper()

	store, err := runstore.Open(cfg.Runs.Dir)
	if err != nil {
		t.Fatalf("runstore.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
