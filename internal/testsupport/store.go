// Package testsupport provides shared fixtures for package tests: seeded
// stores, scripted prompters, and canned searchers.
package testsupport

import (
	"path/filepath"
	"testing"

	"reise/internal/stopcache"
)

// NewStore opens a file-backed store in a temp dir and seeds it with entries
// in the given order.
func NewStore(t testing.TB, entries ...stopcache.Entry) *stopcache.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stops.json")
	store := stopcache.Open(path, nil)
	for _, entry := range entries {
		if err := store.Save(entry.Key, entry.Place); err != nil {
			t.Fatalf("seed store with %q: %v", entry.Key, err)
		}
	}
	return store
}

// StopPlace builds a stop-type place record with the given id and name.
func StopPlace(id, name string) stopcache.Place {
	return stopcache.Place{
		ID:     id,
		Name:   name,
		County: "Oslo",
		Label:  name + ", Oslo",
		Layer:  "venue",
		IsStop: true,
	}
}
