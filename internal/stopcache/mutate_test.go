package stopcache_test

import (
	"errors"
	"strings"
	"testing"

	"reise/internal/stopcache"
	"reise/internal/testsupport"
)

func threeStopStore(t *testing.T) *stopcache.Store {
	t.Helper()
	return testsupport.NewStore(t,
		stopcache.Entry{Key: "oslo s", Place: testsupport.StopPlace("NSR:StopPlace:337", "Oslo S")},
		stopcache.Entry{Key: "skøyen", Place: testsupport.StopPlace("NSR:StopPlace:59", "Skøyen")},
		stopcache.Entry{Key: "majorstuen", Place: testsupport.StopPlace("NSR:StopPlace:58404", "Majorstuen")},
	)
}

func TestDeleteByName(t *testing.T) {
	store := threeStopStore(t)
	prompter := testsupport.NewPrompter(t).WillConfirm(true)
	mutator := stopcache.NewMutator(store, prompter, nil)

	key, deleted, err := mutator.Delete("skoyen", false)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted || key != "skøyen" {
		t.Errorf("Delete = (%q, %v)", key, deleted)
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
}

func TestDeleteDeclinedIsCanceledNotError(t *testing.T) {
	store := threeStopStore(t)
	prompter := testsupport.NewPrompter(t).WillConfirm(false)
	mutator := stopcache.NewMutator(store, prompter, nil)

	key, deleted, err := mutator.Delete("oslo s", false)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted {
		t.Error("declined delete must not remove the entry")
	}
	if key != "oslo s" {
		t.Errorf("key = %q", key)
	}
	if store.Len() != 3 {
		t.Errorf("Len = %d, want 3", store.Len())
	}
}

func TestDeleteForceSkipsConfirmation(t *testing.T) {
	store := threeStopStore(t)
	prompter := testsupport.NewPrompter(t) // no scripted answers: any prompt fails the test
	mutator := stopcache.NewMutator(store, prompter, nil)

	if _, deleted, err := mutator.Delete("majorstuen", true); err != nil || !deleted {
		t.Fatalf("forced Delete = (%v, %v)", deleted, err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	store := threeStopStore(t)
	mutator := stopcache.NewMutator(store, testsupport.NewPrompter(t), nil)

	_, _, err := mutator.Delete("bergen", true)
	if !errors.Is(err, stopcache.ErrNotFound) {
		t.Errorf("Delete = %v, want ErrNotFound", err)
	}
}

func TestDeleteIndicesBatch(t *testing.T) {
	store := threeStopStore(t)
	mutator := stopcache.NewMutator(store, testsupport.NewPrompter(t), nil)

	// Ascending input order must not shift positions mid-batch.
	result, err := mutator.DeleteIndices([]string{"0", "2"}, true)
	if err != nil {
		t.Fatalf("DeleteIndices: %v", err)
	}
	if len(result.Removed) != 2 {
		t.Fatalf("Removed = %v", result.Removed)
	}
	keys := store.Keys()
	if len(keys) != 1 || keys[0] != "skøyen" {
		t.Errorf("remaining keys = %v, want [skøyen]", keys)
	}

	// The single end-of-batch persist must reflect exactly one entry.
	reopened := stopcache.Open(store.Path(), nil)
	if got := reopened.Keys(); len(got) != 1 || got[0] != "skøyen" {
		t.Errorf("persisted keys = %v, want [skøyen]", got)
	}
}

func TestDeleteIndicesDuplicateTokensRemoveOnce(t *testing.T) {
	store := threeStopStore(t)
	mutator := stopcache.NewMutator(store, testsupport.NewPrompter(t), nil)

	result, err := mutator.DeleteIndices([]string{"1", "1"}, true)
	if err != nil {
		t.Fatalf("DeleteIndices: %v", err)
	}
	if len(result.Removed) != 1 || result.Removed[0] != "skøyen" {
		t.Fatalf("Removed = %v, want [skøyen]", result.Removed)
	}
	keys := store.Keys()
	if len(keys) != 2 || keys[0] != "oslo s" || keys[1] != "majorstuen" {
		t.Errorf("remaining keys = %v, want [oslo s majorstuen]", keys)
	}
}

func TestDeleteIndicesConfirmationCountsResolvable(t *testing.T) {
	store := threeStopStore(t)
	prompter := testsupport.NewPrompter(t).WillConfirm(true)
	mutator := stopcache.NewMutator(store, prompter, nil)

	// One out-of-range token and one duplicate: only a single entry can
	// actually go, and the question must say so.
	result, err := mutator.DeleteIndices([]string{"7", "1", "1"}, false)
	if err != nil {
		t.Fatalf("DeleteIndices: %v", err)
	}
	if len(prompter.Questions) != 1 || !strings.Contains(prompter.Questions[0], "1 cached entry") {
		t.Errorf("questions = %v, want count of resolvable indices", prompter.Questions)
	}
	if len(result.Removed) != 1 || result.Removed[0] != "skøyen" {
		t.Errorf("Removed = %v", result.Removed)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Token != "7" {
		t.Errorf("Skipped = %+v", result.Skipped)
	}
}

func TestDeleteIndicesSkipsOutOfRange(t *testing.T) {
	store := threeStopStore(t)
	mutator := stopcache.NewMutator(store, testsupport.NewPrompter(t), nil)

	result, err := mutator.DeleteIndices([]string{"7", "1"}, true)
	if err != nil {
		t.Fatalf("DeleteIndices: %v", err)
	}
	if len(result.Removed) != 1 || result.Removed[0] != "skøyen" {
		t.Errorf("Removed = %v", result.Removed)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Token != "7" {
		t.Fatalf("Skipped = %+v", result.Skipped)
	}
	if !errors.Is(result.Skipped[0].Err, stopcache.ErrOutOfRange) {
		t.Errorf("skip reason = %v, want ErrOutOfRange", result.Skipped[0].Err)
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
}

func TestRename(t *testing.T) {
	store := threeStopStore(t)
	mutator := stopcache.NewMutator(store, testsupport.NewPrompter(t), nil)

	oldKey, err := mutator.Rename("Oslo-S", "obterm")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if oldKey != "oslo s" {
		t.Errorf("oldKey = %q", oldKey)
	}
	if _, ok := store.Get("oslo s"); ok {
		t.Error("old key still present after rename")
	}
	place, ok := store.Get("obterm")
	if !ok {
		t.Fatal("new key missing after rename")
	}
	if place.ID != "NSR:StopPlace:337" {
		t.Errorf("stored place changed: %+v", place)
	}
}

func TestRenameCollisionLeavesBothUntouched(t *testing.T) {
	store := threeStopStore(t)
	mutator := stopcache.NewMutator(store, testsupport.NewPrompter(t), nil)

	_, err := mutator.Rename("oslo s", "skøyen")
	if !errors.Is(err, stopcache.ErrCollision) {
		t.Fatalf("Rename = %v, want ErrCollision", err)
	}
	if p, ok := store.Get("oslo s"); !ok || p.ID != "NSR:StopPlace:337" {
		t.Error("source entry changed by failed rename")
	}
	if p, ok := store.Get("skøyen"); !ok || p.ID != "NSR:StopPlace:59" {
		t.Error("target entry changed by failed rename")
	}
}

func TestRenameNotFound(t *testing.T) {
	store := threeStopStore(t)
	mutator := stopcache.NewMutator(store, testsupport.NewPrompter(t), nil)

	_, err := mutator.Rename("bergen", "somewhere")
	if !errors.Is(err, stopcache.ErrNotFound) {
		t.Fatalf("Rename = %v, want ErrNotFound", err)
	}
	if store.Len() != 3 {
		t.Error("failed rename mutated the store")
	}
}

func TestRenameEmptySides(t *testing.T) {
	store := threeStopStore(t)
	mutator := stopcache.NewMutator(store, testsupport.NewPrompter(t), nil)

	for _, tc := range [][2]string{{"", "new"}, {"oslo s", ""}, {"  ", "  "}} {
		if _, err := mutator.Rename(tc[0], tc[1]); !errors.Is(err, stopcache.ErrInvalidSyntax) {
			t.Errorf("Rename(%q, %q) = %v, want ErrInvalidSyntax", tc[0], tc[1], err)
		}
	}
}

// Rename resolves the old side by name only; digits are treated as a literal
// name and miss.
func TestRenameRejectsIndexToken(t *testing.T) {
	store := threeStopStore(t)
	mutator := stopcache.NewMutator(store, testsupport.NewPrompter(t), nil)

	if _, err := mutator.Rename("0", "first"); !errors.Is(err, stopcache.ErrNotFound) {
		t.Errorf("Rename(0) = %v, want ErrNotFound", err)
	}
}

func TestClear(t *testing.T) {
	store := threeStopStore(t)
	prompter := testsupport.NewPrompter(t).WillConfirm(true)
	mutator := stopcache.NewMutator(store, prompter, nil)

	removed, cleared, err := mutator.Clear(false)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if !cleared || removed != 3 {
		t.Errorf("Clear = (%d, %v)", removed, cleared)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
	if len(prompter.Questions) != 1 || !strings.Contains(prompter.Questions[0], "3") {
		t.Errorf("confirmation must name the entry count, got %v", prompter.Questions)
	}
}

func TestClearEmptyStoreIsNoOpWithoutConfirmation(t *testing.T) {
	store := testsupport.NewStore(t)
	prompter := testsupport.NewPrompter(t) // any prompt fails the test
	mutator := stopcache.NewMutator(store, prompter, nil)

	removed, cleared, err := mutator.Clear(false)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cleared || removed != 0 {
		t.Errorf("Clear on empty store = (%d, %v), want no-op", removed, cleared)
	}
}
