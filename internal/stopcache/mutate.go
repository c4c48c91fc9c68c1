package stopcache

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"reise/internal/logging"
	"reise/internal/normalize"
	"reise/internal/prompt"
)

// RenameSeparator splits a rename argument list into its old and new sides.
const RenameSeparator = ":"

// Mutator applies the destructive cache operations, enforcing existence and
// collision invariants and asking for confirmation through the injected
// prompter unless forced.
type Mutator struct {
	store    *Store
	prompter prompt.Prompter
	logger   *slog.Logger
}

// NewMutator wires a mutator to its store and prompter.
func NewMutator(store *Store, prompter prompt.Prompter, logger *slog.Logger) *Mutator {
	return &Mutator{
		store:    store,
		prompter: prompter,
		logger:   logging.NewComponentLogger(logger, "mutator"),
	}
}

// Delete removes the entry the token resolves to. Unless force is set the
// user confirms first; declining cancels without error (deleted=false). The
// resolved display key is returned either way so callers can report it.
func (m *Mutator) Delete(token string, force bool) (key string, deleted bool, err error) {
	key, err = m.store.Resolve(token)
	if err != nil {
		return "", false, err
	}

	if !force {
		ok, err := m.prompter.Confirm(fmt.Sprintf("Delete %q?", key), false)
		if err != nil {
			return key, false, err
		}
		if !ok {
			return key, false, nil
		}
	}

	m.store.remove(key)
	if err := m.store.Persist(); err != nil {
		return key, false, err
	}
	m.logger.Debug("deleted cache entry", logging.String("key", key))
	return key, true, nil
}

// SkippedIndex records one out-of-range token from a batch delete.
type SkippedIndex struct {
	Token string
	Err   error
}

// BatchResult reports the outcome of an index batch delete.
type BatchResult struct {
	Removed []string
	Skipped []SkippedIndex
}

// DeleteIndices deletes one entry per numeric token. Every index resolves to
// its display key before anything is removed, so earlier removals cannot
// shift positions still pending; a repeated index collapses to one removal
// and out-of-range tokens are skipped, not fatal. The store persists once
// after the whole batch, and only if something was removed.
func (m *Mutator) DeleteIndices(tokens []string, force bool) (BatchResult, error) {
	var result BatchResult

	seen := make(map[int]struct{}, len(tokens))
	keys := make([]string, 0, len(tokens))
	for _, token := range tokens {
		idx, err := strconv.Atoi(token)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedIndex{Token: token, Err: fmt.Errorf("%w: %q", ErrOutOfRange, token)})
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		key, err := m.store.keyAt(idx)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedIndex{Token: token, Err: err})
			continue
		}
		keys = append(keys, key)
	}

	if !force && len(keys) > 0 {
		noun := "entries"
		if len(keys) == 1 {
			noun = "entry"
		}
		ok, err := m.prompter.Confirm(fmt.Sprintf("Delete %d cached %s?", len(keys), noun), false)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
	}

	for _, key := range keys {
		m.store.remove(key)
		result.Removed = append(result.Removed, key)
	}

	if len(result.Removed) > 0 {
		if err := m.store.Persist(); err != nil {
			return result, err
		}
		m.logger.Debug("deleted cache entries by index",
			logging.Int("removed", len(result.Removed)),
			logging.Int("skipped", len(result.Skipped)))
	}
	return result, nil
}

// Rename moves the entry resolved from oldToken to newKey, keeping the
// stored place unchanged. The old side resolves by fuzzy match only; the new
// key must not already exist.
func (m *Mutator) Rename(oldToken, newKey string) (oldKey string, err error) {
	oldToken = strings.TrimSpace(oldToken)
	newKey = strings.TrimSpace(newKey)
	if oldToken == "" || newKey == "" {
		return "", fmt.Errorf("%w: rename needs a name on both sides of %q", ErrInvalidSyntax, RenameSeparator)
	}

	want := oldToken
	oldKey = ""
	for _, key := range m.store.keys {
		if fuzzyEqual(key, want) {
			oldKey = key
			break
		}
	}
	if oldKey == "" {
		return "", fmt.Errorf("%w: %q", ErrNotFound, oldToken)
	}

	if _, exists := m.store.entries[newKey]; exists {
		return oldKey, fmt.Errorf("%w: %q", ErrCollision, newKey)
	}

	place := m.store.entries[oldKey]
	m.store.remove(oldKey)
	m.store.keys = append(m.store.keys, newKey)
	m.store.entries[newKey] = place

	if err := m.store.Persist(); err != nil {
		return oldKey, err
	}
	m.logger.Debug("renamed cache entry",
		logging.String("from", oldKey),
		logging.String("to", newKey))
	return oldKey, nil
}

// Clear removes every entry. An already empty store is a no-op and asks no
// question. Returns the number of entries removed and whether the clear ran.
func (m *Mutator) Clear(force bool) (removed int, cleared bool, err error) {
	count := m.store.Len()
	if count == 0 {
		return 0, false, nil
	}

	if !force {
		noun := "entries"
		if count == 1 {
			noun = "entry"
		}
		ok, err := m.prompter.Confirm(fmt.Sprintf("Clear ALL %d cached %s?", count, noun), false)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return 0, false, nil
		}
	}

	m.store.keys = nil
	m.store.entries = make(map[string]Place)
	if err := m.store.Persist(); err != nil {
		return 0, false, err
	}
	m.logger.Debug("cleared cache", logging.Int("removed", count))
	return count, true, nil
}

func fuzzyEqual(a, b string) bool {
	return normalize.Key(a) == normalize.Key(b)
}
