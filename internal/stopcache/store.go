package stopcache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"reise/internal/logging"
)

// Place is the record stored for a resolved stop. It is a structural copy of
// the winning search result at save time and is never refreshed remotely.
type Place struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	County string `json:"county"`
	Label  string `json:"label"`
	Layer  string `json:"layer"`
	IsStop bool   `json:"is_stop"`
}

// Entry pairs a display key with its stored place.
type Entry struct {
	Key   string
	Place Place
}

// Store is the insertion-ordered display-key to place mapping. It is the
// sole owner of cache entries; commands mutate it through the Mutator and
// the disambiguation flow. Not safe for concurrent use within a process;
// concurrent invocations serialize file access through a flock.
type Store struct {
	path    string
	logger  *slog.Logger
	lock    *flock.Flock
	keys    []string
	entries map[string]Place
}

// Open loads the store from path. A missing or corrupt file yields an empty
// store with a warning, never an error. An empty path keeps the store purely
// in memory (used by tests).
func Open(path string, logger *slog.Logger) *Store {
	logger = logging.NewComponentLogger(logger, "stopcache")

	s := &Store{
		path:    path,
		logger:  logger,
		entries: make(map[string]Place),
	}
	if path == "" {
		return s
	}
	s.lock = flock.New(path + ".lock")

	if err := s.load(); err != nil {
		logger.Warn("cache load failed, starting empty",
			logging.String("path", path),
			logging.Error(err))
		s.keys = nil
		s.entries = make(map[string]Place)
	}
	return s
}

// Len returns the number of cached entries.
func (s *Store) Len() int { return len(s.keys) }

// Path returns the file the store persists to.
func (s *Store) Path() string { return s.path }

// Keys returns the display keys in insertion order.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Get returns the place stored under the exact display key.
func (s *Store) Get(key string) (Place, bool) {
	place, ok := s.entries[key]
	return place, ok
}

// Entries returns all cache entries in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.keys))
	for _, key := range s.keys {
		out = append(out, Entry{Key: key, Place: s.entries[key]})
	}
	return out
}

// FindByID returns the display keys of every entry whose stored remote id
// equals id, in insertion order.
func (s *Store) FindByID(id string) []string {
	var keys []string
	for _, key := range s.keys {
		if s.entries[key].ID == id {
			keys = append(keys, key)
		}
	}
	return keys
}

// Save inserts a new entry under key and persists the store. The key must
// not already exist (exact string equality).
func (s *Store) Save(key string, place Place) error {
	if _, exists := s.entries[key]; exists {
		return fmt.Errorf("%w: %q", ErrCollision, key)
	}
	s.keys = append(s.keys, key)
	s.entries[key] = place

	if err := s.Persist(); err != nil {
		return err
	}
	s.logger.Debug("saved cache entry",
		logging.String("key", key),
		logging.String("stop_id", place.ID))
	return nil
}

// remove drops key from the store without persisting. The caller persists
// once per logical mutation.
func (s *Store) remove(key string) {
	if _, exists := s.entries[key]; !exists {
		return
	}
	delete(s.entries, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Persist writes the whole store to its file as a single JSON document,
// atomically via a temp file, holding the file lock for the duration.
func (s *Store) Persist() error {
	if s.path == "" {
		return nil
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("%w: lock: %v", ErrPersistence, err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("release cache lock failed", logging.Error(err))
		}
	}()

	data, err := s.encode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// encode renders the store as a JSON object whose member order follows the
// store's insertion order, so index addressing survives a restart.
func (s *Store) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		placeJSON, err := json.MarshalIndent(s.entries[key], "  ", "  ")
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n  ")
		buf.Write(keyJSON)
		buf.WriteString(": ")
		buf.Write(placeJSON)
	}
	if len(s.keys) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func (s *Store) load() error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock cache file: %w", err)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	// Token-wise decode keeps the document's member order as the store's
	// insertion order.
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("parse cache file: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parse cache file: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("parse cache file: non-string key %v", keyTok)
		}
		var place Place
		if err := dec.Decode(&place); err != nil {
			return fmt.Errorf("parse cache entry %q: %w", key, err)
		}
		if _, exists := s.entries[key]; exists {
			continue
		}
		s.keys = append(s.keys, key)
		s.entries[key] = place
	}

	s.logger.Debug("loaded stop cache",
		logging.Int("entries", len(s.keys)),
		logging.String("path", s.path))
	return nil
}
