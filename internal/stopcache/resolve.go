package stopcache

import (
	"fmt"
	"strconv"

	"reise/internal/normalize"
)

// IsIndexToken reports whether token is composed entirely of decimal digits.
// Such tokens always address a cache position and are never fuzzy-matched.
func IsIndexToken(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Resolve maps a user token to the display key of at most one cache entry.
// An all-digit token is an index into the store's insertion order; anything
// else is matched by normalized-key equality, first entry in store order
// winning.
func (s *Store) Resolve(token string) (string, error) {
	if IsIndexToken(token) {
		idx, err := strconv.Atoi(token)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrOutOfRange, token)
		}
		return s.keyAt(idx)
	}

	want := normalize.Key(token)
	for _, key := range s.keys {
		if normalize.Key(key) == want {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, token)
}

func (s *Store) keyAt(idx int) (string, error) {
	if idx < 0 || idx >= len(s.keys) {
		return "", fmt.Errorf("%w: %d (cache has %d entries)", ErrOutOfRange, idx, len(s.keys))
	}
	return s.keys[idx], nil
}
