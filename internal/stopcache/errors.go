package stopcache

import "errors"

var (
	// ErrNotFound reports a token that resolved to no cache entry.
	ErrNotFound = errors.New("not found in cache")
	// ErrCollision reports a save or rename target key that already exists.
	ErrCollision = errors.New("key already exists")
	// ErrInvalidSyntax reports a malformed rename or empty argument list.
	ErrInvalidSyntax = errors.New("invalid syntax")
	// ErrOutOfRange reports a numeric index beyond the store size.
	ErrOutOfRange = errors.New("index out of range")
	// ErrPersistence reports a failed cache write.
	ErrPersistence = errors.New("persist cache")
)
