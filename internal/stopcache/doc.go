// Package stopcache owns the local name-to-stop cache: an insertion-ordered
// mapping from display key to the place record chosen for that name. It
// provides the token resolver (numeric index or fuzzy name) and the mutating
// operations (save, rename, delete, clear), each persisting the full store
// to its JSON file after a successful change.
//
// The persisted document is a single JSON object mapping display key to the
// stored place. A missing or unreadable file yields an empty store, never an
// error; failing to write the file is surfaced to the caller.
package stopcache
