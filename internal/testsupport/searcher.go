package testsupport

import (
	"context"

	"reise/internal/stopcache"
)

// StubSearcher returns a canned result set for every search, recording the
// query text.
type StubSearcher struct {
	Places  []stopcache.Place
	Err     error
	Queries []string
}

func (s *StubSearcher) Search(ctx context.Context, text string) ([]stopcache.Place, error) {
	s.Queries = append(s.Queries, text)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Places, nil
}
