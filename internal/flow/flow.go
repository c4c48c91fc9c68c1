// Package flow orchestrates stop resolution: cache lookup first, then remote
// search, candidate filtering, user disambiguation, duplicate detection, and
// finally persisting the winner. Presentation and prompting are injected so
// the flow runs identically under tests.
package flow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"reise/internal/logging"
	"reise/internal/prompt"
	"reise/internal/stopcache"
)

// Searcher is the remote place search collaborator.
type Searcher interface {
	Search(ctx context.Context, text string) ([]stopcache.Place, error)
}

// State is the terminal state of one resolution.
type State int

const (
	// StateCached means an existing cache entry answered the query.
	StateCached State = iota
	// StateSaved means a freshly chosen place was saved to the cache.
	StateSaved
	// StateReused means the chosen place matched an existing entry's id.
	StateReused
	// StateNoResults means the search returned no stop places.
	StateNoResults
	// StateCanceled means the user declined to choose.
	StateCanceled
)

// Outcome reports how a resolution ended and, when successful, which entry
// won.
type Outcome struct {
	State State
	Key   string
	Place stopcache.Place
}

// ShowDepartures reports whether the resolution produced a stop to query.
func (o Outcome) ShowDepartures() bool {
	switch o.State {
	case StateCached, StateSaved, StateReused:
		return true
	default:
		return false
	}
}

// Options wires a Flow to its collaborators.
type Options struct {
	Store     *stopcache.Store
	Search    Searcher
	Prompter  prompt.Prompter
	Out       io.Writer
	Render    func(w io.Writer, places []stopcache.Place)
	HintLimit int
	Logger    *slog.Logger
}

// Flow resolves one user token into at most one cache entry.
type Flow struct {
	store    *stopcache.Store
	search   Searcher
	prompter prompt.Prompter
	out      io.Writer
	render   func(w io.Writer, places []stopcache.Place)
	hints    int
	logger   *slog.Logger
}

// New constructs a Flow.
func New(opts Options) *Flow {
	render := opts.Render
	if render == nil {
		render = func(io.Writer, []stopcache.Place) {}
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Flow{
		store:    opts.Store,
		search:   opts.Search,
		prompter: opts.Prompter,
		out:      out,
		render:   render,
		hints:    opts.HintLimit,
		logger:   logging.NewComponentLogger(opts.Logger, "flow"),
	}
}

// Resolve turns a user token into a cache entry. A purely numeric token only
// ever addresses a cache position; raw mode skips cache resolution and
// always searches, though a chosen place whose id is already cached is still
// reused rather than duplicated.
func (f *Flow) Resolve(ctx context.Context, token string, raw bool) (Outcome, error) {
	token = strings.TrimSpace(token)

	if stopcache.IsIndexToken(token) {
		key, err := f.store.Resolve(token)
		if err != nil {
			return Outcome{}, err
		}
		place, _ := f.store.Get(key)
		return Outcome{State: StateCached, Key: key, Place: place}, nil
	}

	if !raw {
		key, err := f.store.Resolve(token)
		switch {
		case err == nil && key == token:
			place, _ := f.store.Get(key)
			return Outcome{State: StateCached, Key: key, Place: place}, nil
		case err == nil:
			// Fuzzy hit: confirm before trusting the cached entry.
			useCached, perr := f.prompter.Confirm(fmt.Sprintf("Already saved as %q, use cached entry?", key), true)
			if perr != nil {
				return Outcome{}, perr
			}
			if useCached {
				place, _ := f.store.Get(key)
				return Outcome{State: StateCached, Key: key, Place: place}, nil
			}
		case !errors.Is(err, stopcache.ErrNotFound):
			return Outcome{}, err
		}
	}

	return f.searchAndChoose(ctx, token)
}

func (f *Flow) searchAndChoose(ctx context.Context, token string) (Outcome, error) {
	places, err := f.search.Search(ctx, token)
	if err != nil {
		return Outcome{}, err
	}

	var stops []int
	for i, p := range places {
		if p.IsStop {
			stops = append(stops, i)
		}
	}
	if len(stops) == 0 {
		fmt.Fprintf(f.out, "No stop places found for %q\n", token)
		for i, p := range places {
			if i >= f.hints {
				break
			}
			fmt.Fprintf(f.out, "  %s\n", p.Label)
		}
		return Outcome{State: StateNoResults}, nil
	}

	var chosen stopcache.Place
	presented := false
	if len(stops) == 1 {
		chosen = places[stops[0]]
	} else {
		f.render(f.out, places)
		presented = true
		choice, canceled, err := f.prompter.Select("Pick a stop", stops)
		if err != nil {
			return Outcome{}, err
		}
		if canceled {
			return Outcome{State: StateCanceled}, nil
		}
		chosen = places[choice]
	}

	existing := f.store.FindByID(chosen.ID)
	switch {
	case len(existing) == 1:
		key := existing[0]
		fmt.Fprintf(f.out, "Reusing cached entry %q for %s\n", key, chosen.ID)
		place, _ := f.store.Get(key)
		return Outcome{State: StateReused, Key: key, Place: place}, nil
	case len(existing) > 1:
		// Several entries already share this id; automatic reuse would be
		// ambiguous, so the user confirms against the full result set.
		fmt.Fprintf(f.out, "Multiple cached entries share %s; pick the stop explicitly\n", chosen.ID)
		if !presented {
			f.render(f.out, places)
			choice, canceled, err := f.prompter.Select("Pick a stop", stops)
			if err != nil {
				return Outcome{}, err
			}
			if canceled {
				return Outcome{State: StateCanceled}, nil
			}
			chosen = places[choice]
		}
	}

	return f.saveChosen(chosen)
}

func (f *Flow) saveChosen(chosen stopcache.Place) (Outcome, error) {
	key, reused, err := f.saveUnderFreeKey(chosen)
	if err != nil {
		return Outcome{}, err
	}
	if reused {
		fmt.Fprintf(f.out, "Reusing cached entry %q for %s\n", key, chosen.ID)
		place, _ := f.store.Get(key)
		return Outcome{State: StateReused, Key: key, Place: place}, nil
	}
	fmt.Fprintf(f.out, "Saved %q -> %s\n", key, chosen.ID)
	f.logger.Debug("saved resolved stop",
		logging.String("key", key),
		logging.String("stop_id", chosen.ID))
	return Outcome{State: StateSaved, Key: key, Place: chosen}, nil
}

// saveUnderFreeKey derives the display key from the place name, widening
// with the county when the plain name is taken by a different stop. A taken
// key holding the same id answers as a reuse; nothing is written then.
func (f *Flow) saveUnderFreeKey(chosen stopcache.Place) (key string, reused bool, err error) {
	candidates := []string{strings.ToLower(chosen.Name)}
	if county := strings.ToLower(strings.TrimSpace(chosen.County)); county != "" {
		candidates = append(candidates, strings.ToLower(chosen.Name)+" "+county)
	}

	for _, key := range candidates {
		err := f.store.Save(key, chosen)
		if err == nil {
			return key, false, nil
		}
		if !errors.Is(err, stopcache.ErrCollision) {
			return "", false, err
		}
		if held, ok := f.store.Get(key); ok && held.ID == chosen.ID {
			return key, true, nil
		}
	}
	return "", false, fmt.Errorf("%w: no free display key for %q", stopcache.ErrCollision, chosen.Name)
}
