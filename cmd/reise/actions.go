package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reise/internal/config"
	"reise/internal/entur"
	"reise/internal/flow"
	"reise/internal/normalize"
	"reise/internal/stopcache"
)

func runList(out io.Writer, store *stopcache.Store) error {
	entries := store.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No cached stops")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, []string{fmt.Sprint(i), entry.Key, entry.Place.ID})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Key", "Stop ID"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	))
	return nil
}

func runInfo(out io.Writer, store *stopcache.Store, args []string) error {
	token := strings.TrimSpace(strings.Join(args, " "))
	if token == "" {
		return fmt.Errorf("%w: --info needs a stop name or index", stopcache.ErrInvalidSyntax)
	}

	key, err := store.Resolve(token)
	if err != nil {
		return err
	}
	place, _ := store.Get(key)

	rows := [][]string{
		{"key", key},
		{"id", place.ID},
		{"name", place.Name},
		{"county", place.County},
		{"label", place.Label},
		{"layer", place.Layer},
		{"is_stop", strconv.FormatBool(place.IsStop)},
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Field", "Value"},
		rows,
		[]columnAlignment{alignLeft, alignLeft},
	))
	return nil
}

func runRename(out io.Writer, mutator *stopcache.Mutator, args []string) error {
	sep := -1
	for i, arg := range args {
		if arg == stopcache.RenameSeparator {
			sep = i
			break
		}
	}
	if sep < 0 {
		return fmt.Errorf("%w: rename requires the %q separator, e.g. reise -n oslo bussterminal : obterm",
			stopcache.ErrInvalidSyntax, stopcache.RenameSeparator)
	}

	oldName := strings.Join(args[:sep], " ")
	newName := strings.Join(args[sep+1:], " ")
	oldKey, err := mutator.Rename(oldName, newName)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Renamed %q -> %q\n", oldKey, strings.TrimSpace(newName))
	return nil
}

func runDelete(out io.Writer, mutator *stopcache.Mutator, args []string, force bool) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: --delete needs a stop name or indices", stopcache.ErrInvalidSyntax)
	}

	// Only an all-numeric argument list takes the index path; anything mixed
	// is treated as one joined name.
	allNumeric := true
	for _, arg := range args {
		if !stopcache.IsIndexToken(arg) {
			allNumeric = false
			break
		}
	}

	if allNumeric {
		result, err := mutator.DeleteIndices(args, force)
		if err != nil {
			return err
		}
		for _, skipped := range result.Skipped {
			fmt.Fprintf(out, "Skipping %s: %v\n", skipped.Token, skipped.Err)
		}
		if len(result.Removed) == 0 && len(result.Skipped) == 0 {
			fmt.Fprintln(out, "Canceled")
			return nil
		}
		for _, key := range result.Removed {
			fmt.Fprintf(out, "Deleted %q\n", key)
		}
		return nil
	}

	name := strings.Join(args, " ")
	key, deleted, err := mutator.Delete(name, force)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(out, "Canceled")
		return nil
	}
	fmt.Fprintf(out, "Deleted %q\n", key)
	return nil
}

func runClear(out io.Writer, store *stopcache.Store, mutator *stopcache.Mutator, force bool) error {
	if store.Len() == 0 {
		fmt.Fprintln(out, "Cache already empty")
		return nil
	}
	removed, cleared, err := mutator.Clear(force)
	if err != nil {
		return err
	}
	if !cleared {
		fmt.Fprintln(out, "Canceled")
		return nil
	}
	fmt.Fprintf(out, "Cache cleared (%d entries)\n", removed)
	return nil
}

func runSearch(cmd *cobra.Command, out io.Writer, resolver *flow.Flow, client *entur.Client, cfg config.Config, name string, modes []string, raw bool) error {
	outcome, err := resolver.Resolve(cmd.Context(), name, raw)
	if err != nil {
		return err
	}
	if !outcome.ShowDepartures() {
		return nil
	}

	board, err := client.Departures(cmd.Context(), outcome.Place.ID,
		time.Duration(cfg.TimeRange)*time.Second, cfg.DepartureCount)
	if err != nil {
		return err
	}

	departures := board.Departures
	if len(modes) > 0 {
		departures = filterModes(departures, modes)
		if len(departures) == 0 {
			fmt.Fprintf(out, "No %s departures from %s\n", strings.Join(modes, ", "), board.StopName)
			return nil
		}
	}
	if len(departures) == 0 {
		fmt.Fprintf(out, "No departures from %s\n", board.StopName)
		return nil
	}

	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(departures))
	for _, dep := range departures {
		rows = append(rows, []string{
			formatDepartureTime(dep.Time),
			colorizeLine(dep.Line, dep.Mode, colorize),
			dep.Destination,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Time", "Line", "Destination"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft},
	))
	return nil
}

func filterModes(departures []entur.Departure, modes []string) []entur.Departure {
	want := make(map[string]struct{}, len(modes))
	for _, mode := range modes {
		want[mode] = struct{}{}
	}
	var kept []entur.Departure
	for _, dep := range departures {
		if _, ok := want[normalize.Mode(dep.Mode)]; ok {
			kept = append(kept, dep)
		}
	}
	return kept
}
