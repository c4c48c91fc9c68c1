package main

import (
	"github.com/spf13/cobra"
)

const version = "0.3.0"

type rootOptions struct {
	version    bool
	list       bool
	info       bool
	rename     bool
	delete     bool
	clearCache bool
	raw        bool
	force      bool

	bus   bool
	metro bool
	tram  bool
	water bool
	train bool
	air   bool

	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "reise [flags] [stop name...]",
		Short: "Norwegian public transport departures from the command line",
		Long: `reise looks up departures for Norwegian public transport stops using the
Entur APIs. Searched stops are cached locally under their name, so the next
lookup is instant; cached entries can be listed, inspected, renamed, and
deleted by name or by list position.`,
		Example: `  reise oslo lufthavn
  reise skøyen -mt
  reise -n oslo bussterminal : obterm
  reise -df 0 2`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.version, "version", "v", false, "Print version number and exit")
	flags.BoolVarP(&opts.list, "list", "l", false, "List all cached stops")
	flags.BoolVarP(&opts.info, "info", "i", false, "Show info about a cached stop")
	flags.BoolVarP(&opts.rename, "rename", "n", false, "Rename a cached stop using ':' separator")
	flags.BoolVarP(&opts.delete, "delete", "d", false, "Delete stops from the cache by name or index")
	flags.BoolVarP(&opts.clearCache, "clear-cache", "c", false, "Clear all cached stops")

	flags.BoolVarP(&opts.bus, "bus", "b", false, "Only show buses")
	flags.BoolVarP(&opts.metro, "metro", "m", false, "Only show metro")
	flags.BoolVarP(&opts.tram, "tram", "t", false, "Only show trams")
	flags.BoolVarP(&opts.water, "water", "w", false, "Only show water/ferry")
	flags.BoolVarP(&opts.train, "train", "r", false, "Only show train/rail")
	flags.BoolVarP(&opts.air, "air", "a", false, "Only show air")

	flags.BoolVarP(&opts.force, "force", "f", false, "Skip confirmation prompts (delete/clear)")
	flags.BoolVar(&opts.raw, "raw", false, "Skip the cache and always search remotely")
	flags.StringVar(&opts.configPath, "config", "", "Configuration file path")

	return cmd
}

// modes returns the selected transport-mode filter set, nil when unfiltered.
func (o *rootOptions) modes() []string {
	var modes []string
	for _, sel := range []struct {
		set  bool
		mode string
	}{
		{o.bus, "bus"},
		{o.metro, "metro"},
		{o.tram, "tram"},
		{o.train, "train"},
		{o.water, "ferry"},
		{o.air, "air"},
	} {
		if sel.set {
			modes = append(modes, sel.mode)
		}
	}
	return modes
}
