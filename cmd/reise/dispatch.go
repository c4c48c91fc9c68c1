package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reise/internal/config"
	"reise/internal/entur"
	"reise/internal/flow"
	"reise/internal/logging"
	"reise/internal/prompt"
	"reise/internal/stopcache"
)

// action is the closed set of things one invocation can do. Exactly one is
// chosen per run.
type action int

const (
	actionHelp action = iota
	actionVersion
	actionList
	actionInfo
	actionRename
	actionDelete
	actionClear
	actionSearch
)

// decide picks the action for the parsed flags, in the same precedence order
// the flags are documented: version, list, clear, delete, info, rename, then
// search when a stop name is present.
func decide(opts *rootOptions, args []string) action {
	switch {
	case opts.version:
		return actionVersion
	case opts.list:
		return actionList
	case opts.clearCache:
		return actionClear
	case opts.delete:
		return actionDelete
	case opts.info:
		return actionInfo
	case opts.rename:
		return actionRename
	case len(args) > 0:
		return actionSearch
	default:
		return actionHelp
	}
}

func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	act := decide(opts, args)
	out := cmd.OutOrStdout()

	switch act {
	case actionVersion:
		fmt.Fprintf(out, "reise version %s\n", version)
		return nil
	case actionHelp:
		return cmd.Help()
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	logger = logger.With(logging.String(logging.FieldRunID, runID))

	store := stopcache.Open(cfg.CachePath, logger)
	prompter := prompt.NewTerminal(cmd.InOrStdin(), out)
	mutator := stopcache.NewMutator(store, prompter, logger)

	switch act {
	case actionList:
		return runList(out, store)
	case actionInfo:
		return runInfo(out, store, args)
	case actionRename:
		return runRename(out, mutator, args)
	case actionDelete:
		return runDelete(out, mutator, args, opts.force)
	case actionClear:
		return runClear(out, store, mutator, opts.force)
	case actionSearch:
		client := entur.NewClient(
			entur.WithGeocoderURL(cfg.GeocoderURL),
			entur.WithJourneyURL(cfg.JourneyURL),
			entur.WithClientName(cfg.ClientName),
			entur.WithRequestID(runID),
			entur.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second),
		)
		resolver := flow.New(flow.Options{
			Store:     store,
			Search:    client,
			Prompter:  prompter,
			Out:       out,
			Render:    renderPlaces,
			HintLimit: cfg.HintLimit,
			Logger:    logger,
		})
		name := strings.Join(args, " ")
		return runSearch(cmd, out, resolver, client, cfg, name, opts.modes(), opts.raw)
	default:
		return fmt.Errorf("unhandled action %d", act)
	}
}
