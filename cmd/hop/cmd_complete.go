package main

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hop/pkg/match"
)

// newCompleteCmd creates the "hop complete" subcommand that shell tab
// completion calls with the command line typed so far. Hidden because only
// completion scripts invoke it.
func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "complete <line>",
		Short:  "List matches for a partial command line",
		Args:   cobra.ArbitraryArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, strings.Join(args, " "))
		},
	}
}

func runComplete(cmd *cobra.Command, line string) error {
	env, err := loadEnv(warnTo(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	q, err := match.Compile(completionTerms(line))
	if err != nil {
		return err
	}

	ix, skipped, err := env.store.Load()
	if err != nil {
		return err
	}
	reportSkipped(cmd.ErrOrStderr(), skipped)

	opts := match.Options{Mode: match.ModeFrecent, Now: time.Now().Unix()}
	for _, r := range match.Search(ix, q, opts) {
		fmt.Fprintln(cmd.OutOrStdout(), r.Path)
	}
	// No matches is fine here: the shell shows nothing and moves on.
	return nil
}

// completionTerms splits the completion line into query terms. The first
// word is the alias the user typed, not a search term, and the rest are
// quoted so a half-typed pattern never breaks completion.
func completionTerms(line string) []string {
	fields := strings.Fields(line)
	if len(fields) > 0 {
		fields = fields[1:]
	}
	terms := make([]string, len(fields))
	for i, f := range fields {
		terms[i] = regexp.QuoteMeta(f)
	}
	return terms
}
