package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hop/pkg/index"
	"hop/pkg/match"
)

var (
	// errNoMatch means the query ran fine and nothing matched; callers
	// exit 1 rather than treating it as a failure.
	errNoMatch = errors.New("no match found")
	// errNoSelection means the user left the picker without choosing.
	errNoSelection = errors.New("no selection")
)

// queryOptions holds the root command's flag values.
type queryOptions struct {
	list        bool
	rank        bool
	recent      bool
	current     bool
	interactive bool
}

func (o queryOptions) mode() match.Mode {
	switch {
	case o.rank:
		return match.ModeRank
	case o.recent:
		return match.ModeRecent
	default:
		return match.ModeFrecent
	}
}

// queryConfig holds injectable dependencies for the query path.
type queryConfig struct {
	out    io.Writer
	errW   io.Writer
	getwd  func() (string, error)
	isTTY  func() bool
	picker func(env *runtimeEnv, ix *index.Index, terms []string, opts match.Options) (string, error)
	now    func() int64
}

func runQuery(cmd *cobra.Command, opts queryOptions, terms []string) error {
	cfg := &queryConfig{
		out:    cmd.OutOrStdout(),
		errW:   cmd.ErrOrStderr(),
		getwd:  os.Getwd,
		isTTY:  stdoutIsTTY,
		picker: runPicker,
		now:    func() int64 { return time.Now().Unix() },
	}
	return executeQuery(cfg, opts, terms)
}

func executeQuery(cfg *queryConfig, opts queryOptions, terms []string) error {
	env, err := loadEnv(warnTo(cfg.errW))
	if err != nil {
		return err
	}

	q, err := match.Compile(terms)
	if err != nil {
		return err
	}

	ix, skipped, err := env.store.Load()
	if err != nil {
		return err
	}
	reportSkipped(cfg.errW, skipped)

	searchOpts := match.Options{Mode: opts.mode(), Now: cfg.now()}
	if opts.current {
		wd, err := cfg.getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		searchOpts.Prefix = wd
	}

	if opts.interactive {
		if !cfg.isTTY() {
			return errors.New("interactive mode requires a terminal on stdout")
		}
		path, err := cfg.picker(env, ix, terms, searchOpts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cfg.out, path)
		return nil
	}

	results := match.Search(ix, q, searchOpts)
	if len(results) == 0 {
		if len(terms) == 0 {
			return errNoMatch
		}
		return fmt.Errorf("%w for %q", errNoMatch, strings.Join(terms, " "))
	}

	if opts.list {
		for _, r := range results {
			fmt.Fprintf(cfg.out, "%10.3f %s\n", r.Score, r.Path)
		}
		return nil
	}
	fmt.Fprintln(cfg.out, results[0].Path)
	return nil
}
