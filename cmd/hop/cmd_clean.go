package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// cleanConfig carries the injectable pieces of "hop clean" so tests can
// substitute the liveness check and capture output.
type cleanConfig struct {
	out   io.Writer
	errW  io.Writer
	alive func(path string) bool
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Drop entries whose directories no longer exist",
		Long: "Walk the index and remove every entry whose path is no longer a\n" +
			"directory on disk. Entries on unmounted volumes disappear too, so\n" +
			"run this only when everything you care about is mounted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cleanConfig{
				out:   cmd.OutOrStdout(),
				errW:  cmd.ErrOrStderr(),
				alive: isDir,
			})
		},
	}
}

func runClean(cfg cleanConfig) error {
	env, err := loadEnv(warnTo(cfg.errW))
	if err != nil {
		return err
	}

	ix, skipped, err := env.store.Load()
	if err != nil {
		return err
	}
	reportSkipped(cfg.errW, skipped)

	removed := ix.Clean(cfg.alive)
	if len(removed) == 0 {
		fmt.Fprintln(cfg.out, "nothing to clean")
		return nil
	}

	if err := env.store.Save(ix); err != nil {
		return err
	}

	fmt.Fprintf(cfg.out, "removed %d entries:\n", len(removed))
	for _, path := range removed {
		fmt.Fprintf(cfg.out, "  %s\n", path)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
