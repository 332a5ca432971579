package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hop/pkg/track"
)

// newAddCmd creates the "hop add" subcommand with the real spawner.
func newAddCmd() *cobra.Command {
	return newAddCmdWithSpawner(ExecVisitSpawner{})
}

// newAddCmdWithSpawner creates the "hop add" subcommand. Shell hooks call
// this on every directory change, so the default path detaches: the command
// re-executes itself with --blocking in a child session and returns
// immediately. The child does the actual load-merge-save.
func newAddCmdWithSpawner(spawner VisitSpawner) *cobra.Command {
	var blocking bool

	cmd := &cobra.Command{
		Use:   "add [--blocking] <path>...",
		Short: "Record a visit to one or more directories",
		Long: "Record a visit: each path gains one rank and a fresh last-access\n" +
			"time. Meant to be called from a shell hook on every directory\n" +
			"change. The write happens in a detached child process so the\n" +
			"prompt never waits on disk; pass --blocking to record in-process\n" +
			"(scripts, or anything that must observe the write).",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !blocking {
				paths, err := ResolvePaths()
				if err != nil {
					return fmt.Errorf("resolve paths: %w", err)
				}
				spawnArgs := append([]string{"add", "--blocking"}, args...)
				return spawner.Spawn(paths.Log, spawnArgs...)
			}

			env, err := loadEnv(warnTo(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			rec := &track.Recorder{
				Store:   env.store,
				Exclude: env.cfg.Exclude,
				Now:     func() int64 { return time.Now().Unix() },
			}
			for _, path := range args {
				if err := rec.Record(path); err != nil {
					return fmt.Errorf("record visit: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&blocking, "blocking", false, "record in-process instead of detaching")
	return cmd
}
