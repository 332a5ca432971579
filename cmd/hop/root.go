package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hop/internal/version"
)

// newRootCmd creates the root hop command with all subcommands attached.
// The root command itself runs a query, so `hop web api` works the way a
// shell alias expects.
func newRootCmd() *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "hop [flags] [term]...",
		Short: "Jump to frecently used directories",
		Long: "hop keeps a ranked index of the directories you visit and finds the\n" +
			"best match for a few typed fragments. Terms are case-insensitive\n" +
			"regular expressions and must match the path in order. Matches are\n" +
			"ranked by frecency: visit count weighted by how recently you were\n" +
			"there.",
		Version:       fmt.Sprintf("hop %s", version.String()),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, args)
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "print every match with its score")
	cmd.Flags().BoolVarP(&opts.rank, "rank", "r", false, "rank by visit count alone")
	cmd.Flags().BoolVarP(&opts.recent, "recent", "t", false, "rank by last visit alone")
	cmd.Flags().BoolVarP(&opts.current, "current", "c", false, "match only under the working directory")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the match in a terminal UI")
	cmd.MarkFlagsMutuallyExclusive("rank", "recent")
	cmd.MarkFlagsMutuallyExclusive("list", "interactive")

	cmd.AddCommand(
		newAddCmd(),
		newCleanCmd(),
		newCompleteCmd(),
		newImportCmd(),
	)

	return cmd
}
