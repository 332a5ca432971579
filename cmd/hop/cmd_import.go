package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"hop/pkg/index"
	"hop/pkg/ingest"
)

func newImportCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "import --from <tool> [file]",
		Short: "Import history from z, autojump, or atuin",
		Long: "Merge another tool's history into the index. Imported ranks add to\n" +
			"existing ones and newer last-access times win, the same way two hop\n" +
			"writers combine. Pass a file to read a non-standard location;\n" +
			"otherwise each tool's stock path is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ""
			if len(args) == 1 {
				source = args[0]
			}
			return runImport(cmd, from, source)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source tool: z, autojump, or atuin")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func runImport(cmd *cobra.Command, from, source string) error {
	env, err := loadEnv(warnTo(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	warn := warnTo(cmd.ErrOrStderr())
	policy := env.cfg.Policy()

	var delta *index.Index
	switch from {
	case "z":
		if source == "" {
			if source, err = defaultZFile(); err != nil {
				return err
			}
		}
		delta, _, err = ingest.ZFile(source, policy, warn)
	case "autojump":
		if source == "" {
			if source, err = defaultAutojumpFile(); err != nil {
				return err
			}
		}
		delta, _, err = ingest.AutojumpFile(source, time.Now().Unix(), policy, warn)
	case "atuin":
		if source == "" {
			if source, err = ingest.AtuinDBPath(); err != nil {
				return err
			}
		}
		delta, err = ingest.AtuinHistory(cmd.Context(), source, policy)
	default:
		return fmt.Errorf("unknown import source %q (want z, autojump, or atuin)", from)
	}
	if err != nil {
		return err
	}

	if delta.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to import")
		return nil
	}
	if err := env.store.Update(delta); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d directories from %s\n", delta.Len(), source)
	return nil
}

func defaultZFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".z"), nil
}

func defaultAutojumpFile() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "autojump", "autojump.txt"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".local", "share", "autojump", "autojump.txt"), nil
}
