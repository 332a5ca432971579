package main

import (
	"fmt"
	"io"
	"os"

	"hop/internal/config"
	"hop/pkg/store"
)

// runtimeEnv bundles the resolved paths, the loaded configuration, and the
// store every command works against.
type runtimeEnv struct {
	paths *Paths
	cfg   config.Config
	store *store.Store
}

// loadEnv resolves paths, loads the config, and wires up the default store.
// The data file location is decided in precedence order: HOP_DATA env var,
// then data_file from the config, then $HOP_HOME/data. Store diagnostics go
// through warn.
func loadEnv(warn func(msg string)) (*runtimeEnv, error) {
	paths, err := ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}

	cfg, err := config.Load(paths.Config)
	if err != nil {
		return nil, err
	}

	dataPath := paths.Data
	if os.Getenv("HOP_DATA") == "" && cfg.DataFile != "" {
		dataPath = cfg.DataFile
	}

	s := store.New(dataPath, cfg.Policy())
	s.Warn = warn
	return &runtimeEnv{paths: paths, cfg: cfg, store: s}, nil
}

// warnTo adapts a writer into a store warning hook.
func warnTo(w io.Writer) func(msg string) {
	return func(msg string) {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
}

// reportSkipped prints a one-line summary when a load dropped corrupt
// records. Individual records were already warned about by the store.
func reportSkipped(w io.Writer, skipped int) {
	if skipped > 0 {
		fmt.Fprintf(w, "warning: %d corrupt records skipped\n", skipped)
	}
}
