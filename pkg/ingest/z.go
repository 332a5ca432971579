package ingest

import (
	"fmt"
	"os"

	"hop/pkg/index"
	"hop/pkg/store"
)

// ZFile reads a rupa/z (or zrs) data file. The format is the same one hop
// writes, so this is a store load from a foreign path; malformed records
// are skipped and counted the same way. Unlike a store load, a missing
// file is an error: the user asked to import it.
func ZFile(path string, policy index.Policy, warn func(msg string)) (*index.Index, int, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, 0, fmt.Errorf("z data file: %w", err)
	}
	s := store.New(path, policy)
	s.Warn = warn
	return s.Load()
}
