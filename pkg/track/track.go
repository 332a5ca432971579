// Package track records directory visits. Each visit becomes a one-entry
// delta merged into the store, so concurrent shells never coordinate and
// the interactive prompt never waits on more than one small file write.
// Callers that cannot afford even that run the recorder in a detached
// process.
package track

import (
	"fmt"
	"path/filepath"
	"strings"

	"hop/pkg/index"
	"hop/pkg/store"
)

// Recorder writes visits through a store.
type Recorder struct {
	Store *store.Store

	// Exclude lists directory prefixes that are never recorded.
	Exclude []string

	// Now supplies visit timestamps, Unix seconds.
	Now func() int64
}

// Record notes one visit: the path gains one rank and a fresh last-access.
// The path is made absolute first; visits under an excluded prefix are
// dropped silently.
func (r *Recorder) Record(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if r.excluded(abs) {
		return nil
	}

	delta := index.New(r.Store.Policy)
	delta.RecordVisit(abs, r.Now())
	return r.Store.Update(delta)
}

func (r *Recorder) excluded(path string) bool {
	for _, prefix := range r.Exclude {
		prefix = strings.TrimSuffix(prefix, "/")
		if prefix == "" {
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
