// Package store persists an index as a flat text file, one record per line:
//
//	path|rank|last_access
//
// The format is shared with rupa/z, so existing z data files load as-is.
// Records are written sorted by path and readers ignore any trailing fields
// after the third, so older binaries keep working if fields are added.
//
// Writers never hold a lock. Every write goes to a uniquely named temp file
// in the same directory and is renamed over the index, so readers always see
// a complete file. Two processes updating at once both succeed and the last
// rename wins; because updates are merged into a fresh load of the file, the
// worst case is a single lost rank increment, which the next visit repairs.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"hop/pkg/index"
)

const (
	tmpPrefix = ".hop-"
	tmpSuffix = ".tmp"

	// Temp files younger than this are never swept: they may belong to a
	// writer that is still running.
	tmpMaxAge = time.Hour
)

// Store reads and writes one index file.
type Store struct {
	Path   string
	Policy index.Policy

	// Warn receives one message per skipped record and per swept temp
	// file. Nil disables diagnostics.
	Warn func(msg string)
}

// New returns a Store for the index file at path.
func New(path string, policy index.Policy) *Store {
	return &Store{Path: path, Policy: policy}
}

func (s *Store) warnf(format string, args ...any) {
	if s.Warn != nil {
		s.Warn(fmt.Sprintf(format, args...))
	}
}

// Load reads the index file. A missing file is an empty index, not an
// error. Malformed records are skipped and counted; the count comes back as
// the second return so callers can surface it. A duplicate path keeps the
// later record.
func (s *Store) Load() (*index.Index, int, error) {
	ix := index.New(s.Policy)

	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return ix, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("open index %s: %w", s.Path, err)
	}
	defer f.Close()

	skipped := 0
	line := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		text := sc.Text()
		if text == "" {
			continue
		}
		e, err := parseRecord(text)
		if err != nil {
			skipped++
			s.warnf("%s:%d: skipping record: %v", s.Path, line, err)
			continue
		}
		ix.Put(e)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read index %s: %w", s.Path, err)
	}
	return ix, skipped, nil
}

// parseRecord decodes one line. Fields past the third are tolerated and
// ignored.
func parseRecord(text string) (index.Entry, error) {
	fields := strings.Split(text, "|")
	if len(fields) < 3 {
		return index.Entry{}, fmt.Errorf("want 3 fields, got %d", len(fields))
	}
	path := fields[0]
	if path == "" {
		return index.Entry{}, errors.New("empty path")
	}
	rank, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return index.Entry{}, fmt.Errorf("bad rank %q: %w", fields[1], err)
	}
	if math.IsNaN(rank) || math.IsInf(rank, 0) || rank < 0 {
		return index.Entry{}, fmt.Errorf("bad rank %v", rank)
	}
	last, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return index.Entry{}, fmt.Errorf("bad last-access %q: %w", fields[2], err)
	}
	if last < 0 {
		return index.Entry{}, fmt.Errorf("negative last-access %d", last)
	}
	return index.Entry{Path: path, Rank: rank, LastAccess: last}, nil
}

// Save atomically replaces the index file. The records land in a temp file
// in the same directory, get flushed to disk, and are renamed over the
// index; a failure at any point removes the temp file and leaves the
// previous index byte-for-byte intact. Entries whose rank has decayed below
// the prune epsilon are dropped here, and paths the format cannot represent
// (embedded | or newline) are skipped with a warning.
func (s *Store) Save(ix *index.Index) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}
	s.sweepStaleTemps(dir)

	tmp := filepath.Join(dir, tmpPrefix+uuid.New().String()+tmpSuffix)
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create temp index %s: %w", tmp, err)
	}

	if err := s.writeRecords(f, ix); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp index %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flush temp index %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp index %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace index %s: %w", s.Path, err)
	}
	return nil
}

func (s *Store) writeRecords(f *os.File, ix *index.Index) error {
	w := bufio.NewWriter(f)
	for _, e := range ix.Entries() {
		if e.Rank < s.Policy.PruneEpsilon {
			continue
		}
		if strings.ContainsAny(e.Path, "|\n") {
			s.warnf("skipping unencodable path %q", e.Path)
			continue
		}
		rank := strconv.FormatFloat(e.Rank, 'f', -1, 64)
		if _, err := fmt.Fprintf(w, "%s|%s|%d\n", e.Path, rank, e.LastAccess); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Update folds delta into the on-disk index: load, merge, age, save.
// Aging runs on the merged table so the stored rank total stays bounded no
// matter how large the delta is.
func (s *Store) Update(delta *index.Index) error {
	ix, _, err := s.Load()
	if err != nil {
		return err
	}
	ix.Merge(delta)
	ix.Age()
	return s.Save(ix)
}

// sweepStaleTemps removes temp files abandoned by interrupted writers.
// Best effort: sweep failures never block a save.
func (s *Store) sweepStaleTemps(dir string) {
	matches, err := filepath.Glob(filepath.Join(dir, tmpPrefix+"*"+tmpSuffix))
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-tmpMaxAge)
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil || fi.ModTime().After(cutoff) {
			continue
		}
		if os.Remove(m) == nil {
			s.warnf("removed stale temp file %s", m)
		}
	}
}
