// Package index holds the in-memory table of visited directories: one entry
// per path with its accumulated rank and last-access time. Mutations keep a
// running rank total so the aging check never rescans the table. An Index is
// not safe for concurrent use; processes are short-lived and coordination
// happens at the persistence layer.
package index

import "sort"

// Entry is one visited directory.
type Entry struct {
	Path       string
	Rank       float64 // accumulated visit weight, never negative
	LastAccess int64   // Unix seconds of the most recent visit
}

// Policy holds the tunable aging parameters.
type Policy struct {
	AgeCeiling   float64 // rank total that triggers aging
	AgeDecay     float64 // multiplier applied to every rank when aging runs
	PruneEpsilon float64 // ranks below this are dropped at the next write
}

// DefaultPolicy returns the stock aging parameters.
func DefaultPolicy() Policy {
	return Policy{
		AgeCeiling:   9000,
		AgeDecay:     0.99,
		PruneEpsilon: 0.98,
	}
}

// Index maps paths to entries and tracks the total rank incrementally.
type Index struct {
	policy  Policy
	entries map[string]Entry
	total   float64
}

// New returns an empty Index governed by the given policy.
func New(policy Policy) *Index {
	return &Index{
		policy:  policy,
		entries: make(map[string]Entry),
	}
}

// Policy returns the aging parameters the index was built with.
func (ix *Index) Policy() Policy { return ix.policy }

// Len returns the number of entries.
func (ix *Index) Len() int { return len(ix.entries) }

// Total returns the running sum of all ranks.
func (ix *Index) Total() float64 { return ix.total }

// Get looks up the entry for a path.
func (ix *Index) Get(path string) (Entry, bool) {
	e, ok := ix.entries[path]
	return e, ok
}

// Put inserts or replaces an entry, adjusting the total. Loaders use it to
// rebuild an index record by record; a duplicate path replaces the earlier
// entry (last record wins).
func (ix *Index) Put(e Entry) {
	if old, ok := ix.entries[e.Path]; ok {
		ix.total -= old.Rank
	}
	ix.entries[e.Path] = e
	ix.total += e.Rank
}

// Entries returns a snapshot of all entries sorted by path.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, 0, len(ix.entries))
	for _, e := range ix.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// RecordVisit bumps the rank of path by one and stamps its last-access,
// creating the entry if needed, then runs the aging check. Returns the
// updated entry.
func (ix *Index) RecordVisit(path string, now int64) Entry {
	e, ok := ix.entries[path]
	if !ok {
		e = Entry{Path: path}
	}
	e.Rank++
	e.LastAccess = now
	ix.entries[path] = e
	ix.total++
	ix.Age()
	return ix.entries[path]
}

// Remove deletes the entry for path, reporting whether it existed.
func (ix *Index) Remove(path string) bool {
	e, ok := ix.entries[path]
	if !ok {
		return false
	}
	ix.total -= e.Rank
	delete(ix.entries, path)
	return true
}

// Clean removes every entry whose path fails the alive predicate and
// returns the removed paths sorted. It runs only when explicitly invoked;
// nothing in the index triggers it on its own.
func (ix *Index) Clean(alive func(path string) bool) []string {
	var removed []string
	for path, e := range ix.entries {
		if alive(path) {
			continue
		}
		ix.total -= e.Rank
		delete(ix.entries, path)
		removed = append(removed, path)
	}
	sort.Strings(removed)
	return removed
}

// Merge folds delta into the index: ranks add, last-access keeps the most
// recent, paths present in either side survive. Merging is commutative and
// associative, so writers that race on the same file converge no matter the
// order their updates land.
func (ix *Index) Merge(delta *Index) {
	for path, d := range delta.entries {
		e, ok := ix.entries[path]
		if !ok {
			ix.entries[path] = d
			ix.total += d.Rank
			continue
		}
		e.Rank += d.Rank
		if d.LastAccess > e.LastAccess {
			e.LastAccess = d.LastAccess
		}
		ix.entries[path] = e
		ix.total += d.Rank
	}
}

// Age decays every rank by the policy multiplier once the total exceeds the
// ceiling, keeping the file from growing unbounded rank mass. Entries whose
// rank falls below the prune epsilon stay in memory; the next write or an
// explicit clean drops them. Reports whether aging ran.
func (ix *Index) Age() bool {
	if ix.total <= ix.policy.AgeCeiling {
		return false
	}
	total := 0.0
	for path, e := range ix.entries {
		e.Rank *= ix.policy.AgeDecay
		ix.entries[path] = e
		total += e.Rank
	}
	ix.total = total
	return true
}
