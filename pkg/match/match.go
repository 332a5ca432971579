// Package match compiles user search terms and ranks the entries of an
// index against them. Matching is case-insensitive and term order is
// significant, mirroring how people type nested directory fragments.
package match

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"hop/pkg/frecency"
	"hop/pkg/index"
)

// Mode selects how matches are scored.
type Mode int

const (
	// ModeFrecent ranks by frecency, the default.
	ModeFrecent Mode = iota
	// ModeRank ranks by accumulated rank alone, ignoring recency.
	ModeRank
	// ModeRecent ranks by last-access time alone.
	ModeRecent
)

// BadPatternError reports a search term that is not a valid regular
// expression.
type BadPatternError struct {
	Term string
	Err  error
}

func (e *BadPatternError) Error() string {
	return fmt.Sprintf("invalid search term %q: %v", e.Term, e.Err)
}

func (e *BadPatternError) Unwrap() error { return e.Err }

// Query is a compiled list of search terms.
type Query struct {
	terms []*regexp.Regexp
}

// Compile builds a Query from search terms. Each term is compiled as a
// case-insensitive regular expression; the first term that fails to compile
// aborts with a *BadPatternError naming it.
func Compile(terms []string) (*Query, error) {
	q := &Query{}
	for _, term := range terms {
		re, err := regexp.Compile("(?i)" + term)
		if err != nil {
			return nil, &BadPatternError{Term: term, Err: err}
		}
		q.terms = append(q.terms, re)
	}
	return q, nil
}

// Match reports whether path satisfies every term. Terms must land in
// order: each one is placed at its earliest match at or after the previous
// term's position, so ["a","b"] matches /x/a/y/b but not /x/b/y/a. An empty
// query matches everything.
func (q *Query) Match(path string) bool {
	pos := 0
	for _, re := range q.terms {
		loc := re.FindStringIndex(path[pos:])
		if loc == nil {
			return false
		}
		pos += loc[0]
	}
	return true
}

// Result is one matched path with its score.
type Result struct {
	Path  string
	Score float64
}

// Options configures a search.
type Options struct {
	Mode Mode
	Now  int64 // clock for frecency scoring, Unix seconds

	// Prefix restricts matches to paths strictly under this directory.
	// Empty means no restriction.
	Prefix string
}

// Search returns every entry matching the query, best first. Ties prefer
// the shorter path, then lexicographic order, so results are fully
// deterministic. An empty result is a valid outcome, not an error.
func Search(ix *index.Index, q *Query, opts Options) []Result {
	var out []Result
	for _, e := range ix.Entries() {
		if opts.Prefix != "" && !underDir(e.Path, opts.Prefix) {
			continue
		}
		if !q.Match(e.Path) {
			continue
		}
		out = append(out, Result{Path: e.Path, Score: score(e, opts)})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Path) != len(b.Path) {
			return len(a.Path) < len(b.Path)
		}
		return a.Path < b.Path
	})
	return out
}

// Best returns the top search result, if any.
func Best(ix *index.Index, q *Query, opts Options) (Result, bool) {
	results := Search(ix, q, opts)
	if len(results) == 0 {
		return Result{}, false
	}
	return results[0], true
}

func score(e index.Entry, opts Options) float64 {
	switch opts.Mode {
	case ModeRank:
		return e.Rank
	case ModeRecent:
		return float64(e.LastAccess)
	default:
		return frecency.Score(e.Rank, e.LastAccess, opts.Now)
	}
}

// underDir reports whether path is strictly inside dir.
func underDir(path, dir string) bool {
	dir = strings.TrimSuffix(dir, "/")
	return len(path) > len(dir)+1 && strings.HasPrefix(path, dir+"/")
}
