package ingest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hop/pkg/index"
)

// AutojumpFile reads autojump's text database, one "weight<TAB>path" per
// line. autojump keeps no timestamps, so every imported entry is stamped
// with now. Malformed lines and non-absolute paths are skipped and counted.
func AutojumpFile(path string, now int64, policy index.Policy, warn func(msg string)) (*index.Index, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("autojump data file: %w", err)
	}
	defer f.Close()

	ix := index.New(policy)
	skipped := 0
	line := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		weight, entryPath, ok := strings.Cut(text, "\t")
		if !ok {
			skipped++
			warnf(warn, "%s:%d: skipping line without a tab separator", path, line)
			continue
		}
		rank, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
		if err != nil || rank < 0 {
			skipped++
			warnf(warn, "%s:%d: skipping bad weight %q", path, line, weight)
			continue
		}
		if !filepath.IsAbs(entryPath) {
			skipped++
			warnf(warn, "%s:%d: skipping non-absolute path %q", path, line, entryPath)
			continue
		}

		p := filepath.Clean(entryPath)
		e, found := ix.Get(p)
		if !found {
			e = index.Entry{Path: p, LastAccess: now}
		}
		e.Rank += rank
		ix.Put(e)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read autojump data file %s: %w", path, err)
	}
	return ix, skipped, nil
}

func warnf(warn func(msg string), format string, args ...any) {
	if warn != nil {
		warn(fmt.Sprintf(format, args...))
	}
}
