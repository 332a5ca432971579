// Package ingest imports visit history from other directory-jumping and
// shell-history tools: rupa/z data files, autojump databases, and atuin's
// SQLite history. Each importer yields a delta index that the caller merges
// into the store, so imported entries combine with existing ones exactly
// like visits do.
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	_ "modernc.org/sqlite"

	"hop/pkg/index"
)

const nanosPerSecond = int64(1_000_000_000)

// AtuinDBPath locates atuin's history database: db_path from config.toml if
// set (honoring ATUIN_CONFIG_DIR), otherwise the stock location under
// ~/.local/share/atuin.
func AtuinDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}

	confDir := os.Getenv("ATUIN_CONFIG_DIR")
	if confDir == "" {
		confDir = filepath.Join(home, ".config", "atuin")
	}

	data, err := os.ReadFile(filepath.Join(confDir, "config.toml"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read atuin config: %w", err)
	}
	if err == nil {
		var conf struct {
			DBPath string `toml:"db_path"`
		}
		if err := toml.Unmarshal(data, &conf); err != nil {
			return "", fmt.Errorf("parse atuin config: %w", err)
		}
		if conf.DBPath != "" {
			return expandHome(conf.DBPath, home), nil
		}
	}
	return filepath.Join(home, ".local", "share", "atuin", "history.db"), nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// AtuinHistory aggregates atuin's command history into per-directory
// visits: each distinct cwd becomes one entry, rank is the number of
// commands run there, last-access the most recent one (atuin stores
// nanoseconds; they convert to Unix seconds here). Rows without a usable
// absolute cwd are ignored.
func AtuinHistory(ctx context.Context, dbPath string, policy index.Policy) (*index.Index, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("atuin history db: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open atuin db %s: %w", dbPath, err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping atuin db %s: %w", dbPath, err)
	}
	// Foreign database: leave its journal mode alone, just wait out locks
	// while atuin itself is writing.
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		return nil, fmt.Errorf("set busy_timeout on %s: %w", dbPath, err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT cwd, COUNT(*), MAX(timestamp) FROM history GROUP BY cwd`)
	if err != nil {
		return nil, fmt.Errorf("query atuin history: %w", err)
	}
	defer rows.Close()

	ix := index.New(policy)
	for rows.Next() {
		var (
			cwd       string
			count     int64
			lastNanos int64
		)
		if err := rows.Scan(&cwd, &count, &lastNanos); err != nil {
			return nil, fmt.Errorf("scan atuin row: %w", err)
		}
		if cwd == "" || cwd == "unknown" || !filepath.IsAbs(cwd) {
			continue
		}

		// Distinct cwd spellings can clean to the same path; combine
		// them the way a merge would.
		path := filepath.Clean(cwd)
		e, ok := ix.Get(path)
		if !ok {
			e = index.Entry{Path: path}
		}
		e.Rank += float64(count)
		if last := lastNanos / nanosPerSecond; last > e.LastAccess {
			e.LastAccess = last
		}
		ix.Put(e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read atuin history: %w", err)
	}
	return ix, nil
}
