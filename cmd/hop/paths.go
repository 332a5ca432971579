package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// hopDir is the state directory under the user's home.
const hopDir = ".hop"

// Paths holds all resolved hop state file paths.
// Use ResolvePaths() to populate this struct with defaults + env overrides.
type Paths struct {
	HopHome string // ~/.hop or HOP_HOME
	Data    string // data or HOP_DATA
	Config  string // config.yaml or HOP_CONFIG
	Log     string // hop.log, where the detached recorder reports failures
}

// ResolvePaths returns all hop paths, respecting env var overrides.
// Environment variables:
//   - HOP_HOME: base directory for all hop state (default: ~/.hop)
//   - HOP_DATA: index data file (default: $HOP_HOME/data)
//   - HOP_CONFIG: config file (default: $HOP_HOME/config.yaml)
//
// If HOP_HOME is set, it becomes the base for all default paths. The
// specific env vars override both the default and the HOP_HOME base.
func ResolvePaths() (*Paths, error) {
	hopHome, err := resolveHopHome()
	if err != nil {
		return nil, err
	}

	return &Paths{
		HopHome: hopHome,
		Data:    resolvePathWithEnv("HOP_DATA", hopHome, "data"),
		Config:  resolvePathWithEnv("HOP_CONFIG", hopHome, "config.yaml"),
		Log:     filepath.Join(hopHome, "hop.log"),
	}, nil
}

// resolveHopHome returns the hop home directory from HOP_HOME env var or ~/.hop.
func resolveHopHome() (string, error) {
	if v := os.Getenv("HOP_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, hopDir), nil
}

// resolvePathWithEnv returns the path from envKey if set, otherwise joins base + suffix.
func resolvePathWithEnv(envKey, base, suffix string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return filepath.Join(base, suffix)
}
