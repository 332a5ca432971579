package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
)

// VisitSpawner abstracts spawning the detached visit recorder for testability.
type VisitSpawner interface {
	Spawn(logPath string, args ...string) error
}

// ExecVisitSpawner re-executes the current binary with the given arguments
// as a detached child. The child is placed in its own session (Setsid) so
// it survives parent exit and never holds the caller's terminal.
type ExecVisitSpawner struct{}

// Spawn starts the child with stdout/stderr appended to logPath and returns
// as soon as the process exists; the shell hook that triggered the visit
// never waits on index I/O.
func (ExecVisitSpawner) Spawn(logPath string, args ...string) error {
	child := exec.Command(os.Args[0], args...) //nolint:gosec,noctx // re-executes self; the recorder must outlive the parent

	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // log path is deterministic
	if err != nil {
		return fmt.Errorf("open recorder log %s: %w", logPath, err)
	}
	child.Stdout = logFile
	child.Stderr = logFile
	child.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := child.Start(); err != nil {
		_ = logFile.Close()
		return fmt.Errorf("spawn recorder: %w", err)
	}
	// logFile fd is inherited by the child; parent can close its copy.
	_ = logFile.Close()
	return nil
}
