package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PendingFile is a temporary file in the destination directory that replaces
// the destination path only when committed.
type PendingFile struct {
	*os.File
	target string
	done   bool
}

// CreatePending opens a temporary sibling of target for writing.
func CreatePending(target string) (*PendingFile, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file for %s: %w", target, err)
	}
	return &PendingFile{File: tmp, target: target}, nil
}

// Target returns the destination path.
func (p *PendingFile) Target() string {
	return p.target
}

// Commit flushes the temp file and renames it over the target.
func (p *PendingFile) Commit() error {
	if p.done {
		return nil
	}
	p.done = true
	if err := p.File.Sync(); err != nil {
		_ = p.File.Close()
		_ = os.Remove(p.File.Name())
		return fmt.Errorf("sync %s: %w", p.target, err)
	}
	if err := p.File.Close(); err != nil {
		_ = os.Remove(p.File.Name())
		return fmt.Errorf("close %s: %w", p.target, err)
	}
	if err := os.Chmod(p.File.Name(), 0o644); err != nil {
		_ = os.Remove(p.File.Name())
		return fmt.Errorf("chmod %s: %w", p.target, err)
	}
	if err := os.Rename(p.File.Name(), p.target); err != nil {
		_ = os.Remove(p.File.Name())
		return fmt.Errorf("rename into %s: %w", p.target, err)
	}
	return nil
}

// Abort discards the temp file. Calling Abort after Commit is a no-op.
func (p *PendingFile) Abort() {
	if p.done {
		return
	}
	p.done = true
	_ = p.File.Close()
	_ = os.Remove(p.File.Name())
}
