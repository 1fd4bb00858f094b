// Package pkg provides utilities for graderecorder.
package pkg

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// defaultFileMode is applied to files that do not exist yet.
const defaultFileMode os.FileMode = 0o644

// AtomicFile is a file that only becomes visible at its destination once
// committed. Writes go to a temporary file in the destination directory.
type AtomicFile interface {
	Write(p []byte) (int, error)
	// Path returns the destination path.
	Path() string
	// TempPath returns the path of the pending temporary file.
	TempPath() string
	// Commit flushes and renames the temporary file over the destination.
	Commit() error
	// Close discards the temporary file unless Commit succeeded.
	Close() error
}

type atomicFileImpl struct {
	fs        afero.Fs
	path      string
	file      afero.File
	mu        sync.Mutex
	committed bool
	closed    bool
}

// NewAtomicFile creates a pending file for path on fs. The parent directory
// is created when missing. The committed file keeps the mode of the file it
// replaces, or gets defaultFileMode.
func NewAtomicFile(fs afero.Fs, path string) (AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create output directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		slog.Error("failed to create temp file", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	mode := defaultFileMode
	if info, statErr := fs.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	if err := fs.Chmod(file.Name(), mode); err != nil {
		slog.Error("failed to set temp file mode", "path", file.Name(), "mode", mode, "error", err)
		_ = file.Close()
		_ = fs.Remove(file.Name())

		return nil, fmt.Errorf("failed to set file mode: %w", err)
	}

	slog.Debug("created atomic file", "path", path, "temp", file.Name(), "mode", mode)

	return &atomicFileImpl{
		fs:   fs,
		path: path,
		file: file,
	}, nil
}

// Write implements AtomicFile.
func (f *atomicFileImpl) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.committed {
		return 0, os.ErrClosed
	}

	return f.file.Write(p)
}

// Path implements AtomicFile.
func (f *atomicFileImpl) Path() string {
	return f.path
}

// TempPath implements AtomicFile.
func (f *atomicFileImpl) TempPath() string {
	return f.file.Name()
}

// Commit implements AtomicFile.
func (f *atomicFileImpl) Commit() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.committed {
		return os.ErrClosed
	}

	if err := f.file.Sync(); err != nil {
		slog.Error("failed to sync temp file", "path", f.file.Name(), "error", err)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.file.Close(); err != nil {
		slog.Error("failed to close temp file", "path", f.file.Name(), "error", err)
		return fmt.Errorf("failed to close file: %w", err)
	}

	f.closed = true

	if err := f.fs.Rename(f.file.Name(), f.path); err != nil {
		slog.Error("failed to rename temp file", "temp", f.file.Name(), "path", f.path, "error", err)
		f.discard()

		return fmt.Errorf("failed to move file into place: %w", err)
	}

	f.committed = true
	slog.Debug("committed atomic file", "path", f.path)

	return nil
}

// Close implements AtomicFile.
func (f *atomicFileImpl) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.committed {
		return nil
	}

	var closeErr error
	if !f.closed {
		closeErr = f.file.Close()
		f.closed = true
	}

	f.discard()

	return closeErr
}

func (f *atomicFileImpl) discard() {
	if err := f.fs.Remove(f.file.Name()); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove temp file", "path", f.file.Name(), "error", err)
		return
	}

	slog.Debug("discarded atomic file", "path", f.path)
}
