// Package adapter contains filesystem and format adapters for graderecorder.
package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/afero"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
	"graderecorder.dev/pkg/graderecorder/pkg"
)

// FSAdapter abstracts filesystem operations that the domain layer relies on.
// It hides direct `os` access so the configuration lifecycle and the pipeline
// can be tested against an in-memory filesystem.
type FSAdapter interface {
	// ReadFile loads a file. Missing files wrap m.ErrFileNotFound and
	// permission problems wrap m.ErrFileAccessDenied.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile atomically replaces the file at path with content.
	WriteFile(path m.Path, content []byte) error

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// Exists reports whether path exists.
	Exists(path m.Path) (bool, error)

	// IsDir reports whether path is an existing directory.
	IsDir(path m.Path) (bool, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path) error

	// Fs exposes the underlying filesystem for streaming readers and writers.
	Fs() afero.Fs
}

// LocalFSAdapter implements FSAdapter on top of an afero filesystem.
type LocalFSAdapter struct {
	fs afero.Fs
}

// NewLocalFSAdapter constructs an adapter backed by the operating system.
func NewLocalFSAdapter() *LocalFSAdapter {
	return NewFSAdapter(afero.NewOsFs())
}

// NewFSAdapter constructs an adapter backed by the provided filesystem.
func NewFSAdapter(fsys afero.Fs) *LocalFSAdapter {
	return &LocalFSAdapter{fs: fsys}
}

// ReadFile loads file contents.
func (a *LocalFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	data, err := afero.ReadFile(a.fs, string(path))
	if err != nil {
		return nil, classifyFSError(path, err)
	}

	return data, nil
}

// WriteFile writes content through a temporary file so readers never see a
// partially written document.
func (a *LocalFSAdapter) WriteFile(path m.Path, content []byte) error {
	file, err := pkg.NewAtomicFile(a.fs, string(path))
	if err != nil {
		return classifyFSError(path, err)
	}

	defer func() { _ = file.Close() }()

	if _, err := file.Write(content); err != nil {
		return classifyFSError(path, err)
	}

	if err := file.Commit(); err != nil {
		return classifyFSError(path, err)
	}

	return nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	info, err := a.fs.Stat(string(path))
	if err != nil {
		return nil, classifyFSError(path, err)
	}

	return info, nil
}

// Exists reports whether path exists.
func (a *LocalFSAdapter) Exists(path m.Path) (bool, error) {
	return afero.Exists(a.fs, string(path))
}

// IsDir reports whether path is an existing directory.
func (a *LocalFSAdapter) IsDir(path m.Path) (bool, error) {
	return afero.DirExists(a.fs, string(path))
}

// MkdirAll creates a directory and any missing parents.
func (a *LocalFSAdapter) MkdirAll(path m.Path) error {
	if err := a.fs.MkdirAll(string(path), 0o750); err != nil {
		return classifyFSError(path, err)
	}

	return nil
}

// Fs returns the underlying filesystem.
func (a *LocalFSAdapter) Fs() afero.Fs {
	return a.fs
}

// classifyFSError maps filesystem errors onto the model's error taxonomy.
func classifyFSError(path m.Path, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", m.ErrFileNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", m.ErrFileAccessDenied, path, err)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}
