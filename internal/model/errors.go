package model

import "errors"

var (
	// ErrCorruptedConfig is returned when the configuration document fails
	// structural validation. The document has been regenerated from defaults.
	ErrCorruptedConfig = errors.New("configuration file is corrupted, regenerated from defaults")
	// ErrUserCancelled is returned when an interactive selection was dismissed.
	ErrUserCancelled = errors.New("selection cancelled by user")
	// ErrFileNotFound is returned when a required file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrFileAccessDenied is returned when a file cannot be read or written.
	ErrFileAccessDenied = errors.New("file access denied")
	// ErrInvalidGradeValue is returned for a grade field that cannot be scored.
	ErrInvalidGradeValue = errors.New("invalid grade value")
	// ErrUnsupportedFormat is returned for an unknown file extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrInvalidSetting is returned when a setter rejects a value.
	ErrInvalidSetting = errors.New("invalid setting value")
)
