// Package model defines the data structures shared by the grade pipeline.
package model

// Path represents a file system path.
type Path string

// PathKind describes what a path selection is allowed to return.
type PathKind int

const (
	// PathKindFile accepts existing files only.
	PathKindFile PathKind = iota
	// PathKindDirectory accepts directories only.
	PathKindDirectory
	// PathKindFileOrDirectory accepts either a file or a directory.
	PathKindFileOrDirectory
)

func (k PathKind) String() string {
	switch k {
	case PathKindFile:
		return "file"
	case PathKindDirectory:
		return "directory"
	case PathKindFileOrDirectory:
		return "file or directory"
	default:
		return "unknown"
	}
}

// PathRequest describes an interactive path selection.
type PathRequest struct {
	Kind       PathKind
	Title      string
	InitialDir Path
	// Extensions filters selectable files, e.g. ".csv". Empty means any.
	Extensions []string
}
