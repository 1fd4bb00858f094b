package adapter

import (
	"context"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// PathSelector asks the user for a path. It returns ok=false when the user
// dismissed the selection; err is reserved for failures of the prompt itself.
type PathSelector interface {
	SelectPath(ctx context.Context, req m.PathRequest) (path m.Path, ok bool, err error)
}
