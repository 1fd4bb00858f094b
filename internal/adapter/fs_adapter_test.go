package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

func TestLocalFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "grades.csv")
	content := "Alice,90,80\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}

	t.Run("missing file wraps ErrFileNotFound", func(t *testing.T) {
		_, err := adapter.ReadFile(m.Path(filepath.Join(root, "missing.csv")))
		if !errors.Is(err, m.ErrFileNotFound) {
			t.Fatalf("ReadFile() error = %v, want ErrFileNotFound", err)
		}
	})
}

func TestLocalFSAdapter_WriteFile(t *testing.T) {
	adapter := NewFSAdapter(afero.NewMemMapFs())

	path := m.Path("/cfg/nested/configuration.xml")
	if err := adapter.WriteFile(path, []byte("<Config/>")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := adapter.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != "<Config/>" {
		t.Fatalf("ReadFile() = %q", string(got))
	}

	entries, err := afero.ReadDir(adapter.Fs(), "/cfg/nested")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected only the written file, got %d entries", len(entries))
	}
}

func TestLocalFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "grades.txt")
	writeTestFile(t, path, "Alice 90\n")

	info, err := adapter.FileInfo(m.Path(path))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if info.IsDir() {
		t.Fatalf("FileInfo() reported directory for file")
	}

	if _, err := adapter.FileInfo(m.Path(filepath.Join(root, "nope"))); !errors.Is(err, m.ErrFileNotFound) {
		t.Fatalf("FileInfo() error = %v, want ErrFileNotFound", err)
	}
}

func TestLocalFSAdapter_ExistsAndIsDir(t *testing.T) {
	adapter := NewFSAdapter(afero.NewMemMapFs())

	if err := adapter.MkdirAll("/data/grades"); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	writeMemFile(t, adapter.Fs(), "/data/grades/a.csv", "x")

	tests := []struct {
		path       m.Path
		wantExists bool
		wantDir    bool
	}{
		{"/data/grades", true, true},
		{"/data/grades/a.csv", true, false},
		{"/data/none", false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.path), func(t *testing.T) {
			exists, err := adapter.Exists(tt.path)
			if err != nil {
				t.Fatalf("Exists() error = %v", err)
			}

			if exists != tt.wantExists {
				t.Fatalf("Exists() = %v, want %v", exists, tt.wantExists)
			}

			isDir, err := adapter.IsDir(tt.path)
			if err != nil {
				t.Fatalf("IsDir() error = %v", err)
			}

			if isDir != tt.wantDir {
				t.Fatalf("IsDir() = %v, want %v", isDir, tt.wantDir)
			}
		})
	}
}

func TestClassifyFSError(t *testing.T) {
	if err := classifyFSError("a", os.ErrPermission); !errors.Is(err, m.ErrFileAccessDenied) {
		t.Fatalf("expected ErrFileAccessDenied, got %v", err)
	}

	if err := classifyFSError("a", os.ErrNotExist); !errors.Is(err, m.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}

	plain := errors.New("boom")
	if err := classifyFSError("a", plain); !errors.Is(err, plain) || errors.Is(err, m.ErrFileNotFound) {
		t.Fatalf("unexpected classification: %v", err)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeMemFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()

	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
