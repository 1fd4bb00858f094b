package domain_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"graderecorder.dev/pkg/graderecorder/internal/adapter"
	"graderecorder.dev/pkg/graderecorder/internal/domain"
	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

const testConfigDir = m.Path("/home/user/Grade-Recorder")

func newMemStore(t *testing.T, selector adapter.PathSelector) (domain.ConfigStore, afero.Fs) {
	t.Helper()

	fsys := afero.NewMemMapFs()

	return domain.NewConfigStore(adapter.NewFSAdapter(fsys), selector, testConfigDir), fsys
}

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()

	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)

	return string(data)
}

func configXML(settings ...string) string {
	doc := `<?xml version="1.0" encoding="UTF-8"?>` + "\n<Config>\n"
	for i := 0; i+1 < len(settings); i += 2 {
		doc += "  <Setting>\n    <Name>" + settings[i] + "</Name>\n    <Value>" + settings[i+1] + "</Value>\n  </Setting>\n"
	}

	return doc + "</Config>\n"
}

func loadAt(t *testing.T, store domain.ConfigStore, dir m.Path) *domain.Configuration {
	t.Helper()

	cfg, err := store.Load(context.Background(), domain.Location{Dir: dir, FileName: domain.DefaultConfigFileName})
	require.NoError(t, err)

	return cfg
}
