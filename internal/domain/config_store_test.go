package domain_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "graderecorder.dev/pkg/graderecorder/internal/adapter/mocks"
	"graderecorder.dev/pkg/graderecorder/internal/domain"
	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

func TestConfigStore_ResolveLocation_Hint(t *testing.T) {
	store, _ := newMemStore(t, nil)

	loc, err := store.ResolveLocation(context.Background(), "/custom")
	require.NoError(t, err)

	assert.Equal(t, domain.Location{Dir: "/custom", FileName: domain.DefaultConfigFileName}, loc)
}

func TestConfigStore_ResolveLocation_Selection(t *testing.T) {
	tests := []struct {
		name     string
		selected m.Path
		ok       bool
		setup    func(t *testing.T, store domain.ConfigStore)
		want     domain.Location
	}{
		{
			name: "cancelled uses default",
			ok:   false,
			want: domain.Location{Dir: testConfigDir, FileName: domain.DefaultConfigFileName},
		},
		{
			name:     "missing path falls back to default",
			selected: "/does/not/exist",
			ok:       true,
			want:     domain.Location{Dir: testConfigDir, FileName: domain.DefaultConfigFileName},
		},
		{
			name:     "directory",
			selected: "/old",
			ok:       true,
			setup: func(t *testing.T, store domain.ConfigStore) {
				_, err := store.Initialize(context.Background(), "/old", false)
				require.NoError(t, err)
			},
			want: domain.Location{Dir: "/old", FileName: domain.DefaultConfigFileName},
		},
		{
			name:     "existing xml document",
			selected: "/old/configuration.xml",
			ok:       true,
			setup: func(t *testing.T, store domain.ConfigStore) {
				_, err := store.Initialize(context.Background(), "/old", false)
				require.NoError(t, err)
			},
			want: domain.Location{Dir: "/old", FileName: "configuration.xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector := adaptermocks.NewMockPathSelector(t)
			selector.EXPECT().SelectPath(mock.Anything, mock.MatchedBy(func(req m.PathRequest) bool {
				return req.Kind == m.PathKindFileOrDirectory && req.InitialDir == testConfigDir
			})).Return(tt.selected, tt.ok, nil).Once()

			store, fsys := newMemStore(t, selector)
			if tt.setup != nil {
				tt.setup(t, store)
			}

			loc, err := store.ResolveLocation(context.Background(), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc)

			exists, err := afero.Exists(fsys, string(loc.File()))
			require.NoError(t, err)
			assert.True(t, exists, "resolved document must exist")
		})
	}
}

func TestConfigStore_ResolveLocation_SelectorError(t *testing.T) {
	selector := adaptermocks.NewMockPathSelector(t)
	selector.EXPECT().SelectPath(mock.Anything, mock.Anything).Return(m.Path(""), false, errors.New("no display")).Once()

	store, _ := newMemStore(t, selector)

	_, err := store.ResolveLocation(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}

func TestConfigStore_Load(t *testing.T) {
	store, fsys := newMemStore(t, nil)
	writeFile(t, fsys, "/cfg/configuration.xml", configXML(
		"outputFileName", "final",
		"outputFileExt", ".csv",
		"gradesPath", "/data",
		"outputPath", "/out",
		"scoringPolicy", "letter",
	))

	cfg := loadAt(t, store, "/cfg")

	assert.Equal(t, "final", cfg.OutputFileName())
	assert.Equal(t, ".csv", cfg.OutputFileExt())
	assert.Equal(t, m.Path("/data"), cfg.GradesPath())
	assert.Equal(t, m.Path("/out"), cfg.OutputPath())
	assert.Equal(t, domain.PolicyLetter, cfg.ScoringPolicy())
	assert.Equal(t, m.Path("/out/final.csv"), cfg.OutputFile())
}

func TestConfigStore_Load_MissingEntriesUseDefaults(t *testing.T) {
	store, fsys := newMemStore(t, nil)
	writeFile(t, fsys, "/cfg/configuration.xml", configXML("outputFileExt", ".txt"))

	cfg := loadAt(t, store, "/cfg")

	assert.Equal(t, ".txt", cfg.OutputFileExt())
	assert.Equal(t, domain.DefaultOutputFileName, cfg.OutputFileName())
	assert.Equal(t, domain.DefaultScoringPolicy, cfg.ScoringPolicy())

	saved, err := store.Save(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, saved)

	reloaded := loadAt(t, store, "/cfg")
	assert.Equal(t, cfg.Settings(), reloaded.Settings())
	assert.Contains(t, readFile(t, fsys, "/cfg/configuration.xml"), "<Name>scoringPolicy</Name>")
}

func TestConfigStore_Load_InvalidValueKeepsDefault(t *testing.T) {
	store, fsys := newMemStore(t, nil)
	writeFile(t, fsys, "/cfg/configuration.xml", configXML("outputFileExt", ".pdf"))

	cfg := loadAt(t, store, "/cfg")

	assert.Equal(t, domain.DefaultOutputFileExt, cfg.OutputFileExt())
}

func TestConfigStore_Load_Corrupted(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not xml", "this is not xml"},
		{"empty", ""},
		{"wrong root", "<Settings><Setting><Name>outputFileExt</Name></Setting></Settings>"},
		{"blank name", configXML("", ".csv")},
		{"duplicate setting", configXML("outputFileExt", ".csv", "outputFileExt", ".txt")},
		{"two values", "<Config><Setting><Name>outputFileExt</Name><Value>.csv</Value><Value>.txt</Value></Setting></Config>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, fsys := newMemStore(t, nil)
			writeFile(t, fsys, "/cfg/configuration.xml", tt.content)

			_, err := store.Load(context.Background(), domain.Location{Dir: "/cfg", FileName: domain.DefaultConfigFileName})
			require.ErrorIs(t, err, m.ErrCorruptedConfig)

			// The document was regenerated from defaults and loads cleanly.
			cfg := loadAt(t, store, "/cfg")
			assert.Equal(t, domain.DefaultOutputFileExt, cfg.OutputFileExt())
		})
	}
}

func TestConfigStore_LoadSave_Idempotent(t *testing.T) {
	store, fsys := newMemStore(t, nil)
	original := configXML(
		"outputFileName", "final",
		"outputFileExt", ".csv",
		"gradesPath", "/data",
		"outputPath", "/out",
		"scoringPolicy", "mean",
	)
	writeFile(t, fsys, "/cfg/configuration.xml", original)

	cfg := loadAt(t, store, "/cfg")

	saved, err := store.Save(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, saved)

	reloaded := loadAt(t, store, "/cfg")
	assert.Equal(t, cfg.Settings(), reloaded.Settings())

	first := readFile(t, fsys, "/cfg/configuration.xml")

	_, err = store.Save(context.Background(), reloaded)
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, fsys, "/cfg/configuration.xml"))
}

func TestConfigStore_Save_PreservesUnknownEntries(t *testing.T) {
	store, fsys := newMemStore(t, nil)
	writeFile(t, fsys, "/cfg/configuration.xml", `<Config version="2">
  <Setting><Name>outputFileExt</Name><Value>.csv</Value></Setting>
  <Setting><Name>theme</Name><Value>dark</Value></Setting>
  <Comment>kept</Comment>
</Config>`)

	cfg := loadAt(t, store, "/cfg")
	require.NoError(t, cfg.SetOutputFileExt(".xml"))

	saved, err := store.Save(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, saved)

	doc := readFile(t, fsys, "/cfg/configuration.xml")
	assert.Contains(t, doc, `version="2"`)
	assert.Contains(t, doc, "<Name>theme</Name>")
	assert.Contains(t, doc, "<Value>dark</Value>")
	assert.Contains(t, doc, "<Comment>kept</Comment>")
	assert.Contains(t, doc, "<Value>.xml</Value>")
	assert.NotContains(t, doc, "<Value>.csv</Value>")
}

func TestConfigStore_Save_KeepsDocumentOrder(t *testing.T) {
	store, fsys := newMemStore(t, nil)
	writeFile(t, fsys, "/cfg/configuration.xml", `<?xml version="1.0" encoding="UTF-8"?>
<!-- managed by the registrar -->
<Config>
  <Note>first</Note>
  <!-- output settings -->
  <Setting><Name>outputFileExt</Name><Value>.csv</Value></Setting>
  <Setting><Name>theme</Name><Value>dark</Value></Setting>
</Config>
`)

	cfg := loadAt(t, store, "/cfg")
	require.NoError(t, cfg.SetOutputFileExt(".txt"))

	saved, err := store.Save(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, saved)

	doc := readFile(t, fsys, "/cfg/configuration.xml")
	order := []string{
		"<!-- managed by the registrar -->",
		"<Config>",
		"<Note>first</Note>",
		"<!-- output settings -->",
		"<Name>outputFileExt</Name><Value>.txt</Value>",
		"<Name>theme</Name>",
		"<Name>outputFileName</Name>",
		"</Config>",
	}

	last := -1
	for _, fragment := range order {
		idx := strings.Index(doc, fragment)
		require.Greater(t, idx, last, "%q out of order in:\n%s", fragment, doc)
		last = idx
	}

	reloaded := loadAt(t, store, "/cfg")
	assert.Equal(t, ".txt", reloaded.OutputFileExt())
}

func TestConfigStore_Save_NoRecognizedSettings(t *testing.T) {
	store, fsys := newMemStore(t, nil)
	original := configXML("theme", "dark")
	writeFile(t, fsys, "/cfg/configuration.xml", original)

	cfg := loadAt(t, store, "/cfg")

	saved, err := store.Save(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, original, readFile(t, fsys, "/cfg/configuration.xml"))
}

func TestConfigStore_Save_MissingDocument(t *testing.T) {
	store, fsys := newMemStore(t, nil)
	writeFile(t, fsys, "/cfg/configuration.xml", configXML("outputFileExt", ".csv"))

	cfg := loadAt(t, store, "/cfg")
	require.NoError(t, fsys.Remove("/cfg/configuration.xml"))

	_, err := store.Save(context.Background(), cfg)
	require.ErrorIs(t, err, m.ErrFileNotFound)
}

func TestConfigStore_Initialize(t *testing.T) {
	store, fsys := newMemStore(t, nil)
	ctx := context.Background()

	path, err := store.Initialize(ctx, "/cfg", false)
	require.NoError(t, err)
	assert.Equal(t, m.Path("/cfg/configuration.xml"), path)

	doc := readFile(t, fsys, string(path))
	for _, name := range domain.RecognizedSettings {
		assert.Contains(t, doc, "<Name>"+name+"</Name>")
	}

	assert.True(t, strings.HasPrefix(doc, "<?xml"))

	_, err = store.Initialize(ctx, "/cfg", false)
	require.ErrorIs(t, err, os.ErrExist)

	writeFile(t, fsys, string(path), "garbage")

	_, err = store.Initialize(ctx, "/cfg", true)
	require.NoError(t, err)
	assert.Equal(t, doc, readFile(t, fsys, string(path)))
}

func TestConfigStore_Initialize_DefaultDir(t *testing.T) {
	store, _ := newMemStore(t, nil)

	path, err := store.Initialize(context.Background(), "", false)
	require.NoError(t, err)
	assert.Equal(t, testConfigDir+"/configuration.xml", path)
}

func TestConfigStore_CancelledContext(t *testing.T) {
	store, _ := newMemStore(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Open(ctx, "/cfg")
	require.ErrorIs(t, err, context.Canceled)
}

// countingStore records how often Save is called.
type countingStore struct {
	domain.ConfigStore
	saves int
}

func (s *countingStore) Save(ctx context.Context, cfg *domain.Configuration) (bool, error) {
	s.saves++
	return s.ConfigStore.Save(ctx, cfg)
}

func TestConfigSession_CloseSavesOnce(t *testing.T) {
	store, fsys := newMemStore(t, nil)
	writeFile(t, fsys, "/cfg/configuration.xml", configXML("outputFileExt", ".csv"))

	counting := &countingStore{ConfigStore: store}
	session := domain.NewConfigSession(counting, loadAt(t, store, "/cfg"))

	require.NoError(t, session.Config().SetGradesPath("/data/term1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, session.Close(ctx))
	require.NoError(t, session.Close(context.Background()))

	assert.Equal(t, 1, counting.saves)
	assert.Contains(t, readFile(t, fsys, "/cfg/configuration.xml"), "<Value>/data/term1</Value>")
}

func TestConfigStore_Open(t *testing.T) {
	store, fsys := newMemStore(t, nil)
	writeFile(t, fsys, "/cfg/configuration.xml", configXML("outputFileExt", ".txt"))

	session, err := store.Open(context.Background(), "/cfg")
	require.NoError(t, err)

	assert.Equal(t, ".txt", session.Config().OutputFileExt())
	require.NoError(t, session.Close(context.Background()))
}
