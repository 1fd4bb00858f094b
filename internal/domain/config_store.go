package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"

	"graderecorder.dev/pkg/graderecorder/internal/adapter"
	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// Location identifies a configuration document on disk.
type Location struct {
	Dir      m.Path
	FileName string
}

// File returns the full path of the document.
func (l Location) File() m.Path {
	return m.Path(filepath.Join(string(l.Dir), l.FileName))
}

// ConfigStore loads, validates and persists the configuration document.
type ConfigStore interface {
	// ResolveLocation decides which document to use. A non-empty hint is
	// used verbatim as the directory; otherwise the user is asked.
	ResolveLocation(ctx context.Context, hint m.Path) (Location, error)
	// Load reads and validates the document at loc. A document failing the
	// integrity check is regenerated from defaults and m.ErrCorruptedConfig
	// is returned.
	Load(ctx context.Context, loc Location) (*Configuration, error)
	// Save writes the recognized settings of cfg back into its document and
	// leaves every other entry untouched. It reports false when the document
	// holds no recognized setting at all.
	Save(ctx context.Context, cfg *Configuration) (bool, error)
	// Initialize writes a default document into dir.
	Initialize(ctx context.Context, dir m.Path, force bool) (m.Path, error)
	// Open resolves and loads the configuration for one run.
	Open(ctx context.Context, hint m.Path) (*ConfigSession, error)
}

type configStore struct {
	fsAdapter  adapter.FSAdapter
	selector   adapter.PathSelector
	checker    ConfigIntegrityChecker
	defaultDir m.Path
}

// NewConfigStore constructs a ConfigStore. selector may be nil, in which
// case every interactive selection counts as cancelled.
func NewConfigStore(fsAdapter adapter.FSAdapter, selector adapter.PathSelector, defaultDir m.Path) ConfigStore {
	return &configStore{
		fsAdapter:  fsAdapter,
		selector:   selector,
		checker:    NewConfigIntegrityChecker(),
		defaultDir: defaultDir,
	}
}

func (s *configStore) defaultLocation() Location {
	return Location{Dir: s.defaultDir, FileName: DefaultConfigFileName}
}

func (s *configStore) ResolveLocation(ctx context.Context, hint m.Path) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}

	if hint != "" {
		return Location{Dir: hint, FileName: DefaultConfigFileName}, nil
	}

	selected, ok, err := s.selectConfig(ctx)
	if err != nil {
		return Location{}, fmt.Errorf("select configuration: %w", err)
	}

	if !ok {
		loc := s.defaultLocation()
		return loc, s.ensureDocument(loc)
	}

	exists, err := s.fsAdapter.Exists(selected)
	if err != nil {
		return Location{}, err
	}

	if !exists {
		slog.Warn("selected configuration path does not exist, using default", "path", selected)

		loc := s.defaultLocation()

		return loc, s.ensureDocument(loc)
	}

	isDir, err := s.fsAdapter.IsDir(selected)
	if err != nil {
		return Location{}, err
	}

	if isDir {
		return Location{Dir: selected, FileName: DefaultConfigFileName}, nil
	}

	dir := m.Path(filepath.Dir(string(selected)))
	base := filepath.Base(string(selected))

	if strings.EqualFold(filepath.Ext(base), ConfigFileExt) {
		return Location{Dir: dir, FileName: base}, nil
	}

	return Location{Dir: dir, FileName: DefaultConfigFileName}, nil
}

func (s *configStore) selectConfig(ctx context.Context) (m.Path, bool, error) {
	if s.selector == nil {
		return "", false, nil
	}

	return s.selector.SelectPath(ctx, m.PathRequest{
		Kind:       m.PathKindFileOrDirectory,
		Title:      "Choose a folder for the configuration file or the old configuration file itself",
		InitialDir: s.defaultDir,
		Extensions: []string{ConfigFileExt},
	})
}

// ensureDocument creates the directory and a default document when absent.
func (s *configStore) ensureDocument(loc Location) error {
	if err := s.fsAdapter.MkdirAll(loc.Dir); err != nil {
		return fmt.Errorf("create configuration directory: %w", err)
	}

	exists, err := s.fsAdapter.Exists(loc.File())
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	slog.Info("creating default configuration", "path", loc.File())

	return s.writeDefault(loc.File())
}

func (s *configStore) writeDefault(path m.Path) error {
	data, err := encodeDocument(defaultDocument())
	if err != nil {
		return fmt.Errorf("encode default configuration: %w", err)
	}

	return s.fsAdapter.WriteFile(path, data)
}

func (s *configStore) Load(ctx context.Context, loc Location) (*Configuration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.fsAdapter.ReadFile(loc.File())
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	if err := s.checker.Validate(data); err != nil {
		slog.Error("configuration failed integrity check", "path", loc.File(), "error", err)

		if regenErr := s.regenerate(loc.File(), data); regenErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", m.ErrCorruptedConfig, loc.File(), errors.Join(err, regenErr))
		}

		return nil, fmt.Errorf("%w: %s: %w", m.ErrCorruptedConfig, loc.File(), err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", m.ErrCorruptedConfig, loc.File(), err)
	}

	cfg := newConfiguration(loc)

	for _, setting := range doc.Settings {
		name := setting.name()
		if !isRecognizedSetting(name) {
			continue
		}

		value := setting.value()
		if value == "" {
			value = defaultSettingValue(name)
		}

		if err := cfg.Set(name, value); err != nil {
			slog.Warn("ignoring invalid setting, keeping default", "setting", name, "value", value, "error", err)
		}
	}

	slog.Info("configuration loaded", "path", loc.File(), "policy", cfg.ScoringPolicy(), "output", cfg.OutputFile())

	return cfg, nil
}

// regenerate replaces a corrupted document with defaults.
func (s *configStore) regenerate(path m.Path, previous []byte) error {
	if err := s.writeDefault(path); err != nil {
		slog.Error("failed to regenerate configuration", "path", path, "error", err)
		return err
	}

	regenerated, err := s.fsAdapter.ReadFile(path)
	if err == nil {
		diff, diffErr := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(previous)),
			B:        difflib.SplitLines(string(regenerated)),
			FromFile: "corrupted",
			ToFile:   "regenerated",
			Context:  1,
		})
		if diffErr == nil {
			slog.Debug("configuration regenerated", "path", path, "diff", diff)
		}
	}

	slog.Warn("configuration regenerated from defaults", "path", path)

	return nil
}

func (s *configStore) Save(ctx context.Context, cfg *Configuration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	path := cfg.ConfigFile()

	data, err := s.fsAdapter.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read configuration: %w", err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", m.ErrCorruptedConfig, path, err)
	}

	written := make(map[string]bool, len(RecognizedSettings))

	for i := range doc.Settings {
		name := doc.Settings[i].name()
		if !isRecognizedSetting(name) || written[name] {
			continue
		}

		value, _ := cfg.Get(name)
		doc.Settings[i].Values = []string{value}
		written[name] = true
	}

	if len(written) == 0 {
		slog.Warn("configuration has no recognized settings, not saving", "path", path)
		return false, nil
	}

	for _, name := range RecognizedSettings {
		if written[name] {
			continue
		}

		value, _ := cfg.Get(name)
		doc.appendSetting(newSettingNode(name, value))
	}

	out, err := encodeDocument(doc)
	if err != nil {
		return false, fmt.Errorf("encode configuration: %w", err)
	}

	if err := s.fsAdapter.WriteFile(path, out); err != nil {
		return false, fmt.Errorf("write configuration: %w", err)
	}

	slog.Debug("configuration saved", "path", path)

	return true, nil
}

func (s *configStore) Initialize(ctx context.Context, dir m.Path, force bool) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if dir == "" {
		dir = s.defaultDir
	}

	loc := Location{Dir: dir, FileName: DefaultConfigFileName}

	exists, err := s.fsAdapter.Exists(loc.File())
	if err != nil {
		return "", err
	}

	if exists && !force {
		return "", fmt.Errorf("configuration %s: %w", loc.File(), os.ErrExist)
	}

	if err := s.fsAdapter.MkdirAll(loc.Dir); err != nil {
		return "", fmt.Errorf("create configuration directory: %w", err)
	}

	if err := s.writeDefault(loc.File()); err != nil {
		return "", err
	}

	return loc.File(), nil
}

func (s *configStore) Open(ctx context.Context, hint m.Path) (*ConfigSession, error) {
	loc, err := s.ResolveLocation(ctx, hint)
	if err != nil {
		return nil, err
	}

	cfg, err := s.Load(ctx, loc)
	if err != nil {
		return nil, err
	}

	return &ConfigSession{store: s, config: cfg}, nil
}

// ConfigSession owns the Configuration for the duration of a run. Close
// persists it exactly once and must be deferred by the owner.
type ConfigSession struct {
	store  ConfigStore
	config *Configuration
	once   sync.Once
	err    error
}

// NewConfigSession wraps an already loaded configuration.
func NewConfigSession(store ConfigStore, cfg *Configuration) *ConfigSession {
	return &ConfigSession{store: store, config: cfg}
}

// Config returns the configuration owned by the session.
func (s *ConfigSession) Config() *Configuration {
	return s.config
}

// Close saves the configuration, even when ctx is already cancelled.
// Later calls return the first result.
func (s *ConfigSession) Close(ctx context.Context) error {
	s.once.Do(func() {
		saved, err := s.store.Save(context.WithoutCancel(ctx), s.config)
		if err != nil {
			slog.Error("failed to save configuration", "path", s.config.ConfigFile(), "error", err)
			s.err = err

			return
		}

		if !saved {
			slog.Warn("configuration not saved", "path", s.config.ConfigFile())
		}
	})

	return s.err
}
