package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// Configuration file naming and defaults.
const (
	DefaultConfigFileName = "configuration.xml"
	ConfigFileExt         = ".xml"

	DefaultOutputFileName = "computed-grades"
	DefaultOutputFileExt  = ".xlsx"
	DefaultScoringPolicy  = PolicyMean
)

// Names of the settings stored in the configuration document.
const (
	SettingOutputFileName = "outputFileName"
	SettingOutputFileExt  = "outputFileExt"
	SettingGradesPath     = "gradesPath"
	SettingOutputPath     = "outputPath"
	SettingScoringPolicy  = "scoringPolicy"
)

// ValidOutputExts are the output extensions accepted besides the default.
var ValidOutputExts = []string{".xml", ".csv", ".txt"}

// RecognizedSettings lists the settings in document order.
var RecognizedSettings = []string{
	SettingOutputFileName,
	SettingOutputFileExt,
	SettingGradesPath,
	SettingOutputPath,
	SettingScoringPolicy,
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var outputExtRule = "startswith=.,oneof=" + DefaultOutputFileExt + " " + strings.Join(ValidOutputExts, " ")

// Configuration holds the settings for one run. Values change only through
// the typed setters, which reject invalid input and keep the prior value.
type Configuration struct {
	configPath     m.Path
	configFileName string
	outputFileName string
	outputFileExt  string
	gradesPath     m.Path
	outputPath     m.Path
	scoringPolicy  string
}

func newConfiguration(loc Location) *Configuration {
	return &Configuration{
		configPath:     loc.Dir,
		configFileName: loc.FileName,
		outputFileName: DefaultOutputFileName,
		outputFileExt:  DefaultOutputFileExt,
		scoringPolicy:  DefaultScoringPolicy,
	}
}

// ConfigPath returns the directory of the configuration document.
func (c *Configuration) ConfigPath() m.Path { return c.configPath }

// ConfigFileName returns the file name of the configuration document.
func (c *Configuration) ConfigFileName() string { return c.configFileName }

// ConfigFile returns the full path of the configuration document.
func (c *Configuration) ConfigFile() m.Path {
	return m.Path(filepath.Join(string(c.configPath), c.configFileName))
}

// OutputFileName returns the output file name without extension.
func (c *Configuration) OutputFileName() string { return c.outputFileName }

// OutputFileExt returns the output extension, including the leading dot.
func (c *Configuration) OutputFileExt() string { return c.outputFileExt }

// GradesPath returns the directory grade files are picked from.
func (c *Configuration) GradesPath() m.Path { return c.gradesPath }

// OutputPath returns the directory results are written to.
func (c *Configuration) OutputPath() m.Path { return c.outputPath }

// ScoringPolicy returns the name of the GPA scoring policy.
func (c *Configuration) ScoringPolicy() string { return c.scoringPolicy }

// OutputFile returns the full output path. An empty output path resolves to
// the configuration directory.
func (c *Configuration) OutputFile() m.Path {
	dir := c.outputPath
	if dir == "" {
		dir = c.configPath
	}

	return m.Path(filepath.Join(string(dir), c.outputFileName+c.outputFileExt))
}

// SetOutputFileName sets the output file name. Names containing a path
// separator are rejected.
func (c *Configuration) SetOutputFileName(name string) error {
	if err := validate.Var(name, "required,excludesall=/\\"); err != nil {
		return invalidSetting(SettingOutputFileName, name, err)
	}

	c.outputFileName = name

	return nil
}

// SetOutputFileExt sets the output extension. It must start with a dot and
// be the default extension or one of ValidOutputExts.
func (c *Configuration) SetOutputFileExt(ext string) error {
	if err := validate.Var(ext, outputExtRule); err != nil {
		return invalidSetting(SettingOutputFileExt, ext, err)
	}

	c.outputFileExt = ext

	return nil
}

// SetGradesPath sets the directory grade files are picked from.
func (c *Configuration) SetGradesPath(path m.Path) error {
	c.gradesPath = path
	return nil
}

// SetOutputPath sets the directory results are written to.
func (c *Configuration) SetOutputPath(path m.Path) error {
	c.outputPath = path
	return nil
}

// SetScoringPolicy selects a registered scoring policy by name.
func (c *Configuration) SetScoringPolicy(name string) error {
	if _, err := LookupPolicy(name); err != nil {
		return invalidSetting(SettingScoringPolicy, name, err)
	}

	c.scoringPolicy = name

	return nil
}

// Set assigns a setting by its document name.
func (c *Configuration) Set(name, value string) error {
	switch name {
	case SettingOutputFileName:
		return c.SetOutputFileName(value)
	case SettingOutputFileExt:
		return c.SetOutputFileExt(value)
	case SettingGradesPath:
		return c.SetGradesPath(m.Path(value))
	case SettingOutputPath:
		return c.SetOutputPath(m.Path(value))
	case SettingScoringPolicy:
		return c.SetScoringPolicy(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", m.ErrInvalidSetting, name)
	}
}

// Get returns a setting by its document name.
func (c *Configuration) Get(name string) (string, bool) {
	switch name {
	case SettingOutputFileName:
		return c.outputFileName, true
	case SettingOutputFileExt:
		return c.outputFileExt, true
	case SettingGradesPath:
		return string(c.gradesPath), true
	case SettingOutputPath:
		return string(c.outputPath), true
	case SettingScoringPolicy:
		return c.scoringPolicy, true
	default:
		return "", false
	}
}

// Settings returns every recognized setting in document order.
func (c *Configuration) Settings() []m.Setting {
	settings := make([]m.Setting, 0, len(RecognizedSettings))
	for _, name := range RecognizedSettings {
		value, _ := c.Get(name)
		settings = append(settings, m.Setting{Name: name, Value: value})
	}

	return settings
}

// defaultSettingValue is the value used when a setting is absent or empty.
func defaultSettingValue(name string) string {
	switch name {
	case SettingOutputFileName:
		return DefaultOutputFileName
	case SettingOutputFileExt:
		return DefaultOutputFileExt
	case SettingScoringPolicy:
		return DefaultScoringPolicy
	default:
		return ""
	}
}

func isRecognizedSetting(name string) bool {
	for _, s := range RecognizedSettings {
		if s == name {
			return true
		}
	}

	return false
}

func invalidSetting(name, value string, cause error) error {
	return fmt.Errorf("%w: %s=%q: %w", m.ErrInvalidSetting, name, value, cause)
}
