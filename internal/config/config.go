package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/indaco/relbump/internal/core"
)

// DefaultConfigFile is looked up in the project root when no path is given.
const DefaultConfigFile = ".relbump.yaml"

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "RELBUMP_CONFIG"

// ManifestConfig locates the package manifest and its version fields.
type ManifestConfig struct {
	Path           string `yaml:"path"`
	Format         string `yaml:"format,omitempty"`
	VersionField   string `yaml:"version_field"`
	FormatterField string `yaml:"formatter_field"`
}

// TextFileConfig describes a regex substitution in a free-text file.
// Replacement is a mustache template, see TemplateData.
type TextFileConfig struct {
	Path        string `yaml:"path"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// Render returns the replacement with data filled in.
func (t TextFileConfig) Render(data TemplateData) (string, error) {
	return RenderTemplate(t.Replacement, data)
}

// GitConfig holds the templates of the suggested git commands.
type GitConfig struct {
	CommitMessage string `yaml:"commit_message"`
	TagMessage    string `yaml:"tag_message"`
}

// ChangelogConfig locates the changelog and the end of its header.
type ChangelogConfig struct {
	Path        string `yaml:"path"`
	HeaderLines int    `yaml:"header_lines"`
	Anchor      string `yaml:"anchor,omitempty"`
}

// Config is the main configuration structure for relbump.
type Config struct {
	FormatterName string          `yaml:"formatter_name"`
	TagPrefix     string          `yaml:"tag_prefix"`
	Strict        bool            `yaml:"strict"`
	Theme         string          `yaml:"theme,omitempty"`
	Manifest      ManifestConfig  `yaml:"manifest"`
	Readme        TextFileConfig  `yaml:"readme"`
	Script        TextFileConfig  `yaml:"script"`
	Changelog     ChangelogConfig `yaml:"changelog"`
	Git           GitConfig       `yaml:"git"`
}

// Default returns the layout of the gdscript-formatter editor extension.
func Default() *Config {
	return &Config{
		FormatterName: "gdscript-formatter",
		TagPrefix:     "v",
		Manifest: ManifestConfig{
			Path:           "package.json",
			Format:         "json",
			VersionField:   "version",
			FormatterField: "gdscript_formatter_version",
		},
		Readme: TextFileConfig{
			Path:        "README.md",
			Pattern:     "version `[\\d\\.]+`",
			Replacement: "version `{{formatter_version}}`",
		},
		Script: TextFileConfig{
			Path:        "get-binary.sh",
			Pattern:     `DEFAULT_VERSION="[\d\.]+"`,
			Replacement: `DEFAULT_VERSION="{{formatter_version}}"`,
		},
		Changelog: ChangelogConfig{
			Path:        "CHANGELOG.md",
			HeaderLines: 3,
		},
		Git: GitConfig{
			CommitMessage: "Update to {{formatter_name}} version {{formatter_version}}",
			TagMessage:    "Publish version {{version}}",
		},
	}
}

// applyDefaults fills every zero value from Default. TagPrefix is left
// alone since an empty prefix is valid.
func (c *Config) applyDefaults() {
	d := Default()
	setIfEmpty(&c.FormatterName, d.FormatterName)

	setIfEmpty(&c.Manifest.Path, d.Manifest.Path)
	setIfEmpty(&c.Manifest.VersionField, d.Manifest.VersionField)
	setIfEmpty(&c.Manifest.FormatterField, d.Manifest.FormatterField)

	setIfEmpty(&c.Readme.Path, d.Readme.Path)
	setIfEmpty(&c.Readme.Pattern, d.Readme.Pattern)
	setIfEmpty(&c.Readme.Replacement, d.Readme.Replacement)

	setIfEmpty(&c.Script.Path, d.Script.Path)
	setIfEmpty(&c.Script.Pattern, d.Script.Pattern)
	setIfEmpty(&c.Script.Replacement, d.Script.Replacement)

	setIfEmpty(&c.Changelog.Path, d.Changelog.Path)
	if c.Changelog.HeaderLines == 0 {
		c.Changelog.HeaderLines = d.Changelog.HeaderLines
	}

	setIfEmpty(&c.Git.CommitMessage, d.Git.CommitMessage)
	setIfEmpty(&c.Git.TagMessage, d.Git.TagMessage)
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// ResolvePaths makes every relative file path relative to dir.
func (c *Config) ResolvePaths(dir string) {
	if dir == "" || dir == "." {
		return
	}
	for _, p := range []*string{&c.Manifest.Path, &c.Readme.Path, &c.Script.Path, &c.Changelog.Path} {
		if !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// LoadConfigFn is a function variable so tests can replace config loading.
var LoadConfigFn = Load

// Load reads the configuration for the project rooted at dir.
//
// Lookup order: explicit path, then $RELBUMP_CONFIG, then
// dir/.relbump.yaml. An explicit or env path must exist; a missing default
// file yields Default(). Relative file paths are resolved against dir.
func Load(dir, explicit string) (*Config, error) {
	path, required := explicit, true
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path, required = filepath.Join(dir, DefaultConfigFile), false
	}

	cfg, err := loadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			cfg = Default()
		} else {
			return nil, err
		}
	}

	cfg.ResolvePaths(dir)
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// tag_prefix is preset so an explicit empty value survives applyDefaults.
	cfg := Config{TagPrefix: Default().TagPrefix}
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

// yamlMarshaler is the production implementation of core.Marshaler using YAML.
type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v, yaml.Indent(2))
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// SaveTo writes cfg to configFile, refusing to overwrite an existing file
// unless overwrite is set.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string, overwrite bool) error {
	flag := os.O_RDWR | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag = os.O_RDWR | os.O_CREATE | os.O_EXCL
	}

	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	file, err := s.fileOpener.OpenFile(configFile, flag, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

// ConfigFilePerm is the mode of a newly written config file.
const ConfigFilePerm = core.PermDefault
