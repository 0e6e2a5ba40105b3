package entitygen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/entitygen/entity"
	"github.com/gnolang/entitygen/internal/emit"
)

// DefaultConfigFile is the configuration file looked up by the CLI.
const DefaultConfigFile = ".entitygen.yaml"

// Config represents the overall configuration of a generation run.
type Config struct {
	// Entities is the path of a YAML entity table. The built-in table is
	// used when empty. Relative paths are resolved against the config file.
	Entities string `yaml:"entities,omitempty"`
	// Output is the destination file. Standard output when empty.
	Output  string      `yaml:"output,omitempty"`
	Backend string      `yaml:"backend"`
	Preset  string      `yaml:"preset"`
	Strict  bool        `yaml:"strict"`
	Syntax  emit.Syntax `yaml:"syntax,omitempty"`
	Go      GoConfig    `yaml:"go"`

	dir string
}

// GoConfig configures the Go backend.
type GoConfig struct {
	Package     string `yaml:"package"`
	Func        string `yaml:"func"`
	Type        string `yaml:"type"`
	Constructor string `yaml:"constructor"`
}

// DefaultConfig mirrors DefaultOptions.
func DefaultConfig() Config {
	return Config{
		Backend: string(BackendText),
		Preset:  emit.PresetGeneric,
		Go: GoConfig{
			Package:     emit.DefaultGoOptions.Package,
			Func:        emit.DefaultGoOptions.Func,
			Type:        emit.DefaultGoOptions.Type,
			Constructor: emit.DefaultGoOptions.Constructor,
		},
	}
}

// LoadConfig reads the configuration file at path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	config.dir = filepath.Dir(path)
	return config, nil
}

// WriteConfig writes c as YAML.
func WriteConfig(w io.Writer, c Config) error {
	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// EntitiesPath returns the entity table path, resolved against the
// directory of the loaded config file.
func (c Config) EntitiesPath() string {
	if c.Entities == "" || filepath.IsAbs(c.Entities) || c.dir == "" {
		return c.Entities
	}
	return filepath.Join(c.dir, c.Entities)
}

// Table loads the configured entity table.
func (c Config) Table() (entity.Table, error) {
	path := c.EntitiesPath()
	if path == "" {
		return entity.Default(), nil
	}
	return entity.LoadFile(path)
}

// Options resolves the preset and overrides into generation options.
func (c Config) Options() (Options, error) {
	opts := Options{
		Backend: Backend(c.Backend),
		Strict:  c.Strict,
		Go: emit.GoOptions{
			Package:     c.Go.Package,
			Func:        c.Go.Func,
			Type:        c.Go.Type,
			Constructor: c.Go.Constructor,
		},
	}

	switch opts.Backend {
	case BackendText, "":
		preset := c.Preset
		if preset == "" {
			preset = emit.PresetGeneric
		}
		syntax, err := emit.Preset(preset)
		if err != nil {
			return opts, err
		}
		opts.Backend = BackendText
		opts.Syntax = syntax.Merge(c.Syntax)
	case BackendGo:
	default:
		return opts, fmt.Errorf("unknown backend %q (expected %q or %q)", c.Backend, BackendText, BackendGo)
	}

	return opts, nil
}
