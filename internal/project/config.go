package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/hanpama/typegraph/internal/typegraph"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given.
const DefaultConfigFile = "typegraph.toml"

// Config is the typegraph.toml project file.
type Config struct {
	Schema           []string      `toml:"schema"`
	SchemaExtensions []string      `toml:"schema_extensions"`
	Options          OptionsConfig `toml:"options"`

	// Dir is the directory relative paths are resolved against.
	Dir string `toml:"-"`
}

type OptionsConfig struct {
	OnInvalidIDType string `toml:"on_invalid_id_type"`
}

// NewConfig returns the configuration used when no file exists.
func NewConfig() Config {
	return Config{
		Schema: []string{"."},
		Dir:    ".",
	}
}

// LoadConfig decodes path. A missing file yields NewConfig with Dir set to
// the file's directory.
func LoadConfig(path string) (Config, error) {
	c := NewConfig()
	c.Dir = filepath.Dir(path)
	if _, err := toml.DecodeFile(path, &c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return Config{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return c, c.Validate()
}

// Validate returns an error if the config is invalid.
func (c Config) Validate() error {
	if len(c.Schema) == 0 {
		return errors.New("schema must list at least one path")
	}
	if _, err := typegraph.ParseInvalidIDType(c.Options.OnInvalidIDType); err != nil {
		return err
	}
	return nil
}

// SchemaPaths returns the base roots resolved against Dir.
func (c Config) SchemaPaths() []string { return c.resolve(c.Schema) }

// ExtensionPaths returns the extension roots resolved against Dir.
func (c Config) ExtensionPaths() []string { return c.resolve(c.SchemaExtensions) }

func (c Config) resolve(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
		} else {
			out[i] = filepath.Join(c.Dir, p)
		}
	}
	return out
}

// SchemaOptions turns the [options] table into Schema options.
func (c Config) SchemaOptions() ([]typegraph.Option, error) {
	onInvalid, err := typegraph.ParseInvalidIDType(c.Options.OnInvalidIDType)
	if err != nil {
		return nil, err
	}
	return []typegraph.Option{typegraph.WithInvalidIDType(onInvalid)}, nil
}

// Load discovers the configured files and builds the project. Extra options
// are applied after the ones derived from c.
func Load(ctx context.Context, c Config, extra ...typegraph.Option) (*Project, error) {
	opts, err := c.SchemaOptions()
	if err != nil {
		return nil, err
	}
	disc, err := NewFileSystemDiscovery(ctx, c.SchemaPaths(), c.ExtensionPaths())
	if err != nil {
		return nil, err
	}
	return Build(ctx, disc, append(opts, extra...)...)
}
