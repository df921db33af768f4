package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given.
const defaultConfigFile = ".linewrap.yaml"

// Config is the on-disk configuration.
type Config struct {
	// The column budget. Zero means the engine's default.
	MaxWidth int `yaml:"max_width"`

	// Whether files are rewritten in place by default, mirroring the
	// editor-host on-save setting. The --write flag overrides it.
	ApplyOnSave bool `yaml:"apply_on_save"`
}

// loadConfig reads the configuration from path.
//
// When path is the default and the file does not exist, the zero Config is
// returned; an explicitly named file must exist.
func loadConfig(fsys afero.Fs, path string, explicit bool) (Config, error) {
	var cfg Config

	text, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(text, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.MaxWidth < 0 {
		return cfg, fmt.Errorf("%s: max_width must not be negative", path)
	}
	return cfg, nil
}
