package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

func dirFs(path string) afero.Fs {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), path)
}

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	return LoadFs(dirFs(path))
}

// LoadFs loads the configuration from the root of fsys.
func LoadFs(fsys afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(fsys, ConfigurationName)
	if err != nil {
		return nil, err
	}
	// Fields missing from the file keep their defaults.
	out := defaultConfig()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}
	out.configFs = fsys
	return out, nil
}

// LoadOrDefault loads the configuration from the directory, falling back to
// the defaults when there is none. The directory is still used for history
// and event logs if it exists.
func LoadOrDefault(path string) (*Configuration, error) {
	return LoadOrDefaultFs(dirFs(path))
}

// LoadOrDefaultFs is LoadOrDefault rooted at fsys.
func LoadOrDefaultFs(fsys afero.Fs) (*Configuration, error) {
	cfg, err := LoadFs(fsys)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = defaultConfig()
		if exists, _ := afero.DirExists(fsys, "."); exists {
			cfg.configFs = fsys
		} else {
			cfg.configFs = afero.NewMemMapFs()
		}
		return cfg, nil
	}
	return cfg, err
}

// Initialize writes the default configuration to the directory. An existing
// configuration is left untouched.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}
	return InitializeFs(dirFs(path), logger)
}

// InitializeFs writes the default configuration to the root of fsys.
func InitializeFs(fsys afero.Fs, logger *log.Logger) (*Configuration, error) {
	switch exists, err := afero.Exists(fsys, ConfigurationName); {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("- %s already exists, skipping", ConfigurationName)
	default:
		logger.Printf("- writing %s", ConfigurationName)
		if err := afero.WriteFile(fsys, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	}
	return LoadFs(fsys)
}
