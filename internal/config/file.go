package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".config"
	appDirName     = "treeline"
	configFileName = "config.yaml"
)

type fileConfig struct {
	Columns            string  `yaml:"columns"`
	ShowIgnoredFiles   *bool   `yaml:"show_ignored_files"`
	RootMarker         *string `yaml:"root_marker"`
	Sort               string  `yaml:"sort"`
	AutoCd             *bool   `yaml:"auto_cd"`
	AutoRecursiveLevel *int    `yaml:"auto_recursive_level"`
}

// DefaultPath returns ~/.config/treeline/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, appDirName, configFileName), nil
}

// LoadFile reads a YAML config file and merges it onto the defaults. A
// missing file yields the defaults; a malformed file is an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, err
	}

	m := make(map[string]any)
	if fc.Columns != "" {
		m["columns"] = fc.Columns
	}
	if fc.ShowIgnoredFiles != nil {
		m["show_ignored_files"] = *fc.ShowIgnoredFiles
	}
	if fc.RootMarker != nil {
		m["root_marker"] = *fc.RootMarker
	}
	if fc.Sort != "" {
		m["sort"] = fc.Sort
	}
	if fc.AutoCd != nil {
		m["auto_cd"] = *fc.AutoCd
	}
	if fc.AutoRecursiveLevel != nil {
		m["auto_recursive_level"] = *fc.AutoRecursiveLevel
	}
	if err := cfg.Update(m); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Load reads the config from the default location.
func Load() Config {
	path, err := DefaultPath()
	if err != nil {
		return Default()
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return Default()
	}
	return cfg
}
