// internal/config/load.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the loader looks when no path is given.
const DefaultPath = "config/motion_config.yml"

// EnvPrefix namespaces environment overrides (PHOTOTRAP_CAMERA_FPS=15).
const EnvPrefix = "PHOTOTRAP"

// Load reads the YAML file at path, layering environment overrides on top.
// A missing file is created with Default() and loading continues from it.
// Load does not validate; callers run Validate then Normalize.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := WriteDefault(path); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	registerDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &cfg, nil
}

// WriteDefault creates path (and its directory) holding Default() as YAML.
// An existing file is left untouched.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}

	out, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("config: encode defaults: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(out); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// registerDefaults flattens d into viper keys so that partial files and
// env-only overrides resolve every field.
func registerDefaults(v *viper.Viper, d Config) {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return
	}
	setTree(v, "", tree)
}

func setTree(v *viper.Viper, prefix string, node map[string]any) {
	for k, val := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := val.(map[string]any); ok {
			setTree(v, key, child)
			continue
		}
		v.SetDefault(key, val)
	}
}
