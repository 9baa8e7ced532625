// Package config loads nucamp settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the server and the CLI.
type Config struct {
	// Port is the TCP port the web server listens on.
	Port int `yaml:"port,omitempty" json:"port"`

	// DBPath is the SQLite database file. Empty means db.DefaultPath.
	DBPath string `yaml:"db_path,omitempty" json:"db_path"`

	// ImageBaseURL prefixes campsite image references when rendering.
	ImageBaseURL string `yaml:"image_base_url,omitempty" json:"image_base_url"`

	// ImagesDir, when set, is served under /images/.
	ImagesDir string `yaml:"images_dir,omitempty" json:"images_dir"`

	// DevMode switches logging to human-readable debug output.
	DevMode bool `yaml:"dev_mode,omitempty" json:"dev_mode"`

	// ServerURL is where the CLI reaches the JSON API.
	ServerURL string `yaml:"server_url,omitempty" json:"server_url"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:         8080,
		ImageBaseURL: "/images/",
		ServerURL:    "http://localhost:8080",
	}
}

// Path returns the config file path: ~/.config/nucamp/config.yaml
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "nucamp", "config.yaml"), nil
}

// Load reads the config file (if present) over the defaults, then applies
// environment overrides.
func Load() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads the config file over the defaults without environment
// overrides. Use it when the result is written back with Save.
func LoadFile() (Config, error) {
	cfg := Defaults()

	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile decodes the YAML file at path into cfg. A missing file is not an error.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

// applyEnv overrides cfg from NUCAMP_* environment variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("NUCAMP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid NUCAMP_PORT %q", v)
		}
		cfg.Port = port
	}
	if v := os.Getenv("NUCAMP_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("NUCAMP_IMAGE_BASE_URL"); v != "" {
		cfg.ImageBaseURL = v
	}
	if v := os.Getenv("NUCAMP_IMAGES_DIR"); v != "" {
		cfg.ImagesDir = v
	}
	if v := os.Getenv("NUCAMP_DEV"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid NUCAMP_DEV %q", v)
		}
		cfg.DevMode = dev
	}
	if v := os.Getenv("NUCAMP_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	return nil
}

// Save writes cfg to the config file.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
