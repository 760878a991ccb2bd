package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultBaseURL      = "http://127.0.0.1:8080"
	defaultStoreBackend = "file"
)

type Config struct {
	API     APIConfig     `toml:"api"`
	Logging LoggingConfig `toml:"logging"`
	Store   StoreConfig   `toml:"store"`
	UI      UIConfig      `toml:"ui"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type StoreConfig struct {
	Backend string `toml:"backend"`
}

type UIConfig struct {
	DefaultActivity string `toml:"default_activity"`
}

func Default() Config {
	return Config{
		API:     APIConfig{BaseURL: defaultBaseURL},
		Logging: LoggingConfig{Level: "info"},
		Store:   StoreConfig{Backend: defaultStoreBackend},
	}
}

// Load reads the settings file, layering it over the defaults. A missing
// or empty file yields the defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func loadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) BaseURL() string {
	url := strings.TrimSpace(c.API.BaseURL)
	if url == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(url, "/")
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c Config) StoreBackend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch backend {
	case "", defaultStoreBackend:
		return defaultStoreBackend
	case "bbolt":
		return "bbolt"
	default:
		return defaultStoreBackend
	}
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
