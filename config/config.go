package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults the CLI falls back to when a flag is not given.
type Config struct {
	Sheet    int    `yaml:"sheet"`
	StartRow int    `yaml:"start_row"`
	Output   string `yaml:"output"`
	LogLevel string `yaml:"log_level"`
}

// Keys lists the settable keys in display order.
var Keys = []string{"sheet", "start_row", "output", "log_level"}

// Default returns the built-in settings: first worksheet, data from row 2,
// diff results to result.txt, warnings and above logged.
func Default() Config {
	return Config{
		Sheet:    0,
		StartRow: 2,
		Output:   "result.txt",
		LogLevel: "warn",
	}
}

func dir() (string, error) {
	if v := os.Getenv("GRIDMAP_CONFIG_DIR"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "gridmap"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gridmap"), nil
}

// Path is the location of the config file.
func Path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.yaml"), nil
}

// Load reads the config file. Keys missing from the file keep their
// defaults; a missing file yields Default().
func Load() (Config, error) {
	cfg := Default()
	p, err := Path()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", p, err)
	}
	return cfg, nil
}

// Save writes the config to disk atomically using a temp file + rename.
func Save(cfg Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	d := filepath.Dir(p)
	if err := os.MkdirAll(d, 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp := p + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	// Remove dest first for Windows compat (os.Rename fails if dest exists on Windows).
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Delete removes the config file.
func Delete() error {
	p, err := Path()
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Set parses value for key and stores it in cfg.
func (cfg *Config) Set(key, value string) error {
	switch key {
	case "sheet":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("sheet must be a worksheet index >= 0, got %q", value)
		}
		cfg.Sheet = n
	case "start_row":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("start_row must be a row number >= 1, got %q", value)
		}
		cfg.StartRow = n
	case "output":
		if value == "" {
			return fmt.Errorf("output must not be empty")
		}
		cfg.Output = value
	case "log_level":
		if _, err := zapcore.ParseLevel(value); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown key %q (valid keys: %v)", key, Keys)
	}
	return nil
}

// Get returns the value of key as text.
func (cfg Config) Get(key string) (string, error) {
	if !slices.Contains(Keys, key) {
		return "", fmt.Errorf("unknown key %q (valid keys: %v)", key, Keys)
	}
	switch key {
	case "sheet":
		return strconv.Itoa(cfg.Sheet), nil
	case "start_row":
		return strconv.Itoa(cfg.StartRow), nil
	case "output":
		return cfg.Output, nil
	default:
		return cfg.LogLevel, nil
	}
}
