package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendLocal = "local"
	BackendHTTP  = "http"
	BackendSpawn = "spawn"

	EnvConfigPath = "PROOFDIFF_CONFIG"
	FileName      = "proofdiff.yaml"
)

// Config is the whole user configuration. Zero fields take Default values
// when the file is loaded.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Diff    DiffConfig    `yaml:"diff"`
	Timing  TimingConfig  `yaml:"timing"`
	UI      UIConfig      `yaml:"ui"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

type BackendConfig struct {
	Mode    string        `yaml:"mode" validate:"required,backendmode"`
	URL     string        `yaml:"url,omitempty" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

type DiffConfig struct {
	Engine          string        `yaml:"engine" validate:"required,engine"`
	SemanticCleanup bool          `yaml:"semantic_cleanup"`
	Timeout         time.Duration `yaml:"timeout" validate:"gte=0"`
}

type TimingConfig struct {
	LoadDelay time.Duration `yaml:"load_delay" validate:"gte=0"`
	Debounce  time.Duration `yaml:"debounce" validate:"gt=0"`
	Frame     time.Duration `yaml:"frame" validate:"gt=0"`
}

type UIConfig struct {
	SyncScroll bool `yaml:"sync_scroll"`
	Wrap       bool `yaml:"wrap"`
	NoColor    bool `yaml:"no_color"`
	AltScreen  bool `yaml:"alt_screen"`
	Mouse      bool `yaml:"mouse"`
	MinColumn  int  `yaml:"min_column" validate:"min=8,max=200"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr" validate:"required,hostname_port"`
	MaxBodyMB int    `yaml:"max_body_mb" validate:"min=1,max=1024"`
}

type LogConfig struct {
	Level      string `yaml:"level" validate:"omitempty,loglevel"`
	Format     string `yaml:"format" validate:"omitempty,logformat"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=1"`
	MaxBackups int    `yaml:"max_backups" validate:"min=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend: BackendConfig{Mode: BackendLocal, URL: "http://127.0.0.1:8765", Timeout: 30 * time.Second},
		Diff:    DiffConfig{Engine: "difflib"},
		Timing:  TimingConfig{LoadDelay: 500 * time.Millisecond, Debounce: time.Second, Frame: 16 * time.Millisecond},
		UI:      UIConfig{SyncScroll: true, Wrap: true, AltScreen: true, Mouse: true, MinColumn: 24},
		Server:  ServerConfig{Addr: "127.0.0.1:8765", MaxBodyMB: 32},
		Log:     LogConfig{Level: "info", Format: "console", MaxSizeMB: 10, MaxBackups: 3},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := Validate(&c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &c, nil
}

// LoadOrDefault resolves the config path (see Path) and loads it, or
// returns validated defaults when no file exists. The resolved path is ""
// in the latter case.
func LoadOrDefault(flagPath string) (*Config, string, error) {
	p := Path(flagPath)
	if p == "" {
		if flagPath != "" {
			return nil, "", fmt.Errorf("read config: %s: %w", flagPath, os.ErrNotExist)
		}
		c := Default()
		return &c, "", nil
	}
	c, err := Load(p)
	return c, p, err
}

// Path picks the config file. Priority: explicit flag, PROOFDIFF_CONFIG,
// ./proofdiff.yaml, <user config dir>/proofdiff/config.yaml. It returns ""
// when none exists.
func Path(flagPath string) string {
	if flagPath != "" {
		if fileExists(flagPath) {
			return flagPath
		}
		return ""
	}
	if env := os.Getenv(EnvConfigPath); env != "" && fileExists(env) {
		return env
	}
	if fileExists(FileName) {
		return FileName
	}
	if p := UserPath(); p != "" && fileExists(p) {
		return p
	}
	return ""
}

// UserPath is the per-user config location, or "" if it cannot be
// determined.
func UserPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "proofdiff", "config.yaml")
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}

// Clone returns a copy of c.
func Clone(c *Config) *Config {
	out := *c
	return &out
}

// Save writes c as YAML, creating parent directories. It refuses to
// overwrite an existing file unless force is set.
func Save(path string, c *Config, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// IsExist reports whether err came from Save refusing to overwrite.
func IsExist(err error) bool { return errors.Is(err, os.ErrExist) }
