package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"

	"daytodo/internal/effect"
	"daytodo/internal/storage"
)

const (
	AppName               = "daytodo"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	ConfigEnvVar          = "DAYTODO_CONFIG"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Left      string `toml:"left"`
	Right     string `toml:"right"`
	Toggle    string `toml:"toggle"`
	Delete    string `toml:"delete"`
	ClearDone string `toml:"clear_done"`
	Today     string `toml:"today"`
	Focus     string `toml:"focus"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
}

type Config struct {
	Backend   string       `toml:"backend"`
	StorePath string       `toml:"store_path"`
	StoreKey  string       `toml:"store_key"`
	LogFile   string       `toml:"log_file"`
	LogLevel  string       `toml:"log_level"`
	Keys      Keymap       `toml:"keys"`
	Confetti  effect.Burst `toml:"confetti"`
}

// envOverrides are applied on top of the file.
type envOverrides struct {
	Backend   string `env:"DAYTODO_BACKEND"`
	StorePath string `env:"DAYTODO_STORE_PATH"`
	LogFile   string `env:"DAYTODO_LOG_FILE"`
	LogLevel  string `env:"DAYTODO_LOG_LEVEL"`
}

// ResolveConfigPath picks $DAYTODO_CONFIG, then the XDG config dir, then
// ~/.config.
func ResolveConfigPath() string {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, DefaultConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, ".config", AppName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// when the file does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return finish(path, cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return finish(path, cfg)
}

func finish(path string, cfg Config) (Config, error) {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if o.Backend != "" {
		cfg.Backend = o.Backend
	}
	if o.StorePath != "" {
		cfg.StorePath = o.StorePath
	}
	if o.LogFile != "" {
		cfg.LogFile = o.LogFile
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}

	if cfg.Backend == "" {
		cfg.Backend = storage.BackendSQLite
	}
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultDBName
	}
	if cfg.StoreKey == "" {
		cfg.StoreKey = storage.DefaultKey
	}
	if cfg.Confetti.ParticleCount <= 0 {
		cfg.Confetti = effect.DefaultBurst()
	}
	cfg.Keys = fillKeys(cfg.Keys)

	// Relative paths live next to the config file.
	base := filepath.Dir(path)
	if !filepath.IsAbs(cfg.StorePath) {
		cfg.StorePath = filepath.Join(base, cfg.StorePath)
	}
	if cfg.LogFile != "" && !filepath.IsAbs(cfg.LogFile) {
		cfg.LogFile = filepath.Join(base, cfg.LogFile)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func fillKeys(k Keymap) Keymap {
	d := defaultConfig().Keys
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Keymap{
		Quit:      pick(k.Quit, d.Quit),
		Add:       pick(k.Add, d.Add),
		Up:        pick(k.Up, d.Up),
		Down:      pick(k.Down, d.Down),
		Left:      pick(k.Left, d.Left),
		Right:     pick(k.Right, d.Right),
		Toggle:    pick(k.Toggle, d.Toggle),
		Delete:    pick(k.Delete, d.Delete),
		ClearDone: pick(k.ClearDone, d.ClearDone),
		Today:     pick(k.Today, d.Today),
		Focus:     pick(k.Focus, d.Focus),
		Confirm:   pick(k.Confirm, d.Confirm),
		Cancel:    pick(k.Cancel, d.Cancel),
	}
}

func defaultConfig() Config {
	return Config{
		Backend:   storage.BackendSQLite,
		StorePath: DefaultDBName,
		StoreKey:  storage.DefaultKey,
		LogLevel:  "info",
		Confetti:  effect.DefaultBurst(),
		Keys: Keymap{
			Quit:      "q",
			Add:       "a",
			Up:        "k",
			Down:      "j",
			Left:      "h",
			Right:     "l",
			Toggle:    " ",
			Delete:    "d",
			ClearDone: "c",
			Today:     "t",
			Focus:     "tab",
			Confirm:   "enter",
			Cancel:    "esc",
		},
	}
}

// Default returns the built-in configuration with no file or environment
// applied.
func Default() Config {
	return defaultConfig()
}
