// Package config loads tilde settings from defaults, a TOML file, TILDE_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/tilde/constants"
)

// Config is the resolved configuration
type Config struct {
	Log      LogConfig
	Terminal TerminalConfig
	Render   RenderConfig
}

// LogConfig controls the file logger; an empty File disables logging
type LogConfig struct {
	Level   string
	File    string
	MaxSize int64
}

// TerminalConfig controls raw mode and viewport discovery
type TerminalConfig struct {
	ReadTimeout   time.Duration
	ForceFallback bool
	WatchResize   bool
}

// RenderConfig controls frame composition
type RenderConfig struct {
	Banner        string
	MaxFrameBytes int
}

// Flag names bound onto config keys
const (
	FlagConfig        = "config"
	FlagLogLevel      = "log-level"
	FlagLogFile       = "log-file"
	FlagForceFallback = "force-fallback"
)

var flagKeys = map[string]string{
	FlagLogLevel:      "log.level",
	FlagLogFile:       "log.file",
	FlagForceFallback: "terminal.force_fallback",
}

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:   "info",
			MaxSize: constants.DefaultLogMaxSize,
		},
		Terminal: TerminalConfig{
			ReadTimeout: constants.DefaultReadTimeout,
			WatchResize: true,
		},
		Render: RenderConfig{
			Banner:        constants.BannerText(),
			MaxFrameBytes: constants.DefaultMaxFrameBytes,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tilde/config.toml or its platform equivalent
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("cannot determine config directory")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, constants.AppName, "config.toml"), nil
}

// BindFlags registers the command-line overrides on fs
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "Path to configuration file")
	fs.String(FlagLogLevel, "", "Log level (trace, debug, info, warn, error)")
	fs.String(FlagLogFile, "", "Append logs to this file")
	fs.Bool(FlagForceFallback, false, "Probe the viewport via cursor report instead of the winsize ioctl")
}

// Load resolves configuration. An explicit path must exist; the default path may be absent.
// fs may be nil; only flags the user set override lower layers.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	def := Default()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.max_size", def.Log.MaxSize)
	v.SetDefault("terminal.read_timeout", def.Terminal.ReadTimeout)
	v.SetDefault("terminal.force_fallback", def.Terminal.ForceFallback)
	v.SetDefault("terminal.watch_resize", def.Terminal.WatchResize)
	v.SetDefault("render.banner", def.Render.Banner)
	v.SetDefault("render.max_frame_bytes", def.Render.MaxFrameBytes)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	cfg := Config{
		Log: LogConfig{
			Level:   strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
			File:    v.GetString("log.file"),
			MaxSize: v.GetInt64("log.max_size"),
		},
		Terminal: TerminalConfig{
			ReadTimeout:   v.GetDuration("terminal.read_timeout"),
			ForceFallback: v.GetBool("terminal.force_fallback"),
			WatchResize:   v.GetBool("terminal.watch_resize"),
		},
		Render: RenderConfig{
			Banner:        v.GetString("render.banner"),
			MaxFrameBytes: v.GetInt("render.max_frame_bytes"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid key
func (c Config) Validate() error {
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level %q must be one of %s", c.Log.Level, strings.Join(logLevels, ", "))
	}
	if c.Log.MaxSize < 0 {
		return fmt.Errorf("log.max_size must not be negative, got %d", c.Log.MaxSize)
	}
	if c.Terminal.ReadTimeout <= 0 || c.Terminal.ReadTimeout > constants.MaxReadTimeout {
		return fmt.Errorf("terminal.read_timeout must be in (0, %v], got %v", constants.MaxReadTimeout, c.Terminal.ReadTimeout)
	}
	if c.Render.MaxFrameBytes <= 0 {
		return fmt.Errorf("render.max_frame_bytes must be positive, got %d", c.Render.MaxFrameBytes)
	}
	return nil
}
