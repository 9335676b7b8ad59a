package manager

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/hoppxi/lumen/config"
	"github.com/hoppxi/lumen/internal/watchers"
	"github.com/hoppxi/lumen/pkg/brightness"
	"github.com/hoppxi/lumen/pkg/hover"
)

// Settings is the decoded configuration.
type Settings struct {
	Backend        string        `mapstructure:"backend" yaml:"backend"`
	BacklightDirs  []string      `mapstructure:"backlight_dirs" yaml:"backlight_dirs"`
	Logind         bool          `mapstructure:"logind" yaml:"logind"`
	Xbacklight     string        `mapstructure:"xbacklight" yaml:"xbacklight"`
	Xrandr         string        `mapstructure:"xrandr" yaml:"xrandr"`
	FallbackOutput string        `mapstructure:"fallback_output" yaml:"fallback_output"`
	HideDelay      time.Duration `mapstructure:"hide_delay" yaml:"hide_delay"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	Eww            EwwSettings   `mapstructure:"eww" yaml:"eww"`
}

type EwwSettings struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Binary     string `mapstructure:"binary" yaml:"binary"`
	LevelVar   string `mapstructure:"level_var" yaml:"level_var"`
	VisibleVar string `mapstructure:"visible_var" yaml:"visible_var"`
}

// Options returns the controller options for s.
func (s Settings) Options(log *slog.Logger) (brightness.Options, error) {
	kind, err := brightness.ParseKind(s.Backend)
	if err != nil {
		return brightness.Options{}, err
	}
	return brightness.Options{
		Backend:        kind,
		BacklightDirs:  s.BacklightDirs,
		Xbacklight:     s.Xbacklight,
		Xrandr:         s.Xrandr,
		FallbackOutput: s.FallbackOutput,
		Logind:         s.Logind,
		Logger:         log,
	}, nil
}

// Publish returns the EWW publisher configuration.
func (s Settings) Publish() watchers.EwwConfig {
	return watchers.EwwConfig{
		Enabled:    s.Eww.Enabled,
		Binary:     s.Eww.Binary,
		LevelVar:   s.Eww.LevelVar,
		VisibleVar: s.Eww.VisibleVar,
	}
}

// Level returns the configured log level.
func (s Settings) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(s.LogLevel))
	if err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log_level: %w", err)
	}
	return l, nil
}

// ConfigPath returns the default configuration file path.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lumen", config.DefaultName), nil
}

type ConfigManager struct {
	mu     sync.Mutex
	v      *viper.Viper
	path   string
	loaded bool
}

// LoadConfig reads the configuration at path, or at ConfigPath when path
// is empty. A missing file leaves the defaults in place. Values may be
// overridden by LUMEN_ prefixed environment variables.
func LoadConfig(path string) (*ConfigManager, error) {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("lumen")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend", "auto")
	v.SetDefault("backlight_dirs", brightness.DefaultBacklightDirs)
	v.SetDefault("logind", true)
	v.SetDefault("xbacklight", brightness.DefaultXbacklight)
	v.SetDefault("xrandr", brightness.DefaultXrandr)
	v.SetDefault("fallback_output", brightness.DefaultFallbackOutput)
	v.SetDefault("hide_delay", hover.DefaultDelay)
	v.SetDefault("log_level", "warn")
	v.SetDefault("eww.enabled", false)
	v.SetDefault("eww.binary", "eww")
	v.SetDefault("eww.level_var", "BRIGHTNESS_INFO")
	v.SetDefault("eww.visible_var", "BRIGHTNESS_VISIBLE")

	c := &ConfigManager{v: v, path: path}
	err := v.ReadInConfig()
	switch {
	case err == nil:
		c.loaded = true
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return c, nil
}

// Path returns the configuration file path.
func (c *ConfigManager) Path() string {
	return c.path
}

// Settings decodes the current configuration.
func (c *ConfigManager) Settings() (Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var s Settings
	err := c.v.Unmarshal(&s)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return s, nil
}

// Watch calls onChange with the new settings each time the configuration
// file changes. It does nothing when no file was read.
func (c *ConfigManager) Watch(onChange func(Settings, error)) {
	if !c.loaded {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(c.Settings())
	})
	c.v.WatchConfig()
}
