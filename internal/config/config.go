// Package config loads the tunables of the showcase commands from defaults, an optional
// config file and SHOWCASE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/showcase/internal/logging"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/session"
	"github.com/aretw0/showcase/pkg/slides"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SHOWCASE_SERVER_ADDR.
const EnvPrefix = "SHOWCASE"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the complete configuration.
type Config struct {
	Deck    DeckConfig    `mapstructure:"deck"`
	Timing  TimingConfig  `mapstructure:"timing"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DeckConfig selects the content.
type DeckConfig struct {
	// Path of a deck YAML file. Empty uses the embedded deck.
	Path string `mapstructure:"path"`
	// NotesDir holds one markdown note per slide id.
	NotesDir string `mapstructure:"notes_dir"`
}

// TimingConfig holds the animation and auto-play durations.
type TimingConfig struct {
	SettleDelay     time.Duration `mapstructure:"settle_delay"`
	Interval        time.Duration `mapstructure:"interval"`
	DecisionTimeout time.Duration `mapstructure:"decision_timeout"`
	IdleCycle       time.Duration `mapstructure:"idle_cycle"`
	AutoStartDelay  time.Duration `mapstructure:"auto_start_delay"`
}

// ServerConfig configures `showcase serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// Store is one of memory, file or redis. A RedisURL implies redis.
	Store      string        `mapstructure:"store"`
	StoreDir   string        `mapstructure:"store_dir"`
	RedisURL   string        `mapstructure:"redis_url"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	LockTTL    time.Duration `mapstructure:"lock_ttl"`
}

// LoggingConfig configures the stderr logger.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns the configuration the deck was authored with.
func Default() *Config {
	t := slides.DefaultTiming()
	return &Config{
		Timing: TimingConfig{
			SettleDelay:     deck.DefaultSettleDelay,
			Interval:        t.Interval,
			DecisionTimeout: t.DecisionTimeout,
			IdleCycle:       t.IdleCycle,
			AutoStartDelay:  t.AutoStartDelay,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			Store:      StoreMemory,
			StoreDir:   ".showcase/sessions",
			SessionTTL: 24 * time.Hour,
			LockTTL:    session.DefaultLockTTL,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers every default on v so that env overrides and Unmarshal see all keys.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("deck.path", d.Deck.Path)
	v.SetDefault("deck.notes_dir", d.Deck.NotesDir)

	v.SetDefault("timing.settle_delay", d.Timing.SettleDelay)
	v.SetDefault("timing.interval", d.Timing.Interval)
	v.SetDefault("timing.decision_timeout", d.Timing.DecisionTimeout)
	v.SetDefault("timing.idle_cycle", d.Timing.IdleCycle)
	v.SetDefault("timing.auto_start_delay", d.Timing.AutoStartDelay)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.store", d.Server.Store)
	v.SetDefault("server.store_dir", d.Server.StoreDir)
	v.SetDefault("server.redis_url", d.Server.RedisURL)
	v.SetDefault("server.session_ttl", d.Server.SessionTTL)
	v.SetDefault("server.lock_ttl", d.Server.LockTTL)

	v.SetDefault("logging.level", d.Logging.Level)
}

// New returns a viper instance with defaults and env overrides. When file is empty the
// optional config.yaml in ConfigDir is read; a named file must exist.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
		return v, nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	t := c.Timing
	for name, d := range map[string]time.Duration{
		"timing.interval":         t.Interval,
		"timing.decision_timeout": t.DecisionTimeout,
		"timing.idle_cycle":       t.IdleCycle,
		"timing.auto_start_delay": t.AutoStartDelay,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if t.SettleDelay < 0 {
		errs = append(errs, fmt.Errorf("timing.settle_delay must not be negative, got %s", t.SettleDelay))
	}

	switch c.Server.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("server.store must be one of memory, file, redis, got %q", c.Server.Store))
	}
	if c.Server.Store == StoreRedis && c.Server.RedisURL == "" {
		errs = append(errs, errors.New("server.redis_url is required by the redis store"))
	}
	if c.Server.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("server.session_ttl must not be negative, got %s", c.Server.SessionTTL))
	}
	if c.Server.LockTTL <= 0 {
		errs = append(errs, fmt.Errorf("server.lock_ttl must be positive, got %s", c.Server.LockTTL))
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlideTiming converts the timing section for the slide factories.
func (t TimingConfig) SlideTiming() slides.Timing {
	return slides.Timing{
		Interval:        t.Interval,
		DecisionTimeout: t.DecisionTimeout,
		AutoStartDelay:  t.AutoStartDelay,
		IdleCycle:       t.IdleCycle,
	}
}

// StoreKind resolves the session backend; a redis URL wins over the memory default.
func (s ServerConfig) StoreKind() string {
	if s.RedisURL != "" && (s.Store == "" || s.Store == StoreMemory) {
		return StoreRedis
	}
	return s.Store
}

// SlogLevel parses the level name (debug, info, warn, error).
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		return level, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "showcase")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".showcase"
	}
	return filepath.Join(home, ".config", "showcase")
}

// ConfigFile returns the path to the default config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
