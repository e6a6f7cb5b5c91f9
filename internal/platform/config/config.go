package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "GOCYCLING"

	StateBackendFile  = "file"
	StateBackendRedis = "redis"

	SamplerTrack  = "track"
	SamplerPlugin = "plugin"
)

type Config struct {
	DataDir         string `mapstructure:"data_dir"`
	DBPath          string `mapstructure:"db_path"`
	StatePath       string `mapstructure:"state_path"`
	TrackPath       string `mapstructure:"track_path"`
	PreferencesPath string `mapstructure:"preferences_path"`
	JournalDir      string `mapstructure:"journal_dir"`

	StateBackend  string `mapstructure:"state_backend"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisKey      string `mapstructure:"redis_key"`

	Sampler       string `mapstructure:"sampler"`
	SamplerBinary string `mapstructure:"sampler_plugin"`
	SamplerSHA256 string `mapstructure:"sampler_sha256"`

	LogLevel string `mapstructure:"log_level"`
}

// New returns the defaults derived from dataDir without reading any
// external source.
func New(dataDir string) (Config, error) {
	v, err := defaults(dataDir)
	if err != nil {
		return Config{}, err
	}
	return decode(v)
}

// Load layers <data>/.gocycling/config.yaml and GOCYCLING_* environment
// variables over the defaults.
func Load(dataDir string) (Config, error) {
	v, err := defaults(dataDir)
	if err != nil {
		return Config{}, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	path := filepath.Join(dataDir, ".gocycling", "config.yaml")
	if _, statErr := os.Stat(path); statErr == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat config %s: %w", path, statErr)
	}
	return decode(v)
}

func (c Config) Validate() error {
	switch c.StateBackend {
	case StateBackendFile:
	case StateBackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("redis_addr is required for the redis state backend")
		}
	default:
		return fmt.Errorf("unknown state_backend %q", c.StateBackend)
	}
	switch c.Sampler {
	case SamplerTrack:
	case SamplerPlugin:
		if strings.TrimSpace(c.SamplerBinary) == "" {
			return fmt.Errorf("sampler_plugin is required for the plugin sampler")
		}
	default:
		return fmt.Errorf("unknown sampler %q", c.Sampler)
	}
	return nil
}

func defaults(dataDir string) (*viper.Viper, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, fmt.Errorf("data dir is required")
	}
	hidden := filepath.Join(dataDir, ".gocycling")
	v := viper.New()
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("db_path", filepath.Join(hidden, "gocycling.db"))
	v.SetDefault("state_path", filepath.Join(hidden, "active-ride.json"))
	v.SetDefault("track_path", filepath.Join(hidden, "track.json"))
	v.SetDefault("preferences_path", filepath.Join(hidden, "preferences.yaml"))
	v.SetDefault("journal_dir", filepath.Join(dataDir, "rides"))
	v.SetDefault("state_backend", StateBackendFile)
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_key", "gocycling:active-ride")
	v.SetDefault("sampler", SamplerTrack)
	v.SetDefault("sampler_plugin", "")
	v.SetDefault("sampler_sha256", "")
	v.SetDefault("log_level", "warn")
	return v, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
