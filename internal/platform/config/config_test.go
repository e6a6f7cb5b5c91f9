package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"gocycling/internal/platform/config"
)

func TestNewDerivesPathsFromDataDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, ".gocycling", "gocycling.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.JournalDir != filepath.Join(dir, "rides") {
		t.Fatalf("unexpected journal dir %s", cfg.JournalDir)
	}
	if cfg.StateBackend != config.StateBackendFile || cfg.Sampler != config.SamplerTrack {
		t.Fatalf("unexpected backends %+v", cfg)
	}
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty data dir should fail")
	}
}

func TestLoadReadsConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".gocycling")
	if err := os.MkdirAll(hidden, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	yaml := "state_backend: redis\nredis_addr: 127.0.0.1:6379\nlog_level: debug\n"
	if err := os.WriteFile(filepath.Join(hidden, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GOCYCLING_LOG_LEVEL", "info")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StateBackend != config.StateBackendRedis || cfg.RedisAddr != "127.0.0.1:6379" {
		t.Fatalf("config file not applied: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("env should override file, got %s", cfg.LogLevel)
	}
}

func TestValidateRejectsIncompleteBackends(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	redis := cfg
	redis.StateBackend = config.StateBackendRedis
	if err := redis.Validate(); err == nil {
		t.Fatalf("redis backend without address should fail")
	}
	plugin := cfg
	plugin.Sampler = config.SamplerPlugin
	if err := plugin.Validate(); err == nil {
		t.Fatalf("plugin sampler without binary should fail")
	}
	unknown := cfg
	unknown.Sampler = "gps"
	if err := unknown.Validate(); err == nil {
		t.Fatalf("unknown sampler should fail")
	}
}
