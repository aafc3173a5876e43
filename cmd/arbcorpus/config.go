package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/arbitrary/corpus"
)

type config struct {
	Namespace   string        `yaml:"namespace"`
	Compression string        `yaml:"compression"` // none | zstd | lz4
	TTL         time.Duration `yaml:"ttl"`
	MaxSeedSize int           `yaml:"max_seed_size"`
	LogLevel    string        `yaml:"log_level"`
	Redis       redisConfig   `yaml:"redis"`
}

type redisConfig struct {
	Addrs    []string `yaml:"addrs"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
}

func defaultConfig() config {
	return config{
		Compression: "zstd",
		MaxSeedSize: 1 << 20,
		LogLevel:    "info",
		Redis:       redisConfig{Addrs: []string{"localhost:6379"}},
	}
}

// loadConfig reads path over the defaults. An empty path keeps the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if _, err := c.compression(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if len(c.Redis.Addrs) == 0 {
		return fmt.Errorf("redis.addrs: at least one address is required")
	}
	if c.TTL < 0 {
		return fmt.Errorf("ttl: must not be negative")
	}
	if c.MaxSeedSize < 0 {
		return fmt.Errorf("max_seed_size: must not be negative")
	}
	return nil
}

func (c config) compression() (corpus.Compression, error) {
	switch c.Compression {
	case "", "none":
		return corpus.CompressionNone, nil
	case "zstd":
		return corpus.CompressionZstd, nil
	case "lz4":
		return corpus.CompressionLZ4, nil
	}
	return 0, fmt.Errorf("compression: unknown algorithm %q", c.Compression)
}
