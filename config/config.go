// Package config loads planner settings from a TOML file with environment
// overrides for deployment knobs.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	// RateLimit is requests per client per minute on /v1; zero disables it.
	RateLimit int `toml:"rate_limit"`
}

type StoreConfig struct {
	// Path to the SQLite plan database. Empty keeps plans in memory.
	Path string `toml:"path"`
}

type CacheConfig struct {
	// RedisAddr of the result cache. Empty uses an in-process cache.
	RedisAddr  string `toml:"redis_addr"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:      ":8080",
			RateLimit: 60,
		},
		Store: StoreConfig{
			Path: "data/plans.db",
		},
		Cache: CacheConfig{
			TTLMinutes: 15,
		},
	}
}

// Load reads the config at path, falling back to defaults when the file does
// not exist. Environment variables win over the file for the deployment
// knobs: DEBT_PLANNER_ADDR, DEBT_PLANNER_DB, DEBT_PLANNER_REDIS.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if addr := os.Getenv("DEBT_PLANNER_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if db := os.Getenv("DEBT_PLANNER_DB"); db != "" {
		cfg.Store.Path = db
	}
	if redisAddr := os.Getenv("DEBT_PLANNER_REDIS"); redisAddr != "" {
		cfg.Cache.RedisAddr = redisAddr
	}

	return cfg, nil
}
