package cli

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// serveConfig is the TOML configuration for the serve command.
//
// Example:
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "mongo"
//
//	[store.mongo]
//	uri = "mongodb://localhost:27017"
//	database = "cygraph"
//
//	[cache]
//	backend = "redis"
//	ttl = "1h"
//
//	[cache.redis]
//	addr = "localhost:6379"
type serveConfig struct {
	Server serverConfig `toml:"server"`
	Store  storeConfig  `toml:"store"`
	Cache  cacheConfig  `toml:"cache"`
}

type serverConfig struct {
	Addr string `toml:"addr"`
}

type storeConfig struct {
	Backend string      `toml:"backend"` // "memory" (default) or "mongo"
	Mongo   mongoConfig `toml:"mongo"`
}

type mongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type cacheConfig struct {
	Backend string      `toml:"backend"` // "none" (default) or "redis"
	TTL     duration    `toml:"ttl"`
	Redis   redisConfig `toml:"redis"`
}

type redisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// duration wraps time.Duration so TTLs can be written as "1h30m" in TOML.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// defaultServeConfig returns the configuration used when no file is given.
func defaultServeConfig() serveConfig {
	return serveConfig{
		Server: serverConfig{Addr: ":8080"},
		Store:  storeConfig{Backend: "memory"},
		Cache:  cacheConfig{Backend: "none"},
	}
}

// loadServeConfig reads cfg from a TOML file, applying defaults for
// anything left unset.
func loadServeConfig(path string) (serveConfig, error) {
	cfg := defaultServeConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return serveConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return serveConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c serveConfig) validate() error {
	switch c.Store.Backend {
	case "", "memory":
	case "mongo":
		if c.Store.Mongo.URI == "" {
			return fmt.Errorf("store.mongo.uri is required for the mongo backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %s (must be 'memory' or 'mongo')", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case "", "none":
	case "redis":
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend: %s (must be 'none' or 'redis')", c.Cache.Backend)
	}
	return nil
}
