/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the settings of the bookshelf service from defaults, an optional YAML file
// and BOOKSHELF_* environment variables, in increasing order of precedence.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding settings. A key maps to the variable
// named by the prefix and the upper-cased key with dots replaced by underscores, e.g.,
// BOOKSHELF_SERVER_ADDR for server.addr.
const EnvPrefix = "BOOKSHELF"

// Config contains all settings.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr   string `mapstructure:"addr"`
	Path   string `mapstructure:"path"`
	WSPath string `mapstructure:"ws_path"`

	MaxBodySize uint `mapstructure:"max_body_size"`

	// Requests per second allowed by the token bucket; zero disables rate limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig selects the store backend and its seed data.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	DSN     string `mapstructure:"dsn"`

	// YAML file with seed data; the built-in seed is used if empty.
	SeedFile string `mapstructure:"seed_file"`
}

// CacheConfig configures the cache of prepared operations.
type CacheConfig struct {
	// Number of prepared operations; zero disables the cache.
	Size uint `mapstructure:"size"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers the default value of every setting to v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.path", "/graphql")
	v.SetDefault("server.ws_path", "/graphql/ws")
	v.SetDefault("server.max_body_size", 10<<20)
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.rate_burst", 50)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.seed_file", "")

	v.SetDefault("cache.size", 512)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// New creates a viper instance with defaults and environment variable binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the YAML file at configFile (if not empty) into v and decodes the settings.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", configFile)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the values of settings.
func (config *Config) Validate() error {
	server := &config.Server
	if len(server.Addr) == 0 {
		return errors.New("server.addr must not be empty")
	}
	if !strings.HasPrefix(server.Path, "/") {
		return errors.Newf("server.path must start with /, got %q", server.Path)
	}
	if !strings.HasPrefix(server.WSPath, "/") {
		return errors.Newf("server.ws_path must start with /, got %q", server.WSPath)
	}
	if server.Path == server.WSPath {
		return errors.Newf("server.path and server.ws_path must differ, both are %q", server.Path)
	}
	if server.MaxBodySize == 0 {
		return errors.New("server.max_body_size must be positive")
	}
	if server.RateLimit < 0 {
		return errors.Newf("server.rate_limit must not be negative, got %v", server.RateLimit)
	}
	if server.RateLimit > 0 && server.RateBurst <= 0 {
		return errors.Newf("server.rate_burst must be positive when rate limiting is enabled, got %d",
			server.RateBurst)
	}

	switch config.Store.Backend {
	case "memory", "sqlite":
	default:
		return errors.Newf("store.backend must be memory or sqlite, got %q", config.Store.Backend)
	}

	switch config.Log.Format {
	case "json", "console":
	default:
		return errors.Newf("log.format must be json or console, got %q", config.Log.Format)
	}

	return nil
}
