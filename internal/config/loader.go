// Package config provides configuration loading, defaults, and validation for
// the precedent-intelligence platform.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all platform settings.
const envPrefix = "LEXATLAS"

// newViper builds a pre-configured Viper instance with the platform's standard
// settings: YAML file type, LEXATLAS_ env prefix, automatic env binding, and a
// key replacer that maps "." → "_" so that nested keys like "postgres.host"
// resolve to "LEXATLAS_POSTGRES_HOST".
// configKeys lists every settable key.  Viper only honours environment
// variables during Unmarshal for keys it already knows about, so each key is
// bound explicitly in newViper.
var configKeys = []string{
	"server.port", "server.mode", "server.read_timeout", "server.write_timeout", "server.shutdown_timeout",
	"postgres.host", "postgres.port", "postgres.user", "postgres.password", "postgres.db_name",
	"postgres.ssl_mode", "postgres.max_conns", "postgres.min_conns",
	"postgres.conn_max_lifetime", "postgres.conn_max_idle_time", "postgres.migration_path",
	"redis.enabled", "redis.addr", "redis.password", "redis.db", "redis.pool_size",
	"redis.min_idle_conns", "redis.dial_timeout", "redis.read_timeout", "redis.write_timeout",
	"redis.default_ttl", "redis.key_prefix",
	"neo4j.enabled", "neo4j.uri", "neo4j.user", "neo4j.password", "neo4j.database",
	"neo4j.max_connection_pool_size", "neo4j.connection_timeout",
	"kafka.enabled", "kafka.brokers", "kafka.producer_retries", "kafka.batch_size",
	"kafka.batch_timeout", "kafka.write_timeout",
	"ingest.workers", "ingest.queue_depth",
	"analysis.cache_ttl",
	"log.level", "log.format", "log.output_paths", "log.error_output_paths",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads the YAML file at configPath, merges any LEXATLAS_* environment
// variable overrides, applies platform defaults for unset fields, and
// validates the result.  It returns a fully-populated *Config or a
// descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from LEXATLAS_* environment variables,
// with no config file required.  This is the preferred loading strategy for
// containerised (12-factor) deployments.
//
// Environment variable naming convention:
//
//	LEXATLAS_<SECTION>_<FIELD>   e.g.  LEXATLAS_POSTGRES_HOST, LEXATLAS_REDIS_ADDR
func LoadFromEnv() (*Config, error) {
	v := newViper()
	// No config file — rely solely on env vars and defaults.
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  It is intended for
// hot-reloading non-critical settings such as log level and cache TTL;
// callers are responsible for applying only the safe subset of changes at
// runtime.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
// If the changed file fails to parse or validate, onChange is NOT called.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read — errors are ignored here; callers should call Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			// Config change produced an invalid config; skip the callback to
			// prevent the application from entering a broken state.
			return
		}
		onChange(cfg)
	})
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
