// Package config defines all configuration structures for the
// precedent-intelligence platform.  No I/O or parsing logic lives here — only
// plain data types and validation; loading lives in loader.go.
package config

import (
	"fmt"
	"time"

	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
)

// Version is the platform version reported by the CLI and the API server.
// Overridden at build time via -ldflags.
var Version = "dev"

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// PostgresConfig holds PostgreSQL connection parameters for the durable
// precedent repository.
type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// RedisConfig holds Redis connection parameters for the analysis result cache.
// When Enabled is false the platform runs without caching.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// Neo4jConfig holds connection parameters for the citation-graph-backed
// citation network provider.  When Enabled is false ingestion runs without
// citation enrichment (precedents keep their initial authority).
type Neo4jConfig struct {
	Enabled               bool          `mapstructure:"enabled"`
	URI                   string        `mapstructure:"uri"`
	User                  string        `mapstructure:"user"`
	Password              string        `mapstructure:"password"`
	Database              string        `mapstructure:"database"`
	MaxConnectionPoolSize int           `mapstructure:"max_connection_pool_size"`
	ConnectionTimeout     time.Duration `mapstructure:"connection_timeout"`
}

// KafkaConfig holds Apache Kafka producer parameters for domain event
// publishing.  When Enabled is false events are dropped via a nop publisher.
type KafkaConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Brokers         []string      `mapstructure:"brokers"`
	ProducerRetries int           `mapstructure:"producer_retries"`
	BatchSize       int           `mapstructure:"batch_size"`
	BatchTimeout    time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
}

// IngestConfig holds corpus-ingestion pipeline tunables.
type IngestConfig struct {
	// Workers is the number of concurrent classification+extraction workers.
	Workers int `mapstructure:"workers"`
	// QueueDepth bounds the document channel feeding the workers.
	QueueDepth int `mapstructure:"queue_depth"`
}

// AnalysisConfig holds query-time analysis tunables.
type AnalysisConfig struct {
	// CacheTTL is how long an assembled analysis result may be served from
	// the redis cache before it is recomputed.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Config is the root configuration structure for the entire platform.
// Every infrastructure component and application service reads its settings
// from the relevant sub-struct.
type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Postgres PostgresConfig    `mapstructure:"postgres"`
	Redis    RedisConfig       `mapstructure:"redis"`
	Neo4j    Neo4jConfig       `mapstructure:"neo4j"`
	Kafka    KafkaConfig       `mapstructure:"kafka"`
	Ingest   IngestConfig      `mapstructure:"ingest"`
	Analysis AnalysisConfig    `mapstructure:"analysis"`
	Log      logging.LogConfig `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.Postgres.Host == "" {
		return fmt.Errorf("config: postgres.host is required")
	}
	if c.Postgres.Port < 1 || c.Postgres.Port > 65535 {
		return fmt.Errorf("config: postgres.port %d is out of range [1, 65535]", c.Postgres.Port)
	}
	if c.Postgres.User == "" {
		return fmt.Errorf("config: postgres.user is required")
	}
	if c.Postgres.DBName == "" {
		return fmt.Errorf("config: postgres.db_name is required")
	}
	if c.Postgres.MaxConns < 1 {
		return fmt.Errorf("config: postgres.max_conns must be >= 1, got %d", c.Postgres.MaxConns)
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required when redis is enabled")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be >= 0, got %d", c.Redis.DB)
		}
	}

	if c.Neo4j.Enabled {
		if c.Neo4j.URI == "" {
			return fmt.Errorf("config: neo4j.uri is required when neo4j is enabled")
		}
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
		}
	}

	if c.Ingest.Workers < 1 {
		return fmt.Errorf("config: ingest.workers must be >= 1, got %d", c.Ingest.Workers)
	}
	if c.Ingest.QueueDepth < 1 {
		return fmt.Errorf("config: ingest.queue_depth must be >= 1, got %d", c.Ingest.QueueDepth)
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
