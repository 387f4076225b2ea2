package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := NewDefaultConfig()
	return cfg
}

func TestNewDefaultConfig_IsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultIngestWorkers, cfg.Ingest.Workers)
	assert.Equal(t, DefaultAnalysisCacheTTL, cfg.Analysis.CacheTTL)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
}

func TestApplyDefaults_DoesNotOverrideExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Postgres.Host = "db.internal"
	cfg.Ingest.Workers = 2
	cfg.Analysis.CacheTTL = time.Minute

	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 2, cfg.Ingest.Workers)
	assert.Equal(t, time.Minute, cfg.Analysis.CacheTTL)
}

func TestApplyDefaults_NilConfigIsSafe(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"bad server mode", func(c *Config) { c.Server.Mode = "production" }},
		{"missing postgres host", func(c *Config) { c.Postgres.Host = "" }},
		{"missing postgres user", func(c *Config) { c.Postgres.User = "" }},
		{"zero ingest workers", func(c *Config) { c.Ingest.Workers = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"redis enabled without addr", func(c *Config) {
			c.Redis.Enabled = true
			c.Redis.Addr = ""
		}},
		{"neo4j enabled without uri", func(c *Config) {
			c.Neo4j.Enabled = true
			c.Neo4j.URI = ""
		}},
		{"kafka enabled without brokers", func(c *Config) {
			c.Kafka.Enabled = true
			c.Kafka.Brokers = nil
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_OptionalBackendsOffByDefault(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Neo4j.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.NoError(t, cfg.Validate())
}
