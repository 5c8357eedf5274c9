package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/2beens/gymtrack/internal/gymtrack/migration"
	"github.com/2beens/gymtrack/internal/gymtrack/store"
	"github.com/2beens/gymtrack/internal/persistence"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const defaultSnapshotKey = "gymtrack-snapshot"

type Config struct {
	Environment string `toml:"environment" yaml:"environment"`
	Host        string `toml:"host" yaml:"host"`
	Port        int    `toml:"port" yaml:"port"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host" yaml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port" yaml:"prometheus_metrics_port"`

	// logging
	LogLevel      string `toml:"log_level" yaml:"log_level"`
	LogsPath      string `toml:"logs_path" yaml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout" yaml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json" yaml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled" yaml:"sentry_enabled"`

	// persistence
	PersistenceBackend string              `toml:"persistence_backend" yaml:"persistence_backend"`
	SnapshotKey        string              `toml:"snapshot_key" yaml:"snapshot_key"`
	PersistPolicy      store.PersistPolicy `toml:"persist_policy" yaml:"persist_policy"`
	// FlushIntervalSec is used with the manual persist policy only
	FlushIntervalSec int    `toml:"flush_interval_sec" yaml:"flush_interval_sec"`
	FileRootPath     string `toml:"file_root_path" yaml:"file_root_path"`
	SQLitePath       string `toml:"sqlite_path" yaml:"sqlite_path"`

	// redis
	RedisHost string `toml:"redis_host" yaml:"redis_host"`
	RedisPort string `toml:"redis_port" yaml:"redis_port"`

	// postgres
	PostgresHost   string `toml:"postgres_host" yaml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port" yaml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name" yaml:"postgres_db_name"`

	// s3
	S3Region   string `toml:"s3_region" yaml:"s3_region"`
	S3Endpoint string `toml:"s3_endpoint" yaml:"s3_endpoint"`
	S3Bucket   string `toml:"s3_bucket" yaml:"s3_bucket"`
	S3Prefix   string `toml:"s3_prefix" yaml:"s3_prefix"`

	StatsCacheSizeMB       int              `toml:"stats_cache_size_mb" yaml:"stats_cache_size_mb"`
	RateLimitAllowedPerMin int              `toml:"rate_limit_allowed_per_min" yaml:"rate_limit_allowed_per_min"`
	Migration              migration.Config `toml:"migration" yaml:"migration"`
}

type Envs struct {
	Development *Config `toml:"development" yaml:"development"`
	Production  *Config `toml:"production" yaml:"production"`
}

func (e *Envs) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = e.Development
	case "prod", "production":
		cfg = e.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the config section for env from a TOML file, or a YAML one when
// the path ends with .yaml/.yml. GYMTRACK_* env vars override file values.
func Load(env, path string) (*Config, error) {
	var envs Envs

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &envs); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &envs); err != nil {
			return nil, fmt.Errorf("parse toml config: %w", err)
		}
	}

	cfg, err := envs.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.PersistenceBackend == "" {
		c.PersistenceBackend = persistence.BackendMemory
	}
	if c.SnapshotKey == "" {
		c.SnapshotKey = defaultSnapshotKey
	}
	if c.PersistPolicy == "" {
		c.PersistPolicy = store.PersistEveryMutation
	}
	if c.FlushIntervalSec <= 0 {
		c.FlushIntervalSec = 30
	}
	if c.StatsCacheSizeMB <= 0 {
		c.StatsCacheSizeMB = 8
	}
	if c.RateLimitAllowedPerMin <= 0 {
		c.RateLimitAllowedPerMin = 120
	}

	defaults := migration.DefaultConfig()
	if len(c.Migration.TimeBasedKeywords) == 0 {
		c.Migration.TimeBasedKeywords = defaults.TimeBasedKeywords
	}
	if c.Migration.MinAvgWeight == 0 {
		c.Migration.MinAvgWeight = defaults.MinAvgWeight
	}
	if c.Migration.MaxAvgReps == 0 {
		c.Migration.MaxAvgReps = defaults.MaxAvgReps
	}
}

func (c *Config) applyEnvOverrides() {
	stringOverrides := map[string]*string{
		"GYMTRACK_HOST":                &c.Host,
		"GYMTRACK_LOG_LEVEL":           &c.LogLevel,
		"GYMTRACK_LOGS_PATH":           &c.LogsPath,
		"GYMTRACK_PERSISTENCE_BACKEND": &c.PersistenceBackend,
		"GYMTRACK_SNAPSHOT_KEY":        &c.SnapshotKey,
		"GYMTRACK_FILE_ROOT_PATH":      &c.FileRootPath,
		"GYMTRACK_SQLITE_PATH":         &c.SQLitePath,
		"GYMTRACK_REDIS_HOST":          &c.RedisHost,
		"GYMTRACK_REDIS_PORT":          &c.RedisPort,
		"GYMTRACK_POSTGRES_HOST":       &c.PostgresHost,
		"GYMTRACK_POSTGRES_PORT":       &c.PostgresPort,
		"GYMTRACK_POSTGRES_DB_NAME":    &c.PostgresDBName,
		"GYMTRACK_S3_REGION":           &c.S3Region,
		"GYMTRACK_S3_ENDPOINT":         &c.S3Endpoint,
		"GYMTRACK_S3_BUCKET":           &c.S3Bucket,
		"GYMTRACK_S3_PREFIX":           &c.S3Prefix,
	}
	for envVar, field := range stringOverrides {
		if v := os.Getenv(envVar); v != "" {
			*field = v
		}
	}

	if v := os.Getenv("GYMTRACK_PERSIST_POLICY"); v != "" {
		c.PersistPolicy = store.PersistPolicy(v)
	}

	if v := os.Getenv("GYMTRACK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return errors.New("port is required")
	}

	switch c.PersistPolicy {
	case store.PersistEveryMutation, store.PersistManual:
	default:
		return fmt.Errorf("unknown persist policy [%s]", c.PersistPolicy)
	}

	switch c.PersistenceBackend {
	case persistence.BackendMemory:
	case persistence.BackendFile:
		if c.FileRootPath == "" {
			return errors.New("file_root_path is required for the file backend")
		}
	case persistence.BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite_path is required for the sqlite backend")
		}
	case persistence.BackendRedis:
		if c.RedisHost == "" || c.RedisPort == "" {
			return errors.New("redis_host and redis_port are required for the redis backend")
		}
	case persistence.BackendPostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			return errors.New("postgres_host, postgres_port and postgres_db_name are required for the postgres backend")
		}
	case persistence.BackendS3:
		if c.S3Bucket == "" {
			return errors.New("s3_bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown persistence backend [%s]", c.PersistenceBackend)
	}

	if c.Migration.MinAvgWeight < 0 || c.Migration.MaxAvgReps < 0 {
		return errors.New("migration thresholds must not be negative")
	}

	return nil
}
