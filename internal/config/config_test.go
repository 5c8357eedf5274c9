package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/2beens/gymtrack/internal/config"
	"github.com/2beens/gymtrack/internal/gymtrack/migration"
	"github.com/2beens/gymtrack/internal/gymtrack/store"
	"github.com/2beens/gymtrack/internal/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTomlConfig = `
[development]
host = "localhost"
port = 9090
log_level = "debug"
log_to_stdout = true
persistence_backend = "sqlite"
sqlite_path = "./data/gymtrack.db"
prometheus_metrics_port = "2112"

[development.migration]
time_based_keywords = ["plank", "rowing"]
min_avg_weight = 2.5

[production]
host = "0.0.0.0"
port = 9000
persistence_backend = "postgres"
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "gymtrack"
persist_policy = "manual"
`

const testYamlConfig = `
development:
  host: localhost
  port: 8080
  persistence_backend: redis
  redis_host: localhost
  redis_port: "6379"
  migration:
    max_avg_reps: 90
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Toml(t *testing.T) {
	path := writeConfig(t, "config.toml", testTomlConfig)

	cfg, err := config.Load("dev", path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.Equal(t, persistence.BackendSQLite, cfg.PersistenceBackend)
	assert.Equal(t, "./data/gymtrack.db", cfg.SQLitePath)

	// defaults
	assert.Equal(t, "gymtrack-snapshot", cfg.SnapshotKey)
	assert.Equal(t, store.PersistEveryMutation, cfg.PersistPolicy)
	assert.Equal(t, 8, cfg.StatsCacheSizeMB)

	assert.Equal(t, []string{"plank", "rowing"}, cfg.Migration.TimeBasedKeywords)
	assert.Equal(t, 2.5, cfg.Migration.MinAvgWeight)
	assert.Equal(t, migration.DefaultConfig().MaxAvgReps, cfg.Migration.MaxAvgReps)

	cfg, err = config.Load("production", path)
	require.NoError(t, err)
	assert.Equal(t, persistence.BackendPostgres, cfg.PersistenceBackend)
	assert.Equal(t, store.PersistManual, cfg.PersistPolicy)
	assert.Equal(t, migration.DefaultConfig(), cfg.Migration)
}

func TestLoad_Yaml(t *testing.T) {
	path := writeConfig(t, "config.yaml", testYamlConfig)

	cfg, err := config.Load("development", path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, persistence.BackendRedis, cfg.PersistenceBackend)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, 90.0, cfg.Migration.MaxAvgReps)
	assert.Equal(t, 5.0, cfg.Migration.MinAvgWeight)

	_, err = config.Load("production", path)
	assert.Error(t, err, "no production section")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "config.toml", testTomlConfig)
	t.Setenv("GYMTRACK_PORT", "7777")
	t.Setenv("GYMTRACK_PERSISTENCE_BACKEND", "file")
	t.Setenv("GYMTRACK_FILE_ROOT_PATH", "/var/lib/gymtrack")
	t.Setenv("GYMTRACK_PERSIST_POLICY", "manual")

	cfg, err := config.Load("dev", path)
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Port)
	assert.Equal(t, persistence.BackendFile, cfg.PersistenceBackend)
	assert.Equal(t, store.PersistManual, cfg.PersistPolicy)
	assert.Equal(t, "/var/lib/gymtrack", cfg.FileRootPath)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeConfig(t, "config.toml", testTomlConfig)
	_, err = config.Load("staging", path)
	assert.Error(t, err)

	t.Setenv("GYMTRACK_PERSISTENCE_BACKEND", "cassandra")
	_, err = config.Load("dev", path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "memory",
			cfg:  config.Config{Port: 1, PersistenceBackend: persistence.BackendMemory, PersistPolicy: store.PersistEveryMutation},
		},
		{
			name:    "no port",
			cfg:     config.Config{PersistenceBackend: persistence.BackendMemory, PersistPolicy: store.PersistEveryMutation},
			wantErr: true,
		},
		{
			name:    "file without root",
			cfg:     config.Config{Port: 1, PersistenceBackend: persistence.BackendFile, PersistPolicy: store.PersistEveryMutation},
			wantErr: true,
		},
		{
			name:    "s3 without bucket",
			cfg:     config.Config{Port: 1, PersistenceBackend: persistence.BackendS3, PersistPolicy: store.PersistManual},
			wantErr: true,
		},
		{
			name: "sqlite",
			cfg: config.Config{
				Port:               1,
				PersistenceBackend: persistence.BackendSQLite,
				SQLitePath:         "gymtrack.db",
				PersistPolicy:      store.PersistManual,
			},
		},
		{
			name: "postgres",
			cfg: config.Config{
				Port:               1,
				PersistenceBackend: persistence.BackendPostgres,
				PostgresHost:       "localhost",
				PostgresPort:       "5432",
				PostgresDBName:     "gymtrack",
				PersistPolicy:      store.PersistEveryMutation,
			},
		},
		{
			name: "redis",
			cfg: config.Config{
				Port:               1,
				PersistenceBackend: persistence.BackendRedis,
				RedisHost:          "localhost",
				RedisPort:          "6379",
				PersistPolicy:      store.PersistEveryMutation,
			},
		},
		{
			name:    "unknown backend",
			cfg:     config.Config{Port: 1, PersistenceBackend: "cassandra", PersistPolicy: store.PersistEveryMutation},
			wantErr: true,
		},
		{
			name:    "unknown policy",
			cfg:     config.Config{Port: 1, PersistenceBackend: persistence.BackendMemory, PersistPolicy: "sometimes"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
