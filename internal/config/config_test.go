package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[server]
http_port = 9090

[database]
host = "localhost"
port = 5432
user = "booking"
password = "secret"
dbname = "renteasy_bookings"

[redis]
enabled = true
address = "localhost:6379"

[user_service]
url = "http://user-service:8080"

[catalog_service]
url = "http://catalog-service:8080"
timeout = 3

[notify_service]
url = "http://notify-service:8080"

[metrics]
enabled = true
service_name = "booking-test"

[logs]
level = "debug"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "renteasy_bookings", cfg.Database.DBName)
	assert.Equal(t, 3, cfg.CatalogService.Timeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "debug", cfg.Logs.Level)

	// Дефолты применяются к незаполненным полям
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.UserService.Timeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 60, cfg.Redis.ItemCacheTTLSec)
}

func TestLoad_DSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=booking password=secret dbname=renteasy_bookings sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestLoad_MissingRequired(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
host = "localhost"
user = "booking"
dbname = "bookings"
`))
	assert.Error(t, err)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
