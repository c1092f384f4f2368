package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5433
user = "ptc"
password = "secret"
dbname = "appointments"

[logs]
file = "logs/test.log"
level = "debug"

[metrics]
enabled = true
service_name = "ptc-appointments"
path = "/metrics"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout) // default
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)

	assert.Equal(t,
		"host=db.internal port=5433 user=ptc password=secret dbname=appointments sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "ptc"
password = "from-file"
dbname = "appointments"
`)

	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DB_HOST", "override.internal")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "override.internal", cfg.Database.Host)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("missing database user", func(t *testing.T) {
		path := writeConfig(t, `
[database]
dbname = "appointments"
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("metrics enabled without path", func(t *testing.T) {
		path := writeConfig(t, `
[database]
user = "ptc"
dbname = "appointments"

[metrics]
enabled = true
`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}
