package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/kickabout/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG_FILE", "DB_NAME", "PORT", "SLACK_BOT_TOKEN", "SLACK_CHANNEL_ID", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "GCP_PROJECT", "PUBSUB_TOPIC", "TIMEZONE", "LOG_LEVEL", "SEED_OWNER_ID"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "kickabout.db", cfg.DBName)
	assert.Equal(t, "announce", cfg.PubSubTopic)
	assert.Equal(t, "Europe/Istanbul", cfg.Timezone)
	assert.Empty(t, cfg.ProjectID)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "test.db")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "C123")
	t.Setenv("GCP_PROJECT", "my-project")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "test.db", cfg.DBName)
	assert.Equal(t, "xoxb-test", cfg.Slack.Token)
	assert.Equal(t, "C123", cfg.Slack.ChannelID)
	assert.Equal(t, "my-project", cfg.ProjectID)
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("port: \"7000\"\nlog_level: debug\nturso:\n  primary_url: libsql://example.turso.io\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7001")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.Port, "environment wins over the file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "libsql://example.turso.io", cfg.Turso.PrimaryURL)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	noPort := cfg
	noPort.Port = ""
	assert.Error(t, noPort.Validate())

	noDB := cfg
	noDB.DBName = ""
	assert.Error(t, noDB.Validate())
	noDB.Turso.PrimaryURL = "libsql://example.turso.io"
	assert.NoError(t, noDB.Validate())

	badZone := cfg
	badZone.Timezone = "Mars/Olympus"
	assert.Error(t, badZone.Validate())

	badLevel := cfg
	badLevel.LogLevel = "loud"
	assert.Error(t, badLevel.Validate())
}
