package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "America/Mexico_City", cfg.Store.Location)
	assert.Equal(t, "@every 15m", cfg.Cron.WakeExpired)
	assert.Equal(t, 35.0, cfg.Policy.DefaultDiscount)
	assert.Equal(t, "ex.crm.leads", cfg.RabbitMQ.Exchange)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt_secret: from-file\nstore:\n  driver: mongo\n  timeout: 3s\n")
	t.Setenv("PIZO_JWT_SECRET", "from-env")
	t.Setenv("PIZO_STORE_DRIVER", "memory")
	t.Setenv("PIZO_PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestShippedConfigLeavesOutboundChannelsOff(t *testing.T) {
	t.Setenv("PIZO_TELEGRAM_TOKEN", "")
	t.Setenv("PIZO_RABBITMQ_URL", "")

	cfg, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Email.SMTPHost)
	assert.Empty(t, cfg.Telegram.BotToken)
	assert.Empty(t, cfg.RabbitMQ.URL)
}
