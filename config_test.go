package pomomo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{DatabaseURLKey, BotNameKey, BotTokenKey, APIURLKey, AddrKey, SettingsPathKey, LogLevelKey} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig(false)

	assert.Equal(t, "Pomomo", cfg.BotName)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "pomomo.db", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Error(t, cfg.RequireBotToken())

	assert.Equal(t, "info", LoadConfig(true).LogLevel)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv(BotTokenKey, "token")
	t.Setenv(APIURLKey, "http://api.test")
	t.Setenv(LogLevelKey, "warn")

	cfg := LoadConfig(false)

	assert.Equal(t, "http://api.test", cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NoError(t, cfg.RequireBotToken())
}
