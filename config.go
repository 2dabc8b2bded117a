package pomomo

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	DatabaseURLKey  = "POMOMO_DB_PATH"
	BotNameKey      = "POMOMO_BOT_NAME"
	BotTokenKey     = "POMOMO_BOT_TOKEN"
	APIURLKey       = "POMOMO_API_URL"
	AddrKey         = "POMOMO_ADDR"
	SettingsPathKey = "POMOMO_SETTINGS_PATH"
	LogLevelKey     = "POMOMO_LOG_LEVEL"
)

type Config struct {
	DatabaseURL  string
	BotName      string
	BotToken     string
	APIURL       string
	Addr         string
	SettingsPath string
	LogLevel     string
}

// LoadEnv loads .env in production and .env.dev otherwise. Missing files are ignored.
func LoadEnv(isProd bool) {
	if isProd {
		_ = godotenv.Load(".env")
	} else {
		_ = godotenv.Load(".env.dev")
	}
}

func LoadConfig(isProd bool) Config {
	LoadEnv(isProd)

	config := Config{
		DatabaseURL:  os.Getenv(DatabaseURLKey),
		BotName:      os.Getenv(BotNameKey),
		BotToken:     os.Getenv(BotTokenKey),
		APIURL:       os.Getenv(APIURLKey),
		Addr:         os.Getenv(AddrKey),
		SettingsPath: os.Getenv(SettingsPathKey),
		LogLevel:     os.Getenv(LogLevelKey),
	}

	if config.BotName == "" {
		config.BotName = "Pomomo"
	}
	if config.APIURL == "" {
		config.APIURL = "http://localhost:8080"
	}
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if config.DatabaseURL == "" {
		config.DatabaseURL = "pomomo.db"
	}
	if config.LogLevel == "" {
		if isProd {
			config.LogLevel = "info"
		} else {
			config.LogLevel = "debug"
		}
	}

	return config
}

// RequireBotToken fails when the Discord token is missing.
func (c Config) RequireBotToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("required environment variable: %s", BotTokenKey)
	}
	return nil
}
