package cfg

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string

	// Telegram developer alerting; alerts are skipped when the token is empty.
	TgToken   string
	DevChatID int64

	SettingsPath string

	// Reference timezone for the ad-reward calendar day.
	AdRewardTZ *time.Location
}

var App *Config

func Load() {
	_ = godotenv.Load()

	App = &Config{
		Port: getEnv("PORT", "8080"),

		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "cryptominerpp"),

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		TgToken:   getEnv("TG_TOKEN", ""),
		DevChatID: getEnvAsInt64("DEV_CHAT_ID", 0),

		SettingsPath: getEnv("SETTINGS_PATH", "assets/settings.json"),

		AdRewardTZ: loadLocation(getEnv("AD_REWARD_TZ", "UTC")),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("Failed load ad reward timezone %q: %s\n", name, err.Error())
	}
	return loc
}
