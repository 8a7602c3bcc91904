package config

import (
	"log"
	"os"
)

type Config struct {
	Port     string
	LogLevel string

	PriceCSVPath string

	DatabaseURL string

	NominatimBaseURL string
	HeatmapBaseURL   string

	GeminiAPIKey string
	GeminiModel  string

	TelegramBotToken string
	AlertChatID      string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		PriceCSVPath: getEnv("PRICE_CSV_PATH", "data/pricing_dataset.csv"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		HeatmapBaseURL:   getEnv("HEATMAP_BASE_URL", "https://volcanicbat64-fish-spatial.hf.space"),

		GeminiAPIKey: mustEnv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		AlertChatID:      os.Getenv("ALERT_CHAT_ID"),
	}
}

// LoadBot is the alert-bot variant: telegram settings are required, the
// Gemini key is not.
func LoadBot() *Config {
	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		TelegramBotToken: mustEnv("TELEGRAM_BOT_TOKEN"),
		AlertChatID:      mustEnv("ALERT_CHAT_ID"),
	}
}
