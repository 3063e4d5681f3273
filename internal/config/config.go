package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	// Vertex AI backend (gcp mode)
	GCPProjectID string
	GCPLocation  string

	// Gemini API backend (local mode with a real model)
	GeminiAPIKey string

	ChatModelName string
	TextModelName string

	StorageBackend string // "memory" or "firestore"
	UseMockLLM     bool   // true = use scripted mock even in gcp mode
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE"
}

// Load reads .env (if present) plus the environment and builds the config.
// godotenv never overwrites variables already set in the environment.
func Load() *Config {
	_ = godotenv.Load()

	modeStr := getEnv("LAWVERRA_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port: getEnv("LAWVERRA_PORT", "8080"),

		GCPProjectID: getEnv("LAWVERRA_GCP_PROJECT", ""),
		GCPLocation:  getEnv("LAWVERRA_GCP_LOCATION", "us-central1"),
		GeminiAPIKey: getEnv("LAWVERRA_GEMINI_API_KEY", ""),

		ChatModelName: getEnv("LAWVERRA_CHAT_MODEL", "gemini-2.5-pro"),
		TextModelName: getEnv("LAWVERRA_TEXT_MODEL", "gemini-2.5-flash"),

		StorageBackend: getEnv("LAWVERRA_STORAGE_BACKEND", "memory"),
		UseMockLLM:     getBoolEnv("LAWVERRA_USE_MOCK_LLM", mode == ModeLocal),
	}

	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("LAWVERRA_GCP_PROJECT must be set in gcp mode")
	}

	return cfg
}
