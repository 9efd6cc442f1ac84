package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port           string
	STTApiKey      string
	STTURL         string
	OpenAIKey      string
	DisfluencyURL  string
	AcousticBin    string
	AcousticScript string
	ScratchDir     string
	ScoringPath    string
	DatabaseURL    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		STTApiKey:      os.Getenv("STT_API_KEY"),
		STTURL:         os.Getenv("STT_URL"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		DisfluencyURL:  os.Getenv("DISFLUENCY_URL"),
		AcousticBin:    getEnv("ACOUSTIC_ENGINE_BIN", "praat"),
		AcousticScript: os.Getenv("ACOUSTIC_SCRIPT_PATH"),
		ScratchDir:     getEnv("SCRATCH_DIR", "scratch"),
		ScoringPath:    os.Getenv("SCORING_CONFIG"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	// Validate required environment variables
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for sentiment scoring. Please set it as environment variable:\n  Linux/Mac: export OPENAI_API_KEY=\"your_key\"")
	}

	// STT, acoustic and disfluency engines are optional: without them the
	// server only accepts transcript-only analyses.

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
