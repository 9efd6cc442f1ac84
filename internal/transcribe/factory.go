package transcribe

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// CreateEngine creates an STT engine based on environment configuration
func CreateEngine() (Engine, error) {
	engineName := strings.ToLower(os.Getenv("STT_ENGINE"))

	// Default to the HTTP ASR service if not specified
	if engineName == "" {
		engineName = "http"
		log.Infof("[STT Factory] STT_ENGINE not set, defaulting to 'http'")
	}

	switch engineName {
	case "http":
		return createHTTPEngine()
	default:
		return nil, fmt.Errorf("unsupported STT engine: %s. Supported: http", engineName)
	}
}

func createHTTPEngine() (Engine, error) {
	apiKey := os.Getenv("STT_API_KEY")
	url := os.Getenv("STT_URL")

	if apiKey == "" {
		return nil, fmt.Errorf("STT_API_KEY environment variable is not set")
	}
	if url == "" {
		return nil, fmt.Errorf("STT_URL environment variable is not set")
	}

	log.Infof("[STT Factory] Creating HTTP STT engine for %s", url)
	return NewHTTPEngine(apiKey, url), nil
}
