package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"fluently/internal/acoustic"
	"fluently/internal/analysis"
	"fluently/internal/api"
	"fluently/internal/config"
	"fluently/internal/db"
	"fluently/internal/disfluency"
	"fluently/internal/nlp"
	"fluently/internal/repository"
	"fluently/internal/transcribe"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database if DATABASE_URL is provided
	if cfg.DatabaseURL != "" {
		log.Printf("Initializing database connection with DATABASE_URL...")
		if err := db.Init(); err != nil {
			log.Printf("Warning: Failed to initialize database: %v. Continuing without database.", err)
		} else {
			repo := repository.NewPostgresRepository()
			api.InitAnalysisRepository(repo)
			log.Println("Database and repository initialized successfully")
		}
	} else {
		log.Println("DATABASE_URL not set, running without database (in-memory storage only)")
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		log.Fatalf("Failed to build analysis pipeline: %v", err)
	}
	api.InitPipeline(pipeline)

	r := gin.Default()

	// Add CORS middleware for mobile app
	r.Use(corsMiddleware())

	api.RegisterRoutes(r)

	log.Printf("Fluently backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildPipeline wires the analysis stages from configuration. Stages whose
// engines are not configured are left nil; the orchestrator falls back to
// transcript-only behavior where it can.
func buildPipeline(cfg *config.Config) (*analysis.Analyzer, error) {
	var transcriber analysis.Transcriber
	if cfg.STTApiKey != "" && cfg.STTURL != "" {
		engine, err := transcribe.CreateEngine()
		if err != nil {
			return nil, err
		}
		transcriber = transcribe.NewTranscriber(engine)
		log.Printf("STT engine configured: %s", engine.Name())
	} else {
		log.Println("STT_API_KEY/STT_URL not set, audio analyses will be rejected")
	}

	var acousticAnalyzer analysis.AcousticAnalyzer
	if cfg.AcousticScript != "" {
		runner := &acoustic.ScriptRunner{Bin: cfg.AcousticBin, Script: cfg.AcousticScript}
		acousticAnalyzer = acoustic.NewAnalyzer(runner, cfg.ScratchDir)
		log.Printf("Acoustic engine configured: %s --run %s", cfg.AcousticBin, cfg.AcousticScript)
	} else {
		log.Println("ACOUSTIC_SCRIPT_PATH not set, audio analyses will be rejected")
	}

	scorer := nlp.NewScorer(nlp.NewOpenAIEngine(cfg.OpenAIKey))

	var detector analysis.DisfluencyDetector
	if cfg.DisfluencyURL != "" {
		detector = disfluency.NewDetector(disfluency.NewHTTPClassifier(cfg.DisfluencyURL))
		log.Printf("Disfluency classifier configured at %s", cfg.DisfluencyURL)
	} else {
		log.Println("DISFLUENCY_URL not set, disfluency detection disabled")
	}

	scoring, err := config.LoadScoring(cfg.ScoringPath)
	if err != nil {
		return nil, err
	}

	return analysis.NewAnalyzer(transcriber, acousticAnalyzer, scorer, detector, scoring), nil
}

// corsMiddleware adds CORS headers for mobile app
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
