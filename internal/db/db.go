// Package db owns the shared PostgreSQL connection.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// DB is the shared connection pool, set by Init.
var DB *sql.DB

// Init opens the connection described by DATABASE_URL and verifies it.
func Init() error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	conn, err := sql.Open("postgres", url)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = conn
	return ensureSchema(conn)
}

func ensureSchema(conn *sql.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS analyses (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			session_id UUID NOT NULL,
			sample_kind TEXT NOT NULL,
			audio_format TEXT,
			audio_size_bytes INTEGER,
			transcript TEXT,
			fluency_score DOUBLE PRECISION,
			status TEXT NOT NULL,
			error_message TEXT,
			failed_stage TEXT,
			processing_time_ms INTEGER,
			result JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_analyses_user_created
			ON analyses (user_id, created_at DESC);
	`
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure analyses schema: %w", err)
	}
	return nil
}
