package transcribe

import (
	"context"

	"fluently/internal/model"
)

// Segment is one partial result from the engine, in sample order.
type Segment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Result represents the result of a speech-to-text transcription
type Result struct {
	Segments   []Segment
	Language   string
	Confidence float64 // best-hypothesis confidence, may be 0 if not provided
	Provider   string  // the engine used (e.g. "http")
}

// Engine defines the interface for speech-to-text engines
type Engine interface {
	// Transcribe transcribes raw audio and returns the segment stream
	Transcribe(ctx context.Context, audio model.Audio) (*Result, error)

	// Name returns the name of the engine (e.g. "http")
	Name() string
}
