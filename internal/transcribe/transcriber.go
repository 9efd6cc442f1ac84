// Package transcribe converts audio samples to text via an external
// speech-to-text engine.
package transcribe

import (
	"context"
	"strings"

	"fluently/internal/model"
)

// minAudioBytes guards against empty or truncated uploads; anything smaller
// cannot hold a valid audio header plus speech.
const minAudioBytes = 1000

// Transcriber wraps an Engine and produces the final concatenated transcript.
type Transcriber struct {
	engine Engine
}

// NewTranscriber returns a Transcriber using the given engine.
func NewTranscriber(engine Engine) *Transcriber {
	return &Transcriber{engine: engine}
}

// Transcribe runs the audio through the engine and joins the partial
// segments into one transcript. Malformed audio, engine failures and empty
// transcripts all fail with TranscriptionError.
func (t *Transcriber) Transcribe(ctx context.Context, audio model.Audio) (string, error) {
	if len(audio.Bytes) < minAudioBytes {
		return "", &TranscriptionError{
			Reason: "audio too small, may be empty or corrupted",
		}
	}

	res, err := t.engine.Transcribe(ctx, audio)
	if err != nil {
		return "", &TranscriptionError{Reason: "engine failure", Err: err}
	}

	parts := make([]string, 0, len(res.Segments))
	for _, seg := range res.Segments {
		if s := strings.TrimSpace(seg.Text); s != "" {
			parts = append(parts, s)
		}
	}
	transcript := strings.Join(parts, " ")
	if transcript == "" {
		return "", &TranscriptionError{Reason: "empty transcript returned"}
	}
	return transcript, nil
}
