package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"fluently/internal/model"
)

// HTTPEngine implements STT against an ASR service speaking the
// hypotheses-JSON contract (raw audio body, api-key header).
type HTTPEngine struct {
	apiKey string
	url    string
	client *http.Client
}

// NewHTTPEngine creates a new HTTP STT engine
func NewHTTPEngine(apiKey, url string) *HTTPEngine {
	return &HTTPEngine{
		apiKey: apiKey,
		url:    url,
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

// Name returns the engine name
func (e *HTTPEngine) Name() string {
	return "http"
}

// httpSTTResponse represents the ASR service response
type httpSTTResponse struct {
	Hypotheses []struct {
		Utterance  string    `json:"utterance"`
		Confidence float64   `json:"confidence"`
		Segments   []Segment `json:"segments"`
	} `json:"hypotheses"`
	Language  string `json:"language"`
	ErrorCode int    `json:"errorCode,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Transcribe sends the audio bytes to the ASR service and returns the
// best-hypothesis segments.
func (e *HTTPEngine) Transcribe(ctx context.Context, audio model.Audio) (*Result, error) {
	startTime := time.Now()

	log.Infof("[STT] Sending audio: size=%d bytes, format=%s", len(audio.Bytes), audio.Format)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(audio.Bytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("api-key", e.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to ASR service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Warnf("[STT] API error: status %d, body: %s", resp.StatusCode, preview(body))
		return nil, fmt.Errorf("ASR service returned status %d: %s", resp.StatusCode, preview(body))
	}

	var sttResp httpSTTResponse
	if err := json.Unmarshal(body, &sttResp); err != nil {
		log.Warnf("[STT] Failed to parse response: %s", preview(body))
		return nil, fmt.Errorf("failed to parse ASR response: %w", err)
	}

	if sttResp.ErrorCode != 0 {
		return nil, fmt.Errorf("ASR service error %d: %s", sttResp.ErrorCode, sttResp.Message)
	}
	if len(sttResp.Hypotheses) == 0 {
		return nil, fmt.Errorf("no speech detected in audio")
	}

	// First hypothesis is the best one.
	hyp := sttResp.Hypotheses[0]
	segments := hyp.Segments
	if len(segments) == 0 && strings.TrimSpace(hyp.Utterance) != "" {
		// Engines without segment timing return a single utterance.
		segments = []Segment{{Text: strings.TrimSpace(hyp.Utterance), Confidence: hyp.Confidence}}
	}

	log.Infof("[STT] Transcription successful: confidence=%.2f, segments=%d, duration=%v",
		hyp.Confidence, len(segments), time.Since(startTime))

	return &Result{
		Segments:   segments,
		Language:   sttResp.Language,
		Confidence: hyp.Confidence,
		Provider:   e.Name(),
	}, nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 500 {
		s = s[:500] + "..."
	}
	return s
}
