package disfluency

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"fluently/internal/model"
)

// HTTPClassifier calls a disfluency classification service with the audio
// as a multipart upload.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

// NewHTTPClassifier creates a classifier for the service at url.
func NewHTTPClassifier(url string) *HTTPClassifier {
	return &HTTPClassifier{
		url:    url,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type classifyResponse struct {
	Spans []Span `json:"spans"`
}

// Classify uploads the audio and returns the detected spans.
func (c *HTTPClassifier) Classify(ctx context.Context, audio model.Audio) ([]Span, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", "sample."+audio.Format)
	if err != nil {
		return nil, err
	}
	if _, err = fw.Write(audio.Bytes); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/classify", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classifier %s: %s", resp.Status, string(body))
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("classifier decode: %w", err)
	}
	return out.Spans, nil
}
