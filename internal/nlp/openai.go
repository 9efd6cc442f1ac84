package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// OpenAIEngine classifies sentiment with an OpenAI chat model.
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

// NewOpenAIEngine creates an engine using the given API key.
func NewOpenAIEngine(apiKey string) *OpenAIEngine {
	return &OpenAIEngine{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

const sentimentSystemPrompt = `You are a sentiment classifier for speech-therapy transcripts.
Classify the overall sentiment of the transcript.
Return valid JSON with exactly two fields:
  "label": one of "positive", "neutral", "negative"
  "confidence": a number between 0 and 1
Do not invent information. Return JSON only.`

type sentimentPayload struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classify returns the discrete sentiment label with its confidence.
func (e *OpenAIEngine) Classify(ctx context.Context, text string) (string, float64, error) {
	log.Infof("[Sentiment] Classifying transcript: %d characters", len(text))

	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sentimentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.0, // classification, no creativity wanted
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", 0, fmt.Errorf("sentiment API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", 0, fmt.Errorf("sentiment model returned no choices")
	}

	content := resp.Choices[0].Message.Content
	var payload sentimentPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		// Some models wrap the JSON in a markdown code block despite the
		// response format hint.
		extracted := extractJSONFromMarkdown(content)
		if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
			return "", 0, fmt.Errorf("failed to parse sentiment response as JSON: %w", err)
		}
	}

	log.Infof("[Sentiment] label=%s confidence=%.2f", payload.Label, payload.Confidence)
	return payload.Label, payload.Confidence, nil
}

// extractJSONFromMarkdown strips ```json fences around a JSON object.
func extractJSONFromMarkdown(content string) string {
	content = strings.TrimSpace(content)
	if after, ok := strings.CutPrefix(content, "```json"); ok {
		content = after
	} else if after, ok := strings.CutPrefix(content, "```"); ok {
		content = after
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
