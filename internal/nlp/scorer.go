// Package nlp computes linguistic signals from a transcript: the discrete
// sentiment label from an external classifier plus the word statistics and
// entities from the feature extractor.
package nlp

import (
	"context"

	"fluently/internal/features"
	"fluently/internal/model"
)

// SentimentEngine is the external sentiment classifier boundary.
type SentimentEngine interface {
	// Classify returns a label from the fixed label set and its confidence.
	Classify(ctx context.Context, text string) (label string, confidence float64, err error)
}

// Result carries the linguistic signals of one transcript.
type Result struct {
	Sentiment model.Sentiment
	Features  model.FeatureBundle
}

// Scorer combines the feature extractor with the sentiment engine.
type Scorer struct {
	engine SentimentEngine
}

// NewScorer returns a Scorer using the given sentiment engine.
func NewScorer(engine SentimentEngine) *Scorer {
	return &Scorer{engine: engine}
}

// Score extracts features and classifies sentiment. A model failure, an
// unknown label or a confidence outside [0,1] is an NlpScoringError; the
// confidence check surfaces upstream model bugs instead of clamping them.
func (s *Scorer) Score(ctx context.Context, text string) (*Result, error) {
	bundle := features.Extract(text)

	label, confidence, err := s.engine.Classify(ctx, text)
	if err != nil {
		return nil, &NlpScoringError{Reason: "sentiment engine failure", Err: err}
	}

	sentiment, ok := parseLabel(label)
	if !ok {
		return nil, &NlpScoringError{Reason: "missing or unknown sentiment label: " + label}
	}
	if confidence < 0 || confidence > 1 {
		return nil, &NlpScoringError{Reason: "sentiment confidence out of range"}
	}

	return &Result{
		Sentiment: model.Sentiment{Label: sentiment, Confidence: confidence},
		Features:  bundle,
	}, nil
}

func parseLabel(label string) (model.SentimentLabel, bool) {
	switch model.SentimentLabel(label) {
	case model.SentimentPositive, model.SentimentNeutral, model.SentimentNegative:
		return model.SentimentLabel(label), true
	}
	return "", false
}
