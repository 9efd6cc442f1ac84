package model

import (
	"time"

	"github.com/google/uuid"
)

// Entity is a named entity found in the original (pre-normalization) text.
type Entity struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// FeatureBundle is the canonical intermediate derived from a transcript.
// WordCount always equals len(Tokens).
type FeatureBundle struct {
	Tokens          []string           `json:"tokens"`
	WordFrequencies map[string]float64 `json:"word_frequencies"`
	Entities        []Entity           `json:"entities"`
	WordCount       int                `json:"word_count"`
	SentenceCount   int                `json:"sentence_count"`
}

// Stat is a mean/variance pair for one acoustic measure.
type Stat struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

// PauseStats describes silent intervals in the sample.
type PauseStats struct {
	TotalDuration   float64 `json:"total_duration"`   // seconds
	AverageDuration float64 `json:"average_duration"` // seconds
	Frequency       int     `json:"frequency"`        // pause count
}

// AcousticProfile holds the measures extracted from audio input. It is
// present on an assessment iff the sample was audio.
type AcousticProfile struct {
	Pitch            Stat       `json:"pitch"`
	Intensity        Stat       `json:"intensity"`
	Formants         []float64  `json:"formants"` // center frequency per formant index
	SpeakingRate     float64    `json:"speaking_rate"`     // words/minute, pauses included
	ArticulationRate float64    `json:"articulation_rate"` // syllables/second, pauses excluded
	Pauses           PauseStats `json:"pauses"`
}

// DisfluencyType classifies one detected interruption of fluent speech.
type DisfluencyType string

const (
	DisfluencyRepetition   DisfluencyType = "repetition"
	DisfluencyProlongation DisfluencyType = "prolongation"
	DisfluencyBlock        DisfluencyType = "block"
	DisfluencyInterjection DisfluencyType = "interjection"
	DisfluencyRevision     DisfluencyType = "revision"
)

// DisfluencyEvent is one detected disfluency span. Events are immutable and
// ordered by non-decreasing Timestamp within an assessment.
type DisfluencyEvent struct {
	Timestamp  float64        `json:"timestamp"` // seconds into the sample
	Type       DisfluencyType `json:"type"`
	Confidence float64        `json:"confidence"` // [0,1]
}

// SentimentLabel is the discrete output of the sentiment engine.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Sentiment pairs the discrete label with the engine's confidence.
type Sentiment struct {
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
}

// DimensionScores are the per-level fluency sub-scores, each in [0,1].
type DimensionScores struct {
	Syllable float64 `json:"syllable"`
	Word     float64 `json:"word"`
	Sentence float64 `json:"sentence"`
}

// FluencyAssessment is the terminal artifact of one analysis run. The ID is
// unique per run even for bit-identical input.
type FluencyAssessment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	SessionID uuid.UUID `json:"session_id"`

	Transcript string        `json:"transcript"`
	Features   FeatureBundle `json:"features"`

	// Acoustic is nil for text-only input, never zeroed.
	Acoustic *AcousticProfile `json:"acoustic,omitempty"`

	FluencyScore float64           `json:"fluency_score"` // [0,1]
	Dimensions   DimensionScores   `json:"dimensions"`
	Sentiment    Sentiment         `json:"sentiment"`
	Disfluencies []DisfluencyEvent `json:"disfluencies"`

	SpecificFeedback []string `json:"specific_feedback"`
	OverallFeedback  string   `json:"overall_feedback"`
	Recommendations  []string `json:"recommendations"`

	CreatedAt time.Time `json:"created_at"`
}
