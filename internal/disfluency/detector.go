// Package disfluency classifies audio into disfluency events (repetitions,
// prolongations, blocks, fillers) using an external classifier.
package disfluency

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"fluently/internal/model"
)

// confidenceThreshold gates structural disfluencies. Filler words are cheap
// to report, so they pass at any confidence; blocks and prolongations need
// high confidence to avoid false positives.
const confidenceThreshold = 0.8

// Span is one raw classifier detection.
type Span struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Timestamp  float64 `json:"timestamp"`
}

// Classifier is the external disfluency model boundary.
type Classifier interface {
	Classify(ctx context.Context, audio model.Audio) ([]Span, error)
}

// DisfluencyDetectionError reports a failed classification pass.
type DisfluencyDetectionError struct {
	Reason string
	Err    error
}

func (e *DisfluencyDetectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("disfluency detection: %s: %v", e.Reason, e.Err)
	}
	return "disfluency detection: " + e.Reason
}

func (e *DisfluencyDetectionError) Unwrap() error { return e.Err }

// Detector filters and orders the classifier's spans.
type Detector struct {
	classifier Classifier
}

// NewDetector returns a Detector using the given classifier.
func NewDetector(classifier Classifier) *Detector {
	return &Detector{classifier: classifier}
}

var fillerLabels = map[string]struct{}{
	"uh": {},
	"um": {},
}

var labelTypes = map[string]model.DisfluencyType{
	"uh":           model.DisfluencyInterjection,
	"um":           model.DisfluencyInterjection,
	"interjection": model.DisfluencyInterjection,
	"repetition":   model.DisfluencyRepetition,
	"prolongation": model.DisfluencyProlongation,
	"block":        model.DisfluencyBlock,
	"revision":     model.DisfluencyRevision,
}

// Detect runs the classifier over the sample and returns the events ordered
// by timestamp. Text-only samples cannot run acoustic disfluency detection;
// that yields an empty list, not an error.
func (d *Detector) Detect(ctx context.Context, sample model.SpeechSample) ([]model.DisfluencyEvent, error) {
	if !sample.IsAudio() {
		return nil, nil
	}

	spans, err := d.classifier.Classify(ctx, *sample.Audio)
	if err != nil {
		return nil, &DisfluencyDetectionError{Reason: "classifier failure", Err: err}
	}

	var events []model.DisfluencyEvent
	for _, span := range spans {
		if span.Confidence < 0 || span.Confidence > 1 {
			return nil, &DisfluencyDetectionError{
				Reason: fmt.Sprintf("confidence %f out of range for label %q", span.Confidence, span.Label),
			}
		}
		_, filler := fillerLabels[span.Label]
		if !filler && span.Confidence <= confidenceThreshold {
			continue
		}
		typ, known := labelTypes[span.Label]
		if !known {
			log.Warnf("[Disfluency] Skipping unknown label %q", span.Label)
			continue
		}
		events = append(events, model.DisfluencyEvent{
			Timestamp:  span.Timestamp,
			Type:       typ,
			Confidence: span.Confidence,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
	return events, nil
}
