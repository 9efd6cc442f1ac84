// Package analysis is the pipeline entry point: it sequences transcription,
// the scoring fan-out, aggregation and feedback generation for one speech
// sample and emits the final FluencyAssessment.
package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"fluently/internal/feedback"
	"fluently/internal/fluency"
	"fluently/internal/model"
	"fluently/internal/nlp"
)

// State is the orchestrator's position in the per-request state machine.
type State string

const (
	StateReceived           State = "received"
	StateTranscribing       State = "transcribing"
	StateScoring            State = "scoring"
	StateAggregating        State = "aggregating"
	StateGeneratingFeedback State = "generating_feedback"
	StateComplete           State = "complete"
	StateFailed             State = "failed"
)

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio model.Audio) (string, error)
}

// AcousticAnalyzer measures audio.
type AcousticAnalyzer interface {
	Analyze(ctx context.Context, audio model.Audio, analysisID string) (*model.AcousticProfile, error)
}

// Scorer computes linguistic signals from text.
type Scorer interface {
	Score(ctx context.Context, text string) (*nlp.Result, error)
}

// DisfluencyDetector classifies a sample into disfluency events.
type DisfluencyDetector interface {
	Detect(ctx context.Context, sample model.SpeechSample) ([]model.DisfluencyEvent, error)
}

// Analyzer owns the injected engine capabilities for the pipeline. No
// process-wide model state; every dependency arrives through the
// constructor so tests can substitute fakes.
type Analyzer struct {
	transcriber Transcriber
	acoustic    AcousticAnalyzer
	scorer      Scorer
	detector    DisfluencyDetector // nil when the classifier is not configured

	aggregator *fluency.Aggregator
	generator  *feedback.Generator
}

// NewAnalyzer wires the pipeline from its capabilities and scoring config.
func NewAnalyzer(transcriber Transcriber, acoustic AcousticAnalyzer, scorer Scorer, detector DisfluencyDetector, cfg fluency.Config) *Analyzer {
	return &Analyzer{
		transcriber: transcriber,
		acoustic:    acoustic,
		scorer:      scorer,
		detector:    detector,
		aggregator:  fluency.NewAggregator(cfg),
		generator:   feedback.NewGenerator(cfg),
	}
}

// RunAnalysis analyzes one sample. Each call owns its intermediates; the
// pipeline shares no mutable state between invocations. On any component
// failure the first error is returned tagged with its stage and no partial
// assessment is emitted. Cancelling ctx cancels all in-flight engine calls.
func (a *Analyzer) RunAnalysis(ctx context.Context, sample model.SpeechSample, userID, sessionID uuid.UUID) (*model.FluencyAssessment, error) {
	analysisID := uuid.New()
	log.Infof("[Analysis %s] %s: kind=%s user=%s session=%s",
		analysisID, StateReceived, sample.Kind, userID, sessionID)

	transcript := sample.Text
	if sample.IsAudio() {
		if a.transcriber == nil {
			return nil, a.fail(analysisID, StageTranscribing, errors.New("no transcription engine configured"))
		}
		log.Infof("[Analysis %s] %s", analysisID, StateTranscribing)
		var err error
		transcript, err = a.transcriber.Transcribe(ctx, *sample.Audio)
		if err != nil {
			return nil, a.fail(analysisID, StageTranscribing, err)
		}
	}

	// Scoring fan-out: the three extractions read disjoint slices of the
	// input and write disjoint results, so they run concurrently and join
	// before aggregation.
	log.Infof("[Analysis %s] %s", analysisID, StateScoring)
	var (
		nlpRes  *nlp.Result
		profile *model.AcousticProfile
		events  []model.DisfluencyEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := a.scorer.Score(gctx, transcript)
		if err != nil {
			return err
		}
		nlpRes = res
		return nil
	})
	if sample.IsAudio() {
		g.Go(func() error {
			if a.acoustic == nil {
				return errors.New("no acoustic engine configured")
			}
			p, err := a.acoustic.Analyze(gctx, *sample.Audio, analysisID.String())
			if err != nil {
				return err
			}
			profile = p
			return nil
		})
	}
	if a.detector != nil {
		g.Go(func() error {
			ev, err := a.detector.Detect(gctx, sample)
			if err != nil {
				return err
			}
			events = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, a.fail(analysisID, StageScoring, err)
	}

	log.Infof("[Analysis %s] %s", analysisID, StateAggregating)
	core, err := a.aggregator.Aggregate(profile, nlpRes.Sentiment, nlpRes.Features, events)
	if err != nil {
		return nil, a.fail(analysisID, StageAggregating, err)
	}

	log.Infof("[Analysis %s] %s", analysisID, StateGeneratingFeedback)
	out := a.generator.Generate(core, profile, nlpRes.Sentiment, events)

	assessment := &model.FluencyAssessment{
		ID:               analysisID,
		UserID:           userID,
		SessionID:        sessionID,
		Transcript:       transcript,
		Features:         nlpRes.Features,
		Acoustic:         profile,
		FluencyScore:     core.FluencyScore,
		Dimensions:       core.Dimensions,
		Sentiment:        nlpRes.Sentiment,
		Disfluencies:     events,
		SpecificFeedback: out.SpecificFeedback,
		OverallFeedback:  out.OverallFeedback,
		Recommendations:  out.Recommendations,
		CreatedAt:        time.Now(),
	}

	log.Infof("[Analysis %s] %s: score=%.2f events=%d",
		analysisID, StateComplete, assessment.FluencyScore, len(assessment.Disfluencies))
	return assessment, nil
}

func (a *Analyzer) fail(analysisID uuid.UUID, stage Stage, err error) *AnalysisError {
	log.Warnf("[Analysis %s] %s at %s: %v", analysisID, StateFailed, stage, err)
	return &AnalysisError{Stage: stage, Err: err}
}
