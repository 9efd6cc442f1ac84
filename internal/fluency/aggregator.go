// Package fluency merges acoustic, linguistic and disfluency signals into
// the overall fluency score, per-dimension sub-scores and the qualitative
// buckets that drive feedback.
package fluency

import (
	"fmt"
	"math"

	"fluently/internal/model"
)

// Bucket is one triggered qualitative finding.
type Bucket string

const (
	BucketNeedsImprovement Bucket = "needs_improvement"
	BucketExcellent        Bucket = "excellent"
	BucketSlowRate         Bucket = "slow_rate"
	BucketFastRate         Bucket = "fast_rate"
	BucketLowClarity       Bucket = "low_clarity"
	BucketOverPrecise      Bucket = "over_precise"
	BucketLongPauses       Bucket = "long_pauses"
)

// AggregationError reports malformed upstream output reaching the join
// point, typically a score outside [0,1]. Rejected, never clamped, so
// callers detect upstream model bugs.
type AggregationError struct {
	Reason string
}

func (e *AggregationError) Error() string { return "aggregation: " + e.Reason }

// Core holds the aggregate scoring output consumed by the feedback
// generator and the orchestrator.
type Core struct {
	FluencyScore float64
	Dimensions   model.DimensionScores
	Buckets      []Bucket
}

// Aggregator is a pure, deterministic combination function over one run's
// signals.
type Aggregator struct {
	cfg Config
}

// NewAggregator returns an Aggregator with the given scoring config.
func NewAggregator(cfg Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Aggregate combines the per-component signals. acoustic is nil for
// text-only input; its rate contributions are then omitted entirely, absence
// of a signal is not a bad signal.
func (a *Aggregator) Aggregate(acoustic *model.AcousticProfile, sentiment model.Sentiment, bundle model.FeatureBundle, events []model.DisfluencyEvent) (*Core, error) {
	if sentiment.Confidence < 0 || sentiment.Confidence > 1 {
		return nil, &AggregationError{Reason: fmt.Sprintf("sentiment confidence %f out of range", sentiment.Confidence)}
	}
	for _, e := range events {
		if e.Confidence < 0 || e.Confidence > 1 {
			return nil, &AggregationError{Reason: fmt.Sprintf("disfluency confidence %f out of range", e.Confidence)}
		}
	}
	if bundle.WordCount != len(bundle.Tokens) {
		return nil, &AggregationError{Reason: "feature bundle word count does not match tokens"}
	}
	if acoustic != nil && (acoustic.SpeakingRate < 0 || acoustic.ArticulationRate < 0) {
		return nil, &AggregationError{Reason: "negative rate in acoustic profile"}
	}

	densityPenalty := a.densityPenalty(len(events), bundle.WordCount)

	var ratePenalty, articPenalty float64
	if acoustic != nil {
		ratePenalty = bandPenalty(acoustic.SpeakingRate,
			a.cfg.SpeakingRateMin, a.cfg.SpeakingRateMax,
			a.cfg.RatePenaltyScale, a.cfg.RatePenaltyCap)
		articPenalty = bandPenalty(acoustic.ArticulationRate,
			a.cfg.ArticulationMin, a.cfg.ArticulationMax,
			a.cfg.ArticulationPenaltyScale, a.cfg.ArticulationPenaltyCap)
	}

	score := clamp01(1.0 - densityPenalty - ratePenalty - articPenalty)

	dims := model.DimensionScores{
		Word: clamp01(1.0 - 2*densityPenalty),
	}
	if acoustic != nil {
		dims.Syllable = clamp01(1.0 - 2*articPenalty)
		dims.Sentence = clamp01(1.0 - 2*ratePenalty)
	} else {
		// No acoustic signal: the sub-dimensions collapse onto the overall
		// score rather than a fabricated penalty.
		dims.Syllable = score
		dims.Sentence = score
	}

	return &Core{
		FluencyScore: score,
		Dimensions:   dims,
		Buckets:      a.buckets(score, acoustic),
	}, nil
}

// densityPenalty charges per disfluency event per 100 words, capped. With no
// words to normalize against, any event at all charges the full cap.
func (a *Aggregator) densityPenalty(eventCount, wordCount int) float64 {
	if eventCount == 0 {
		return 0
	}
	if wordCount == 0 {
		return a.cfg.DensityPenaltyCap
	}
	density := float64(eventCount) / float64(wordCount) * 100
	return math.Min(a.cfg.DensityPenaltyCap, density*a.cfg.DensityPenaltyWeight)
}

// bandPenalty charges for deviation outside [lo, hi], scaled and capped.
func bandPenalty(value, lo, hi, scale, limit float64) float64 {
	var dev float64
	switch {
	case value < lo:
		dev = lo - value
	case value > hi:
		dev = value - hi
	default:
		return 0
	}
	return math.Min(limit, dev/scale)
}

func (a *Aggregator) buckets(score float64, acoustic *model.AcousticProfile) []Bucket {
	var out []Bucket
	if score < a.cfg.LowFluency {
		out = append(out, BucketNeedsImprovement)
	} else if score > a.cfg.ExcellentFluency {
		out = append(out, BucketExcellent)
	}
	if acoustic != nil {
		if acoustic.SpeakingRate < a.cfg.SpeakingRateMin {
			out = append(out, BucketSlowRate)
		} else if acoustic.SpeakingRate > a.cfg.SpeakingRateMax {
			out = append(out, BucketFastRate)
		}
		if acoustic.ArticulationRate < a.cfg.ArticulationMin {
			out = append(out, BucketLowClarity)
		} else if acoustic.ArticulationRate > a.cfg.ArticulationMax {
			out = append(out, BucketOverPrecise)
		}
		if acoustic.Pauses.AverageDuration > a.cfg.LongPauseSeconds {
			out = append(out, BucketLongPauses)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
