// Package feedback maps an aggregated assessment to human-readable specific
// feedback, a single overall narrative and a prioritized recommendation
// list. Rule-based, no model calls.
package feedback

import (
	"fluently/internal/fluency"
	"fluently/internal/model"
)

// allGoodFluency is the floor for the all-good narrative; stricter than the
// excellent bucket on purpose so a borderline run still gets guidance.
const allGoodFluency = 0.9

// disfluencyRecommendationCount triggers disfluency-focused recommendations.
const disfluencyRecommendationCount = 5

// Output is the generated feedback for one assessment.
type Output struct {
	SpecificFeedback []string
	OverallFeedback  string
	Recommendations  []string
}

// Generator produces feedback from aggregation output.
type Generator struct {
	cfg fluency.Config
}

// NewGenerator returns a Generator using the given scoring bands.
func NewGenerator(cfg fluency.Config) *Generator {
	return &Generator{cfg: cfg}
}

var bucketMessages = map[fluency.Bucket]string{
	fluency.BucketNeedsImprovement: "Your fluency score is a bit low. Try to speak more smoothly and with fewer hesitations.",
	fluency.BucketExcellent:        "Your fluency score is excellent! Keep up the good work.",
	fluency.BucketSlowRate:         "Your speaking rate is a bit slow. Try to pick up the pace a little.",
	fluency.BucketFastRate:         "Your speaking rate is a bit fast. Try to slow down a bit.",
	fluency.BucketLowClarity:       "Your articulation rate is a bit low. Try to articulate your words more clearly.",
	fluency.BucketOverPrecise:      "Your articulation rate is a bit high. Try to articulate your words more clearly and with more precision.",
	fluency.BucketLongPauses:       "You tend to pause for a long time between words. Try to shorten your pauses.",
}

// Generate builds the feedback for one assessment. Exactly one overall
// narrative is always produced; the recommendation list may be empty.
func (g *Generator) Generate(core *fluency.Core, acoustic *model.AcousticProfile, sentiment model.Sentiment, events []model.DisfluencyEvent) Output {
	specific := make([]string, 0, len(core.Buckets))
	for _, b := range core.Buckets {
		if msg, ok := bucketMessages[b]; ok {
			specific = append(specific, msg)
		}
	}

	return Output{
		SpecificFeedback: specific,
		OverallFeedback:  g.overall(core.FluencyScore, acoustic),
		Recommendations:  g.recommendations(core.FluencyScore, sentiment, events),
	}
}

// overall picks exactly one narrative by priority: the all-good case first,
// then fluency, then speaking rate, then articulation, then the generic
// keep-practicing message. Never blended.
func (g *Generator) overall(score float64, acoustic *model.AcousticProfile) string {
	rateInBand := acoustic == nil ||
		(acoustic.SpeakingRate > g.cfg.SpeakingRateMin && acoustic.SpeakingRate < g.cfg.SpeakingRateMax)
	articInBand := acoustic == nil ||
		(acoustic.ArticulationRate > g.cfg.ArticulationMin && acoustic.ArticulationRate < g.cfg.ArticulationMax)

	switch {
	case score > allGoodFluency && rateInBand && articInBand:
		return "You are doing great! Your speech is fluent, clear, and at a good pace."
	case score < g.cfg.LowFluency:
		return "Your fluency could be improved. Try to speak more smoothly and with fewer hesitations."
	case acoustic != nil && acoustic.SpeakingRate < g.cfg.SpeakingRateMin:
		return "Your speaking rate is a bit slow. Try to pick up the pace."
	case acoustic != nil && acoustic.SpeakingRate > g.cfg.SpeakingRateMax:
		return "Your speaking rate is a bit fast. Try to slow down."
	case !articInBand:
		return "Your articulation could be improved. Try to pronounce your words more clearly."
	default:
		return "Your speech is generally good, but there is room for improvement. Keep practicing!"
	}
}

func (g *Generator) recommendations(score float64, sentiment model.Sentiment, events []model.DisfluencyEvent) []string {
	var recs []string
	seen := make(map[string]struct{})
	add := func(r string) {
		if _, ok := seen[r]; ok {
			return
		}
		seen[r] = struct{}{}
		recs = append(recs, r)
	}

	if score < g.cfg.LowFluency {
		add("Practice pacing your speech with the metronome exercise.")
		add("Try the fluency shaping exercises to improve your speech flow.")
	}
	if sentiment.Label == model.SentimentNegative {
		add("Consider practicing positive self-talk and relaxation techniques.")
	}
	if len(events) > disfluencyRecommendationCount {
		add("Focus on identifying and reducing your disfluency events.")
		add(`Try the "pause and think" technique before speaking.`)
	}
	return recs
}
