package fluency

import (
	"errors"
	"strings"
	"testing"

	"fluently/internal/model"
)

func bundleOfWords(n int) model.FeatureBundle {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = "word"
	}
	return model.FeatureBundle{Tokens: tokens, WordCount: n, WordFrequencies: map[string]float64{}}
}

func neutral() model.Sentiment {
	return model.Sentiment{Label: model.SentimentNeutral, Confidence: 0.9}
}

func goodProfile() *model.AcousticProfile {
	return &model.AcousticProfile{SpeakingRate: 150, ArticulationRate: 5}
}

func TestAggregateCleanRunScoresHigh(t *testing.T) {
	t.Parallel()

	a := NewAggregator(DefaultConfig())
	core, err := a.Aggregate(goodProfile(), neutral(), bundleOfWords(100), nil)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if core.FluencyScore != 1.0 {
		t.Errorf("score = %f, want 1.0 for a penalty-free run", core.FluencyScore)
	}
	if len(core.Buckets) != 1 || core.Buckets[0] != BucketExcellent {
		t.Errorf("buckets = %v, want [excellent]", core.Buckets)
	}
}

func TestAggregateScoreStaysInRange(t *testing.T) {
	t.Parallel()

	a := NewAggregator(DefaultConfig())

	// Arbitrarily bad input: huge disfluency load, extreme rates. The
	// clamp-at-zero floor must hold regardless of penalty size.
	events := make([]model.DisfluencyEvent, 500)
	for i := range events {
		events[i] = model.DisfluencyEvent{Timestamp: float64(i), Type: model.DisfluencyBlock, Confidence: 0.9}
	}
	profiles := []*model.AcousticProfile{
		{SpeakingRate: 0.1, ArticulationRate: 0.1},
		{SpeakingRate: 900, ArticulationRate: 40},
		nil,
	}
	for _, p := range profiles {
		core, err := a.Aggregate(p, neutral(), bundleOfWords(10), events)
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if core.FluencyScore < 0 || core.FluencyScore > 1 {
			t.Errorf("score %f out of [0,1]", core.FluencyScore)
		}
		for _, d := range []float64{core.Dimensions.Syllable, core.Dimensions.Word, core.Dimensions.Sentence} {
			if d < 0 || d > 1 {
				t.Errorf("dimension score %f out of [0,1]", d)
			}
		}
	}
}

func TestAggregateTextOnlyOmitsRatePenalties(t *testing.T) {
	t.Parallel()

	a := NewAggregator(DefaultConfig())

	// Same disfluency load with and without acoustic data at in-band rates:
	// the acoustic profile must not change the score, and absence of one
	// must not introduce a penalty.
	events := []model.DisfluencyEvent{{Timestamp: 1, Type: model.DisfluencyInterjection, Confidence: 0.5}}

	withAudio, err := a.Aggregate(goodProfile(), neutral(), bundleOfWords(100), events)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	textOnly, err := a.Aggregate(nil, neutral(), bundleOfWords(100), events)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if withAudio.FluencyScore != textOnly.FluencyScore {
		t.Errorf("text-only score %f != in-band audio score %f", textOnly.FluencyScore, withAudio.FluencyScore)
	}
	for _, b := range textOnly.Buckets {
		if strings.Contains(string(b), "rate") || b == BucketLowClarity || b == BucketOverPrecise {
			t.Errorf("rate bucket %s produced without acoustic data", b)
		}
	}
}

func TestAggregateBuckets(t *testing.T) {
	t.Parallel()

	a := NewAggregator(DefaultConfig())

	cases := []struct {
		name    string
		profile *model.AcousticProfile
		events  int
		want    []Bucket
	}{
		{
			name:    "slow and unclear",
			profile: &model.AcousticProfile{SpeakingRate: 100, ArticulationRate: 3},
			events:  6,
			want:    []Bucket{BucketNeedsImprovement, BucketSlowRate, BucketLowClarity},
		},
		{
			name:    "fast and over-precise",
			profile: &model.AcousticProfile{SpeakingRate: 200, ArticulationRate: 8},
			want:    []Bucket{BucketFastRate, BucketOverPrecise},
		},
		{
			name: "long pauses",
			profile: &model.AcousticProfile{
				SpeakingRate: 150, ArticulationRate: 5,
				Pauses: model.PauseStats{AverageDuration: 1.4, TotalDuration: 7, Frequency: 5},
			},
			want: []Bucket{BucketExcellent, BucketLongPauses},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			events := make([]model.DisfluencyEvent, c.events)
			for i := range events {
				events[i] = model.DisfluencyEvent{Timestamp: float64(i), Type: model.DisfluencyRepetition, Confidence: 0.9}
			}
			core, err := a.Aggregate(c.profile, neutral(), bundleOfWords(100), events)
			if err != nil {
				t.Fatalf("Aggregate failed: %v", err)
			}
			if len(core.Buckets) != len(c.want) {
				t.Fatalf("buckets = %v, want %v", core.Buckets, c.want)
			}
			for i, b := range c.want {
				if core.Buckets[i] != b {
					t.Errorf("bucket %d = %s, want %s", i, core.Buckets[i], b)
				}
			}
		})
	}
}

func TestAggregateRejectsOutOfRangeConfidence(t *testing.T) {
	t.Parallel()

	a := NewAggregator(DefaultConfig())

	_, err := a.Aggregate(nil, model.Sentiment{Label: model.SentimentNeutral, Confidence: 1.5}, bundleOfWords(5), nil)
	var aerr *AggregationError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AggregationError for bad sentiment confidence, got %v", err)
	}

	events := []model.DisfluencyEvent{{Timestamp: 0, Type: model.DisfluencyBlock, Confidence: -0.2}}
	_, err = a.Aggregate(nil, neutral(), bundleOfWords(5), events)
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AggregationError for bad event confidence, got %v", err)
	}
}

func TestAggregateRejectsInconsistentBundle(t *testing.T) {
	t.Parallel()

	a := NewAggregator(DefaultConfig())
	bad := model.FeatureBundle{Tokens: []string{"one", "two"}, WordCount: 5}
	if _, err := a.Aggregate(nil, neutral(), bad, nil); err == nil {
		t.Fatal("expected error for word count mismatch")
	}
}

func TestAggregateDeterministic(t *testing.T) {
	t.Parallel()

	a := NewAggregator(DefaultConfig())
	events := []model.DisfluencyEvent{{Timestamp: 2, Type: model.DisfluencyBlock, Confidence: 0.9}}

	first, err := a.Aggregate(goodProfile(), neutral(), bundleOfWords(60), events)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	second, err := a.Aggregate(goodProfile(), neutral(), bundleOfWords(60), events)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if first.FluencyScore != second.FluencyScore {
		t.Errorf("scores differ across identical runs: %f vs %f", first.FluencyScore, second.FluencyScore)
	}
}
