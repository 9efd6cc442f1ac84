package fluency

// Config holds the scoring bands and penalty weights. Defaults match the
// clinical targets the feedback rules were written against; deployments can
// override them from the scoring YAML file.
type Config struct {
	// Target band for speaking rate, words/minute.
	SpeakingRateMin float64 `yaml:"speaking_rate_min"`
	SpeakingRateMax float64 `yaml:"speaking_rate_max"`

	// Target band for articulation rate, syllables/second.
	ArticulationMin float64 `yaml:"articulation_min"`
	ArticulationMax float64 `yaml:"articulation_max"`

	// Penalty per disfluency event per 100 words, and its cap.
	DensityPenaltyWeight float64 `yaml:"density_penalty_weight"`
	DensityPenaltyCap    float64 `yaml:"density_penalty_cap"`

	// Speaking-rate deviation penalty: deviation/scale, capped.
	RatePenaltyScale float64 `yaml:"rate_penalty_scale"`
	RatePenaltyCap   float64 `yaml:"rate_penalty_cap"`

	// Articulation-rate deviation penalty: deviation/scale, capped.
	ArticulationPenaltyScale float64 `yaml:"articulation_penalty_scale"`
	ArticulationPenaltyCap   float64 `yaml:"articulation_penalty_cap"`

	// Qualitative bucket thresholds.
	LowFluency       float64 `yaml:"low_fluency"`        // below: needs improvement
	ExcellentFluency float64 `yaml:"excellent_fluency"`  // above: excellent
	LongPauseSeconds float64 `yaml:"long_pause_seconds"` // average pause above: long pauses
}

// DefaultConfig returns the built-in scoring configuration.
func DefaultConfig() Config {
	return Config{
		SpeakingRateMin:          120,
		SpeakingRateMax:          180,
		ArticulationMin:          4,
		ArticulationMax:          7,
		DensityPenaltyWeight:     0.04,
		DensityPenaltyCap:        0.4,
		RatePenaltyScale:         200,
		RatePenaltyCap:           0.25,
		ArticulationPenaltyScale: 10,
		ArticulationPenaltyCap:   0.25,
		LowFluency:               0.8,
		ExcellentFluency:         0.95,
		LongPauseSeconds:         1.0,
	}
}
