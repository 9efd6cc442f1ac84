package acoustic

import (
	"bufio"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"fluently/internal/model"
)

// Engine output is one "Key: value" pair per line, e.g.
//
//	Mean pitch: 121.40
//	Pitch variance: 210.33
//	Formant 1: 512.80
//
// Formant lines are indexed; everything else is a fixed key.
func parseEngineOutput(output string) (*model.AcousticProfile, error) {
	values := make(map[string]float64)
	formants := make(map[int]float64)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, raw, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			continue
		}

		if idx, isFormant := formantIndex(key); isFormant {
			formants[idx] = val
			continue
		}
		values[key] = val
	}

	required := []string{
		"mean pitch", "pitch variance",
		"mean intensity", "intensity variance",
		"speaking rate", "articulation rate",
		"total pause duration", "average pause duration", "pause count",
	}
	for _, key := range required {
		if _, ok := values[key]; !ok {
			return nil, fmt.Errorf("missing field %q in engine output", key)
		}
	}

	indexes := make([]int, 0, len(formants))
	for idx := range formants {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	ordered := make([]float64, 0, len(indexes))
	for _, idx := range indexes {
		ordered = append(ordered, formants[idx])
	}

	return &model.AcousticProfile{
		Pitch:            model.Stat{Mean: values["mean pitch"], Variance: values["pitch variance"]},
		Intensity:        model.Stat{Mean: values["mean intensity"], Variance: values["intensity variance"]},
		Formants:         ordered,
		SpeakingRate:     values["speaking rate"],
		ArticulationRate: values["articulation rate"],
		Pauses: model.PauseStats{
			TotalDuration:   values["total pause duration"],
			AverageDuration: values["average pause duration"],
			Frequency:       int(values["pause count"]),
		},
	}, nil
}

func formantIndex(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, "formant ")
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 1 {
		return 0, false
	}
	return idx, true
}
