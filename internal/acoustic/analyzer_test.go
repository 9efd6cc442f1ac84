package acoustic

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fluently/internal/model"
)

const goodOutput = `Mean pitch: 121.40
Pitch variance: 210.33
Mean intensity: 65.70
Intensity variance: 12.10
Formant 1: 512.80
Formant 2: 1498.20
Formant 3: 2510.00
Speaking rate: 148.50
Articulation rate: 5.20
Total pause duration: 3.40
Average pause duration: 0.42
Pause count: 8
`

type fakeRunner struct {
	output   string
	err      error
	lastPath string
}

func (f *fakeRunner) Run(ctx context.Context, wavPath, analysisID string) (string, error) {
	f.lastPath = wavPath
	return f.output, f.err
}

func TestParseEngineOutput(t *testing.T) {
	t.Parallel()

	profile, err := parseEngineOutput(goodOutput)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if profile.Pitch.Mean != 121.40 {
		t.Errorf("pitch mean = %f, want 121.40", profile.Pitch.Mean)
	}
	if profile.Intensity.Variance != 12.10 {
		t.Errorf("intensity variance = %f, want 12.10", profile.Intensity.Variance)
	}
	want := []float64{512.80, 1498.20, 2510.00}
	if len(profile.Formants) != len(want) {
		t.Fatalf("formants = %v, want %v", profile.Formants, want)
	}
	for i, f := range want {
		if profile.Formants[i] != f {
			t.Errorf("formant %d = %f, want %f", i+1, profile.Formants[i], f)
		}
	}
	if profile.SpeakingRate != 148.50 || profile.ArticulationRate != 5.20 {
		t.Errorf("rates = %f/%f, want 148.50/5.20", profile.SpeakingRate, profile.ArticulationRate)
	}
	if profile.Pauses.Frequency != 8 {
		t.Errorf("pause count = %d, want 8", profile.Pauses.Frequency)
	}
}

func TestParseEngineOutputMissingFieldIsFatal(t *testing.T) {
	t.Parallel()

	// Drop the speaking rate line; the parser must reject, not default to 0.
	partial := `Mean pitch: 121.40
Pitch variance: 210.33
Mean intensity: 65.70
Intensity variance: 12.10
Articulation rate: 5.20
Total pause duration: 3.40
Average pause duration: 0.42
Pause count: 8
`
	if _, err := parseEngineOutput(partial); err == nil {
		t.Fatal("expected error for missing speaking rate field")
	}
}

func TestAnalyzeRemovesScratchFileOnSuccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runner := &fakeRunner{output: goodOutput}
	a := NewAnalyzer(runner, dir)

	_, err := a.Analyze(context.Background(), model.Audio{Bytes: []byte("RIFFdata"), Format: "wav"}, "analysis-1")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if runner.lastPath != filepath.Join(dir, "analysis-1.wav") {
		t.Errorf("unexpected scratch path %s", runner.lastPath)
	}
	if _, statErr := os.Stat(runner.lastPath); !os.IsNotExist(statErr) {
		t.Errorf("scratch file %s not removed", runner.lastPath)
	}
}

func TestAnalyzeRemovesScratchFileOnEngineFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runner := &fakeRunner{err: errors.New("exit status 1")}
	a := NewAnalyzer(runner, dir)

	_, err := a.Analyze(context.Background(), model.Audio{Bytes: []byte("RIFFdata"), Format: "wav"}, "analysis-2")

	var aerr *AcousticAnalysisError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AcousticAnalysisError, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "analysis-2.wav")); !os.IsNotExist(statErr) {
		t.Error("scratch file not removed after engine failure")
	}
}

func TestAnalyzeRemovesScratchFileOnParseFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runner := &fakeRunner{output: "garbage with no fields"}
	a := NewAnalyzer(runner, dir)

	_, err := a.Analyze(context.Background(), model.Audio{Bytes: []byte("RIFFdata"), Format: "wav"}, "analysis-3")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "analysis-3.wav")); !os.IsNotExist(statErr) {
		t.Error("scratch file not removed after parse failure")
	}
}
