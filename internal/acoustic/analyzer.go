// Package acoustic extracts pitch, intensity, formant, pause and rate
// measures from audio by invoking an external measurement engine on a
// transient scratch file.
package acoustic

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"fluently/internal/model"
)

// Runner invokes the external measurement engine on a WAV file and returns
// its raw structured text output.
type Runner interface {
	Run(ctx context.Context, wavPath, analysisID string) (string, error)
}

// ScriptRunner runs a praat-style analysis script as a subprocess.
type ScriptRunner struct {
	Bin    string // engine binary, e.g. "praat"
	Script string // analysis script path
}

// Run executes the engine with the scratch file path argument. A non-zero
// exit is an error carrying the captured stderr.
func (r *ScriptRunner) Run(ctx context.Context, wavPath, analysisID string) (string, error) {
	cmd := exec.CommandContext(ctx, r.Bin, "--run", r.Script, wavPath, analysisID)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("engine %s exited: %w (stderr: %s)", r.Bin, err, stderr.String())
	}
	return stdout.String(), nil
}

// Analyzer persists audio to a scratch file, runs the engine and parses its
// output into an AcousticProfile.
type Analyzer struct {
	runner     Runner
	scratchDir string
}

// NewAnalyzer returns an Analyzer writing scratch files under scratchDir.
func NewAnalyzer(runner Runner, scratchDir string) *Analyzer {
	return &Analyzer{runner: runner, scratchDir: scratchDir}
}

// Analyze measures the audio sample. The scratch file is removed on every
// exit path, success or failure.
func (a *Analyzer) Analyze(ctx context.Context, audio model.Audio, analysisID string) (*model.AcousticProfile, error) {
	startTime := time.Now()

	if err := os.MkdirAll(a.scratchDir, 0o755); err != nil {
		return nil, &AcousticAnalysisError{Reason: "failed to create scratch directory", Err: err}
	}

	wavPath := filepath.Join(a.scratchDir, analysisID+".wav")
	if err := os.WriteFile(wavPath, audio.Bytes, 0o644); err != nil {
		return nil, &AcousticAnalysisError{Reason: "failed to write scratch file", Err: err}
	}
	defer func() {
		if err := os.Remove(wavPath); err != nil {
			log.Warnf("[Acoustic] Failed to remove scratch file %s: %v", wavPath, err)
		}
	}()

	output, err := a.runner.Run(ctx, wavPath, analysisID)
	if err != nil {
		return nil, &AcousticAnalysisError{Reason: "engine failure", Err: err}
	}

	profile, err := parseEngineOutput(output)
	if err != nil {
		return nil, &AcousticAnalysisError{Reason: "malformed engine output", Err: err}
	}

	log.Infof("[Acoustic] Analysis successful: pitch=%.1fHz, rate=%.1fwpm, duration=%v",
		profile.Pitch.Mean, profile.SpeakingRate, time.Since(startTime))
	return profile, nil
}
