package transcribe

import (
	"context"
	"errors"
	"testing"

	"fluently/internal/model"
)

type fakeEngine struct {
	result *Result
	err    error
}

func (f *fakeEngine) Transcribe(ctx context.Context, audio model.Audio) (*Result, error) {
	return f.result, f.err
}

func (f *fakeEngine) Name() string { return "fake" }

func validAudio() model.Audio {
	return model.Audio{Bytes: make([]byte, 4096), Format: "wav"}
}

func TestTranscribeJoinsSegments(t *testing.T) {
	t.Parallel()

	tr := NewTranscriber(&fakeEngine{result: &Result{
		Segments: []Segment{
			{Start: 0, End: 1.2, Text: "hello there"},
			{Start: 1.2, End: 2.0, Text: " general "},
			{Start: 2.0, End: 2.5, Text: "speaker"},
		},
	}})

	got, err := tr.Transcribe(context.Background(), validAudio())
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	want := "hello there general speaker"
	if got != want {
		t.Errorf("transcript = %q, want %q", got, want)
	}
}

func TestTranscribeRejectsTinyAudio(t *testing.T) {
	t.Parallel()

	tr := NewTranscriber(&fakeEngine{result: &Result{}})
	_, err := tr.Transcribe(context.Background(), model.Audio{Bytes: []byte{1, 2, 3}})

	var terr *TranscriptionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TranscriptionError, got %v", err)
	}
}

func TestTranscribeWrapsEngineError(t *testing.T) {
	t.Parallel()

	engineErr := errors.New("connection refused")
	tr := NewTranscriber(&fakeEngine{err: engineErr})
	_, err := tr.Transcribe(context.Background(), validAudio())

	var terr *TranscriptionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TranscriptionError, got %v", err)
	}
	if !errors.Is(err, engineErr) {
		t.Errorf("engine error not wrapped: %v", err)
	}
}

func TestTranscribeRejectsEmptyTranscript(t *testing.T) {
	t.Parallel()

	tr := NewTranscriber(&fakeEngine{result: &Result{
		Segments: []Segment{{Text: "   "}},
	}})
	_, err := tr.Transcribe(context.Background(), validAudio())

	var terr *TranscriptionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TranscriptionError for empty transcript, got %v", err)
	}
}
