package model

// SampleKind discriminates the two accepted input forms. The kind is decided
// once when the sample is built; downstream components switch on the variant,
// never on the payload itself.
type SampleKind string

const (
	KindAudio SampleKind = "audio"
	KindText  SampleKind = "text"
)

// Audio is a raw audio payload with its container format (wav, m4a, ...).
type Audio struct {
	Bytes  []byte
	Format string
}

// SpeechSample is the immutable input unit of one analysis run: either a
// transcript or raw audio, never both.
type SpeechSample struct {
	Kind  SampleKind
	Audio *Audio
	Text  string
}

// NewAudioSample builds an audio-kind sample.
func NewAudioSample(data []byte, format string) SpeechSample {
	return SpeechSample{Kind: KindAudio, Audio: &Audio{Bytes: data, Format: format}}
}

// NewTextSample builds a text-kind sample from an existing transcript.
func NewTextSample(text string) SpeechSample {
	return SpeechSample{Kind: KindText, Text: text}
}

// IsAudio reports whether the sample carries raw audio.
func (s SpeechSample) IsAudio() bool { return s.Kind == KindAudio }
