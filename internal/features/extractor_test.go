package features

import (
	"reflect"
	"testing"
)

func TestExtractEmptyInput(t *testing.T) {
	t.Parallel()

	b := Extract("")
	if b.WordCount != 0 {
		t.Errorf("expected 0 words, got %d", b.WordCount)
	}
	if len(b.Tokens) != 0 {
		t.Errorf("expected no tokens, got %v", b.Tokens)
	}
	if len(b.WordFrequencies) != 0 {
		t.Errorf("expected empty frequency map, got %v", b.WordFrequencies)
	}
	if b.SentenceCount != 0 {
		t.Errorf("expected 0 sentences, got %d", b.SentenceCount)
	}
}

func TestExtractWordCountMatchesTokens(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"The quick brown fox jumps over the lazy dog.",
		"Hello, hello! Is anyone there?",
		"Practice makes perfect; practice daily.",
		"one",
		"A the of and", // stop-words only
	}
	for _, in := range inputs {
		b := Extract(in)
		if b.WordCount != len(b.Tokens) {
			t.Errorf("input %q: word count %d != token count %d", in, b.WordCount, len(b.Tokens))
		}
	}
}

func TestExtractNormalization(t *testing.T) {
	t.Parallel()

	b := Extract("The Quick BROWN fox, the quick fox!")
	want := []string{"quick", "brown", "fox", "quick", "fox"}
	if !reflect.DeepEqual(b.Tokens, want) {
		t.Errorf("tokens = %v, want %v", b.Tokens, want)
	}
	// Repeated words weigh more than singletons under the single-document
	// TF-IDF, even with the idf dampening.
	if b.WordFrequencies["fox"] <= b.WordFrequencies["brown"] {
		t.Errorf("expected fox (%f) to outweigh brown (%f)",
			b.WordFrequencies["fox"], b.WordFrequencies["brown"])
	}
}

func TestExtractDeterministic(t *testing.T) {
	t.Parallel()

	in := "She sells sea shells by the sea shore."
	a := Extract(in)
	b := Extract(in)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("extraction not deterministic:\n%v\n%v", a, b)
	}
}

func TestExtractSentenceCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
	}{
		{"One. Two! Three?", 3},
		{"No terminator at the end", 1},
		{"Trailing dots... still one sentence.", 2},
		{"", 0},
	}
	for _, c := range cases {
		if got := Extract(c.in).SentenceCount; got != c.want {
			t.Errorf("SentenceCount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestExtractEntitiesUseOriginalCasing(t *testing.T) {
	t.Parallel()

	b := Extract("Yesterday I met Doctor Smith at the NASA office. The visit went well.")

	var names []string
	for _, e := range b.Entities {
		names = append(names, e.Text)
	}
	if !contains(names, "Doctor Smith") {
		t.Errorf("expected entity 'Doctor Smith', got %v", names)
	}
	if !contains(names, "NASA") {
		t.Errorf("expected entity 'NASA', got %v", names)
	}
	// "The" opens a sentence and must not become an entity.
	if contains(names, "The") {
		t.Errorf("sentence opener reported as entity: %v", names)
	}

	for _, e := range b.Entities {
		if e.Text == "NASA" && e.Type != "acronym" {
			t.Errorf("NASA type = %q, want acronym", e.Type)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
