// Package features turns a raw transcript into the canonical FeatureBundle:
// cleaned tokens, single-document TF-IDF weights, named entities and counts.
package features

import (
	"math"
	"strings"
	"unicode"

	"fluently/internal/model"
)

// Extract derives a FeatureBundle from a transcript. Deterministic and free
// of side effects; an empty transcript yields zero tokens and an empty
// frequency map. Tokens and frequencies come from the normalized text
// (lowercased, punctuation stripped, stop-words removed); entity extraction
// runs on the original text because it needs the casing.
func Extract(text string) model.FeatureBundle {
	tokens := tokenize(text)

	freqs := make(map[string]float64, len(tokens))
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	// TF-IDF against a single-document corpus: the sample acts as its own
	// corpus, so the idf term only dampens very frequent words. Crude on
	// purpose; the weights rank words within one sample, nothing more.
	total := float64(len(tokens))
	for term, n := range counts {
		tf := float64(n) / total
		idf := 1 + math.Log(total/float64(1+n))
		freqs[term] = tf * idf
	}

	return model.FeatureBundle{
		Tokens:          tokens,
		WordFrequencies: freqs,
		Entities:        extractEntities(text),
		WordCount:       len(tokens),
		SentenceCount:   countSentences(text),
	}
}

// tokenize lowercases, strips punctuation and drops stop-words.
func tokenize(text string) []string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	var tokens []string
	for _, w := range strings.Fields(clean) {
		w = strings.Trim(w, "'")
		if w == "" || isStopword(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func countSentences(text string) int {
	n := 0
	inSentence := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if inSentence {
				n++
				inSentence = false
			}
		case !unicode.IsSpace(r):
			inSentence = true
		}
	}
	if inSentence {
		n++
	}
	return n
}

// extractEntities finds capitalized word runs in the original text. A single
// capitalized word at a sentence start is ignored, which filters ordinary
// sentence openers; multi-word runs count anywhere.
func extractEntities(text string) []model.Entity {
	words := strings.Fields(text)
	var out []model.Entity
	seen := make(map[string]struct{})

	sentenceStart := true
	var run []string
	runAtStart := false

	flush := func() {
		if len(run) == 0 {
			return
		}
		single := len(run) == 1
		name := strings.Join(run, " ")
		run = nil
		if runAtStart && single {
			return
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		typ := "proper_noun"
		if single && isAcronym(name) {
			typ = "acronym"
		}
		out = append(out, model.Entity{Text: name, Type: typ})
	}

	for _, w := range words {
		trimmed := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		endsSentence := strings.ContainsAny(w, ".!?")

		if trimmed != "" && startsUpper(trimmed) && !isStopword(strings.ToLower(trimmed)) {
			if len(run) == 0 {
				runAtStart = sentenceStart
			}
			run = append(run, trimmed)
		} else {
			flush()
		}

		if endsSentence {
			flush()
			sentenceStart = true
		} else {
			sentenceStart = false
		}
	}
	flush()
	return out
}

func startsUpper(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}

func isAcronym(w string) bool {
	if len(w) < 2 {
		return false
	}
	for _, r := range w {
		if !unicode.IsUpper(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
