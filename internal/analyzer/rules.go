package analyzer

import (
	"strings"
	"unicode"

	"github.com/atikulmunna/chatlens/internal/model"
)

const editedMarker = "(edited)"

// Sentiment is a per-line score from keyword matching.
type Sentiment int

const (
	Negative Sentiment = -1
	Neutral  Sentiment = 0
	Positive Sentiment = 1
)

var (
	positiveWords = []string{"happy", "great", "good", "love", "😊", "👍"}
	negativeWords = []string{"sad", "bad", "hate", "awful", "😢", "👎"}
)

// classify bumps every message-type counter whose marker appears in line.
// Matching is case-sensitive and the tests are independent.
func classify(line string, mt *model.MessageTypes) {
	if strings.Contains(line, "http") {
		mt.Links++
	}
	if containsAny(line, ".jpg", ".png") {
		mt.Images++
	}
	if strings.Contains(line, ".gif") {
		mt.Gifs++
	}
	if containsAny(line, ".mp4", ".mov") {
		mt.Videos++
	}
	if containsAny(line, ".mp3", ".wav") {
		mt.AudioFiles++
	}
	if containsAny(line, ".pdf", ".doc") {
		mt.Documents++
	}
}

// score expects an already lower-cased line. Positive keywords win over
// negative ones when both are present.
func score(lower string) Sentiment {
	switch {
	case containsAny(lower, positiveWords...):
		return Positive
	case containsAny(lower, negativeWords...):
		return Negative
	default:
		return Neutral
	}
}

// words strips everything but ASCII letters, digits and whitespace, then
// splits on whitespace runs. Punctuation is removed, not replaced, so
// "don't" becomes "dont".
func words(lower string) []string {
	stripped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, lower)
	return strings.Fields(stripped)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
