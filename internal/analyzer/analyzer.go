// Package analyzer derives chat statistics from a plain-text export.
//
// Each non-blank line is treated as one message and inspected on its own;
// nothing is carried between lines, so the whole scan is a single pass.
package analyzer

import (
	"regexp"
	"strings"
	"time"

	"github.com/atikulmunna/chatlens/internal/model"
)

// Analyzer turns raw chat text into a model.Summary.
type Analyzer struct {
	now   func() time.Time
	emoji *regexp.Regexp
}

// New returns an Analyzer. A nil clock defaults to time.Now.
func New(now func() time.Time) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{
		now:   now,
		emoji: regexp.MustCompile(`[\x{1F300}-\x{1F9FF}]`),
	}
}

var std = New(nil)

// Analyze runs the default Analyzer over text.
func Analyze(text string) model.Summary {
	return std.Analyze(text)
}

// Analyze scans text line by line. It never fails: degenerate input yields
// zero counts and empty maps.
func (a *Analyzer) Analyze(text string) model.Summary {
	s := model.Summary{
		SentimentData: []int{},
		EmojiCounts:   make(map[string]int),
		WordCounts:    make(map[string]int),
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.TotalMessages++

		classify(line, &s.MessageTypes)

		if strings.Contains(line, editedMarker) {
			s.EditedMessages++
		}

		for _, e := range a.emoji.FindAllString(line, -1) {
			s.EmojiCounts[e]++
		}

		lower := strings.ToLower(line)
		for _, w := range words(lower) {
			s.WordCounts[w]++
		}

		s.SentimentData = append(s.SentimentData, int(score(lower)))
	}

	s.TimelineData = Timeline(s.TotalMessages)
	s.AvgMessagesPerDay = perDay(s.TotalMessages)
	s.MostActive = stamp(a.now())

	return s
}

func stamp(t time.Time) model.MostActive {
	return model.MostActive{
		Year:  t.Format("2006"),
		Month: t.Format("January"),
		Day:   t.Format("1/2/2006"),
		Hour:  t.Format("3:04:05 PM"),
	}
}
