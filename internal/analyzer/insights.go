package analyzer

import (
	"math"
	"sort"

	"github.com/atikulmunna/chatlens/internal/model"
)

// DefaultTop is the ranking size used when callers pass n <= 0.
const DefaultTop = 10

// Derive computes display insights from s without modifying it.
func Derive(s model.Summary, top int) model.Insights {
	return model.Insights{
		Sentiment:        Breakdown(s.SentimentData),
		MonthlySentiment: MonthlySentiment(s.TimelineData),
		Language:         Language(s),
		TopWords:         TopN(s.WordCounts, top),
		TopEmojis:        TopN(s.EmojiCounts, top),
	}
}

// Breakdown tallies sentiment scores and their share of the total.
func Breakdown(scores []int) model.SentimentBreakdown {
	var b model.SentimentBreakdown
	for _, v := range scores {
		switch {
		case v > 0:
			b.Positive++
		case v < 0:
			b.Negative++
		default:
			b.Neutral++
		}
	}
	b.Total = len(scores)
	b.PositivePercent = ratio(b.Positive*100, b.Total, 1)
	b.NegativePercent = ratio(b.Negative*100, b.Total, 1)
	b.NeutralPercent = ratio(b.Neutral*100, b.Total, 1)
	return b
}

// MonthlySentiment estimates per-month sentiment from the timeline counts.
// Negative values are reported below zero for charting.
func MonthlySentiment(timeline []model.TimelinePoint) []model.MonthSentiment {
	out := make([]model.MonthSentiment, 0, len(timeline))
	for _, p := range timeline {
		out = append(out, model.MonthSentiment{
			Month:    p.Month,
			Positive: int(math.Floor(float64(p.Messages) * 0.3)),
			Negative: int(math.Floor(float64(p.Messages) * -0.2)),
		})
	}
	return out
}

// Language summarizes the word tally. Language detection is not attempted;
// every export is reported as English.
func Language(s model.Summary) model.LanguageStats {
	total := 0
	for _, c := range s.WordCounts {
		total += c
	}
	return model.LanguageStats{
		TotalWords:         total,
		UniqueWords:        len(s.WordCounts),
		AvgWordsPerMessage: ratio(total, s.TotalMessages, 2),
		Languages:          []string{"English"},
		Unreliable:         int(math.Floor(float64(total) * 0.1)),
	}
}

// TopN ranks counts by frequency, breaking ties by key.
func TopN(counts map[string]int, n int) []model.Count {
	if n <= 0 {
		n = DefaultTop
	}
	items := make([]model.Count, 0, len(counts))
	for k, v := range counts {
		items = append(items, model.Count{Key: k, Count: v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Key < items[j].Key
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}
