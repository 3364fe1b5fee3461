package model

import "time"

// Upload is a fully buffered chat export waiting to be analyzed.
type Upload struct {
	Owner  string // session email, or "local" for CLI runs
	Source string // file path or upload filename
	Text   string
}

// Report carries one analysis result through the hub to its subscribers.
type Report struct {
	ID         string    `json:"id"`
	Owner      string    `json:"owner"`
	Source     string    `json:"source"`
	AnalyzedAt time.Time `json:"analyzedAt"`
	Summary    Summary   `json:"summary"`
	Insights   Insights  `json:"insights"`
}

// SentimentBreakdown tallies the per-line sentiment scores.
type SentimentBreakdown struct {
	Positive        int    `json:"positive"`
	Negative        int    `json:"negative"`
	Neutral         int    `json:"neutral"`
	Total           int    `json:"total"`
	PositivePercent string `json:"positivePercent"`
	NegativePercent string `json:"negativePercent"`
	NeutralPercent  string `json:"neutralPercent"`
}

// MonthSentiment is the per-month sentiment estimate shown next to the timeline.
type MonthSentiment struct {
	Month    string `json:"month"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
}

// LanguageStats summarizes the word tally.
type LanguageStats struct {
	TotalWords         int      `json:"totalWords"`
	UniqueWords        int      `json:"uniqueWords"`
	AvgWordsPerMessage string   `json:"avgWordsPerMessage"`
	Languages          []string `json:"languages"`
	Unreliable         int      `json:"unreliable"`
}

// Count is a key with its frequency, used for ranked words and emojis.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Insights are values derived from a Summary for display.
type Insights struct {
	Sentiment        SentimentBreakdown `json:"sentiment"`
	MonthlySentiment []MonthSentiment   `json:"monthlySentiment"`
	Language         LanguageStats      `json:"language"`
	TopWords         []Count            `json:"topWords"`
	TopEmojis        []Count            `json:"topEmojis"`
}
