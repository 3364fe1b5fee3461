package model

// MessageTypes counts lines by the attachment or link markers they contain.
// A line can match several categories or none.
type MessageTypes struct {
	Text       int `json:"text"`
	Links      int `json:"links"`
	Images     int `json:"images"`
	Gifs       int `json:"gifs"`
	Videos     int `json:"videos"`
	Stickers   int `json:"stickers"`
	AudioFiles int `json:"audioFiles"`
	Documents  int `json:"documents"`
	OtherFiles int `json:"otherFiles"`
}

// Sum returns the total across all categories.
func (m MessageTypes) Sum() int {
	return m.Text + m.Links + m.Images + m.Gifs + m.Videos +
		m.Stickers + m.AudioFiles + m.Documents + m.OtherFiles
}

// TimelinePoint is one month bucket of the synthetic timeline.
type TimelinePoint struct {
	Month    string `json:"month"`
	Messages int    `json:"messages"`
}

// MostActive is stamped with the wall-clock time of the analysis.
type MostActive struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
	Hour  string `json:"hour"`
}

// Summary is the result of analyzing one chat export.
type Summary struct {
	TotalMessages     int             `json:"totalMessages"`
	MessageTypes      MessageTypes    `json:"messageTypes"`
	EditedMessages    int             `json:"editedMessages"`
	SentimentData     []int           `json:"sentimentData"`
	EmojiCounts       map[string]int  `json:"emojiCounts"`
	WordCounts        map[string]int  `json:"wordCounts"`
	TimelineData      []TimelinePoint `json:"timelineData"`
	AvgMessagesPerDay string          `json:"avgMessagesPerDay"`
	MostActive        MostActive      `json:"mostActive"`
}
