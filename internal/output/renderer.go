package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atikulmunna/chatlens/internal/model"
)

// Renderer writes Reports to an output stream.
type Renderer interface {
	Render(r model.Report) error
}

// New returns the renderer for format ("text" or "json").
func New(format string, w io.Writer) Renderer {
	if strings.EqualFold(format, "json") {
		return NewJSONRenderer(w)
	}
	return NewTextRenderer(w)
}

// ---------------------------------------------------------------------------
// Text Renderer (styled terminal output)
// ---------------------------------------------------------------------------

const barWidth = 30

var (
	styleTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	styleSection = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true)
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	styleValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	stylePos     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleNeg     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleNeutral = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	styleBar     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	styleFaint   = lipgloss.NewStyle().Faint(true)
)

// TextRenderer prints a readable report with colored sections.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes styled text to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(rep model.Report) error {
	s := rep.Summary
	in := rep.Insights
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n",
		styleTitle.Render(rep.Source),
		styleFaint.Render(fmt.Sprintf("analyzed %s · %s", rep.AnalyzedAt.Format("15:04:05"), rep.ID)))

	section(&b, "Overview")
	row(&b, "Messages", fmt.Sprint(s.TotalMessages))
	row(&b, "Edited", fmt.Sprint(s.EditedMessages))
	row(&b, "Avg per day", s.AvgMessagesPerDay)
	row(&b, "Most active", fmt.Sprintf("%s %s · %s · %s", s.MostActive.Month, s.MostActive.Year, s.MostActive.Day, s.MostActive.Hour))

	section(&b, "Message types")
	mt := s.MessageTypes
	for _, kv := range []struct {
		label string
		n     int
	}{
		{"Text", mt.Text}, {"Links", mt.Links}, {"Images", mt.Images},
		{"GIFs", mt.Gifs}, {"Videos", mt.Videos}, {"Stickers", mt.Stickers},
		{"Audio", mt.AudioFiles}, {"Documents", mt.Documents}, {"Other files", mt.OtherFiles},
	} {
		row(&b, kv.label, fmt.Sprint(kv.n))
	}

	section(&b, "Sentiment")
	sb := in.Sentiment
	row(&b, "Positive", stylePos.Render(fmt.Sprintf("%d (%s%%)", sb.Positive, sb.PositivePercent)))
	row(&b, "Negative", styleNeg.Render(fmt.Sprintf("%d (%s%%)", sb.Negative, sb.NegativePercent)))
	row(&b, "Neutral", styleNeutral.Render(fmt.Sprintf("%d (%s%%)", sb.Neutral, sb.NeutralPercent)))

	section(&b, "Timeline")
	peak := 0
	for _, p := range s.TimelineData {
		peak = max(peak, p.Messages)
	}
	for _, p := range s.TimelineData {
		fmt.Fprintf(&b, "  %s %s %d\n", styleLabel.Render(p.Month), styleBar.Render(bar(p.Messages, peak)), p.Messages)
	}

	section(&b, "Top words")
	ranked(&b, in.TopWords)

	section(&b, "Top emojis")
	ranked(&b, in.TopEmojis)

	section(&b, "Language")
	lang := in.Language
	row(&b, "Total words", fmt.Sprint(lang.TotalWords))
	row(&b, "Unique words", fmt.Sprint(lang.UniqueWords))
	row(&b, "Words / message", lang.AvgWordsPerMessage)
	row(&b, "Languages", strings.Join(lang.Languages, ", "))
	row(&b, "Unreliable", fmt.Sprint(lang.Unreliable))

	_, err := fmt.Fprintln(r.w, b.String())
	return err
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n%s\n", styleSection.Render(title))
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", styleLabel.Render(label), styleValue.Render(value))
}

func ranked(b *strings.Builder, items []model.Count) {
	if len(items) == 0 {
		fmt.Fprintf(b, "  %s\n", styleFaint.Render("none"))
		return
	}
	for i, c := range items {
		fmt.Fprintf(b, "  %2d. %s %d\n", i+1, styleLabel.Render(c.Key), c.Count)
	}
}

// bar scales n against peak into a fixed-width block bar.
func bar(n, peak int) string {
	if peak <= 0 || n <= 0 {
		return ""
	}
	return strings.Repeat("█", max(1, n*barWidth/peak))
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints each report as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONRenderer{enc: enc}
}

func (r *JSONRenderer) Render(rep model.Report) error {
	return r.enc.Encode(rep)
}
