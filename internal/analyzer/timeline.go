package analyzer

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/atikulmunna/chatlens/internal/model"
)

// daysPerPeriod is the fixed divisor for the messages-per-day average.
const daysPerPeriod = 30

var timelineShares = []struct {
	month string
	share float64
}{
	{"Jan", 0.10},
	{"Feb", 0.15},
	{"Mar", 0.20},
	{"Apr", 0.12},
	{"May", 0.18},
	{"Jun", 0.25},
}

// Timeline spreads total across six months by fixed shares. It depends only
// on total; no timestamps are read from the export.
func Timeline(total int) []model.TimelinePoint {
	points := make([]model.TimelinePoint, 0, len(timelineShares))
	for _, ts := range timelineShares {
		points = append(points, model.TimelinePoint{
			Month:    ts.month,
			Messages: int(math.Floor(float64(total) * ts.share)),
		})
	}
	return points
}

func perDay(total int) string {
	return ratio(total, daysPerPeriod, 2)
}

// ratio formats num/den with a fixed number of decimals, or zero when den is 0.
func ratio(num, den int, places int32) string {
	if den == 0 {
		return decimal.Zero.StringFixed(places)
	}
	return decimal.NewFromInt(int64(num)).
		Div(decimal.NewFromInt(int64(den))).
		StringFixed(places)
}
