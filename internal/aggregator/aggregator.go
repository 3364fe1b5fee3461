package aggregator

import (
	"context"
	"sync"
	"time"

	"github.com/atikulmunna/chatlens/internal/model"
)

// Stats holds a point-in-time snapshot of service counters.
type Stats struct {
	Uptime           string `json:"uptime"`
	Analyses         int64  `json:"analyses"`
	MessagesAnalyzed int64  `json:"messages_analyzed"`
	Owners           int    `json:"owners"`
	DroppedReports   int64  `json:"dropped_reports"`
	FilesWatched     int    `json:"files_watched"`
}

// Aggregator consumes Reports and keeps the latest one per owner.
// A newer report replaces the previous one; nothing is persisted.
type Aggregator struct {
	mu       sync.RWMutex
	start    time.Time
	analyses int64
	messages int64
	latest   map[string]model.Report
	dropped  func() int64
	files    func() int
	reports  <-chan model.Report
}

// New creates an Aggregator that reads from a Hub subscriber channel.
// droppedFn and fileCountFn supply live values from the Hub and Watcher;
// either may be nil.
func New(reports <-chan model.Report, droppedFn func() int64, fileCountFn func() int) *Aggregator {
	if droppedFn == nil {
		droppedFn = func() int64 { return 0 }
	}
	if fileCountFn == nil {
		fileCountFn = func() int { return 0 }
	}
	return &Aggregator{
		start:   time.Now(),
		latest:  make(map[string]model.Report),
		dropped: droppedFn,
		files:   fileCountFn,
		reports: reports,
	}
}

// Snapshot returns the current counters.
func (a *Aggregator) Snapshot() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return Stats{
		Uptime:           time.Since(a.start).Truncate(time.Second).String(),
		Analyses:         a.analyses,
		MessagesAnalyzed: a.messages,
		Owners:           len(a.latest),
		DroppedReports:   a.dropped(),
		FilesWatched:     a.files(),
	}
}

// Latest returns the most recent report for owner.
func (a *Aggregator) Latest(owner string) (model.Report, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	r, ok := a.latest[owner]
	return r, ok
}

// Forget drops the held report for owner, e.g. on logout.
func (a *Aggregator) Forget(owner string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.latest, owner)
}

// Start consumes reports until the context is cancelled or the channel closes.
func (a *Aggregator) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-a.reports:
			if !ok {
				return
			}
			a.Record(r)
		}
	}
}

// Record folds r into the counters and makes it the owner's latest report.
func (a *Aggregator) Record(r model.Report) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.analyses++
	a.messages += int64(r.Summary.TotalMessages)
	a.latest[r.Owner] = r
}
