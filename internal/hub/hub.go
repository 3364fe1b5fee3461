package hub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atikulmunna/chatlens/internal/analyzer"
	"github.com/atikulmunna/chatlens/internal/model"
)

const subscriberBuffer = 64

// Engine turns chat text into a summary.
type Engine interface {
	Analyze(text string) model.Summary
}

// Hub analyzes uploads and broadcasts the resulting Reports to all subscribers.
type Hub struct {
	engine      Engine
	top         int
	input       <-chan model.Upload
	log         *zap.Logger
	mu          sync.RWMutex
	subscribers []chan model.Report
	closed      bool
	dropped     atomic.Int64
}

// New creates a Hub that reads uploads from input. top sizes the ranked
// word and emoji lists in each Report's insights.
func New(input <-chan model.Upload, engine Engine, top int, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		engine: engine,
		top:    top,
		input:  input,
		log:    log,
	}
}

// Subscribe returns a buffered channel that will receive every Report.
// The channel is closed when the Hub stops.
func (h *Hub) Subscribe() <-chan model.Report {
	ch := make(chan model.Report, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.subscribers = append(h.subscribers, ch)
	return ch
}

// Unsubscribe removes and closes ch. Unknown channels are ignored.
func (h *Hub) Unsubscribe(ch <-chan model.Report) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, sub := range h.subscribers {
		if sub == ch {
			close(sub)
			h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
			return
		}
	}
}

// Dropped returns the total number of reports dropped due to slow consumers.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Start reads uploads from the input channel and publishes them.
// Blocks until the context is cancelled or the input channel is closed.
func (h *Hub) Start(ctx context.Context) {
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case up, ok := <-h.input:
			if !ok {
				return
			}
			h.Publish(up)
		}
	}
}

// Publish analyzes up, broadcasts the Report and returns it. It is safe to
// call from request handlers while Start is running.
func (h *Hub) Publish(up model.Upload) model.Report {
	started := time.Now()
	summary := h.engine.Analyze(up.Text)

	r := model.Report{
		ID:         uuid.NewString(),
		Owner:      up.Owner,
		Source:     up.Source,
		AnalyzedAt: started,
		Summary:    summary,
		Insights:   analyzer.Derive(summary, h.top),
	}

	h.log.Debug("analysis complete",
		zap.String("id", r.ID),
		zap.String("source", up.Source),
		zap.Int("messages", summary.TotalMessages),
		zap.Duration("took", time.Since(started)))

	h.broadcast(r)
	return r
}

// broadcast sends a report to all subscribers.
// If a subscriber's channel is full, the report is dropped for that subscriber.
func (h *Hub) broadcast(r model.Report) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}

	for _, ch := range h.subscribers {
		select {
		case ch <- r:
		default:
			n := h.dropped.Add(1)
			h.log.Warn("dropped report for slow consumer",
				zap.String("id", r.ID),
				zap.Int64("total_dropped", n))
		}
	}
}

// closeAll closes all subscriber channels.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
	h.closed = true
}
