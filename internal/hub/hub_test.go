package hub

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/atikulmunna/chatlens/internal/analyzer"
	"github.com/atikulmunna/chatlens/internal/model"
)

func TestHubBroadcast(t *testing.T) {
	input := make(chan model.Upload, 10)
	h := New(input, analyzer.New(nil), 5, zaptest.NewLogger(t))

	sub1 := h.Subscribe()
	sub2 := h.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Start(ctx)

	input <- model.Upload{Owner: "local", Source: "chat.txt", Text: "good day\nbad day"}

	for i, sub := range []<-chan model.Report{sub1, sub2} {
		select {
		case r := <-sub:
			if r.Summary.TotalMessages != 2 {
				t.Errorf("sub%d: expected 2 messages, got %d", i+1, r.Summary.TotalMessages)
			}
			if r.Source != "chat.txt" || r.Owner != "local" {
				t.Errorf("sub%d: unexpected origin %q/%q", i+1, r.Owner, r.Source)
			}
			if r.ID == "" {
				t.Errorf("sub%d: expected report id", i+1)
			}
			if r.Insights.Sentiment.Positive != 1 || r.Insights.Sentiment.Negative != 1 {
				t.Errorf("sub%d: unexpected insights %+v", i+1, r.Insights.Sentiment)
			}
		case <-time.After(1 * time.Second):
			t.Fatalf("sub%d: timed out", i+1)
		}
	}

	cancel()
}

func TestHubPublishReturnsReport(t *testing.T) {
	h := New(nil, analyzer.New(nil), 5, zaptest.NewLogger(t))
	sub := h.Subscribe()

	r := h.Publish(model.Upload{Owner: "a@b.c", Source: "upload.txt", Text: "hi"})
	if r.Summary.TotalMessages != 1 {
		t.Errorf("expected 1 message, got %d", r.Summary.TotalMessages)
	}

	select {
	case got := <-sub:
		if got.ID != r.ID {
			t.Errorf("expected broadcast of %s, got %s", r.ID, got.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestHubSlowConsumer(t *testing.T) {
	input := make(chan model.Upload, 10)
	h := New(input, analyzer.New(nil), 5, zaptest.NewLogger(t))

	// Subscribe but never read.
	_ = h.Subscribe()

	for i := 0; i < subscriberBuffer+10; i++ {
		h.Publish(model.Upload{Text: "line"})
	}

	if h.Dropped() != 10 {
		t.Errorf("expected 10 dropped reports, got %d", h.Dropped())
	}
}

func TestHubClosesSubscribersOnInputClose(t *testing.T) {
	input := make(chan model.Upload)
	h := New(input, analyzer.New(nil), 5, zaptest.NewLogger(t))
	sub := h.Subscribe()

	done := make(chan struct{})
	go func() {
		h.Start(context.Background())
		close(done)
	}()
	close(input)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop after input closed")
	}
	if _, ok := <-sub; ok {
		t.Error("expected subscriber channel to be closed")
	}

	// Publishing after shutdown must not panic.
	h.Publish(model.Upload{Text: "late"})

	if _, ok := <-h.Subscribe(); ok {
		t.Error("expected late subscription to be closed immediately")
	}
}

func TestUnsubscribe(t *testing.T) {
	h := New(nil, analyzer.New(nil), 5, zaptest.NewLogger(t))
	sub := h.Subscribe()

	h.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Error("expected channel to be closed after unsubscribe")
	}

	h.Publish(model.Upload{Text: "after"})
	if h.Dropped() != 0 {
		t.Errorf("expected no drops after unsubscribe, got %d", h.Dropped())
	}
}
