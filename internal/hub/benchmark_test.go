package hub

import (
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/atikulmunna/chatlens/internal/analyzer"
	"github.com/atikulmunna/chatlens/internal/model"
)

// BenchmarkHubPublish measures analyze + broadcast cost for N subscribers.
func BenchmarkHubPublish1(b *testing.B)  { benchHubPublish(b, 1) }
func BenchmarkHubPublish5(b *testing.B)  { benchHubPublish(b, 5) }
func BenchmarkHubPublish10(b *testing.B) { benchHubPublish(b, 10) }

func benchHubPublish(b *testing.B, numSubs int) {
	h := New(nil, analyzer.New(nil), 10, zap.NewNop())

	for i := 0; i < numSubs; i++ {
		ch := h.Subscribe()
		go func() {
			for range ch {
			}
		}()
	}
	defer h.closeAll()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		h.Publish(model.Upload{
			Source: "bench.txt",
			Text:   fmt.Sprintf("alice: good news %d 😊\nbob: see http://x.com/%d.png", i, i),
		})
	}
}
