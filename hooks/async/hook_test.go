package asynchook

import (
	"sync"
	"testing"

	"github.com/unkn0wn-root/arbitrary"
)

type countingHooks struct {
	mu        sync.Mutex
	truncated int
	clamped   []string
}

func (c *countingHooks) ScalarTruncated(int, int) {
	c.mu.Lock()
	c.truncated++
	c.mu.Unlock()
}

func (c *countingHooks) LengthClamped(kind string, _ uint64, _ int) {
	c.mu.Lock()
	c.clamped = append(c.clamped, kind)
	c.mu.Unlock()
}

func TestAsyncHooksDeliverBeforeClose(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 2, 64)

	in := arbitrary.Encode(arbitrary.Uint, 1000)
	arbitrary.DecodeOnlyWith(arbitrary.String, in, &arbitrary.Config{Ceiling: 10, Hooks: h})
	h.Close()

	if len(inner.clamped) != 1 || inner.clamped[0] != "text" {
		t.Fatalf("clamped: %v", inner.clamped)
	}
	if inner.truncated != 10 {
		t.Fatalf("truncated: got %d want 10", inner.truncated)
	}
}

func TestAsyncHooksDropWhenFull(t *testing.T) {
	block := make(chan struct{})
	inner := &blockingHooks{release: block}
	h := New(inner, 1, 1)

	for i := 0; i < 100; i++ {
		h.ScalarTruncated(8, 0) // must not block
	}
	close(block)
	h.Close()
	h.ScalarTruncated(8, 0) // after Close: dropped, no panic
}

type blockingHooks struct{ release chan struct{} }

func (b *blockingHooks) ScalarTruncated(int, int)          { <-b.release }
func (b *blockingHooks) LengthClamped(string, uint64, int) { <-b.release }
