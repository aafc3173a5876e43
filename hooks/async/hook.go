// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    TruncatedEvery: 100, // sample logs: ~every 100th truncated scalar
//	    ClampedEvery:   1,   // log every clamped length prefix
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cfg := &arbitrary.Config{Hooks: hooks}
//	v := arbitrary.DecodeOnlyWith(codec, data, cfg)
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/arbitrary"
)

// Hooks forwards events to inner on background workers. When the queue is
// full events are dropped so decoding never blocks on observation.
type Hooks struct {
	inner arbitrary.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ arbitrary.Hooks = (*Hooks)(nil)

func New(inner arbitrary.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events reported after
// Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	defer func() { _ = recover() }() // send on closed queue after Close
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) ScalarTruncated(width, available int) {
	h.try(func() { h.inner.ScalarTruncated(width, available) })
}

func (h *Hooks) LengthClamped(kind string, claimed uint64, limit int) {
	h.try(func() { h.inner.LengthClamped(kind, claimed, limit) })
}
