package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/arbitrary"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	// A single hostile input can truncate thousands of scalars.
	TruncatedEvery uint64
	ClampedEvery   uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	truncatedCtr atomic.Uint64
	clampedCtr   atomic.Uint64
}

var _ arbitrary.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ScalarTruncated(width, available int) {
	if h.l == nil || !sample(h.opts.TruncatedEvery, &h.truncatedCtr) {
		return
	}
	h.l.Debug("arbitrary.scalar_truncated",
		"width", width,
		"available", available)
}

func (h *Hooks) LengthClamped(kind string, claimed uint64, limit int) {
	if h.l == nil || !sample(h.opts.ClampedEvery, &h.clampedCtr) {
		return
	}
	h.l.Info("arbitrary.length_clamped",
		"kind", kind,
		"claimed", claimed,
		"limit", limit)
}
