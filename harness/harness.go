// Package harness wires arbitrary codecs into native Go fuzz tests.
//
//	func FuzzParse(f *testing.F) {
//		c := arbitrary.MustDerive[Request]()
//		harness.Seed(f, c, Request{Method: "GET"})
//		harness.Fuzz(f, c, func(t *testing.T, r Request) {
//			_ = Parse(r)
//		}, harness.Options{SkipDegraded: true})
//	}
package harness

import (
	"testing"

	"github.com/unkn0wn-root/arbitrary"
	"github.com/unkn0wn-root/arbitrary/codec"
)

// Report describes how a fuzz input was consumed.
type Report struct {
	Consumed    int // bytes read
	Remaining   int // bytes left over
	Truncations int // scalars read from a short buffer
	Clamps      int // length prefixes cut down to the ceiling
}

// Degraded reports whether the value was produced from a short or
// oversized input rather than from bytes a matching encoder would write.
func (r Report) Degraded() bool { return r.Truncations > 0 || r.Clamps > 0 }

type counter struct {
	next arbitrary.Hooks
	rep  *Report
}

func (h counter) ScalarTruncated(width, available int) {
	h.rep.Truncations++
	h.next.ScalarTruncated(width, available)
}

func (h counter) LengthClamped(kind string, claimed uint64, limit int) {
	h.rep.Clamps++
	h.next.LengthClamped(kind, claimed, limit)
}

// Materialize decodes data with c and reports what the decode observed.
// Hooks already set on cfg still receive every event.
func Materialize[V any](c arbitrary.Codec[V], data []byte, cfg *arbitrary.Config) (V, Report) {
	var rep Report
	run := arbitrary.Config{}
	if cfg != nil {
		run = *cfg
	}
	next := run.Hooks
	if next == nil {
		next = arbitrary.NopHooks{}
	}
	run.Hooks = counter{next: next, rep: &rep}

	v, rest := arbitrary.DecodeWith(c, data, &run)
	rep.Remaining = len(rest)
	rep.Consumed = len(data) - len(rest)
	return v, rep
}

// Seed adds the encoding of each value to the fuzz corpus.
func Seed[V any](f *testing.F, c arbitrary.Codec[V], seeds ...V) {
	f.Helper()
	for _, v := range seeds {
		f.Add(arbitrary.Encode(c, v))
	}
}

// SeedDocuments decodes hand-written documents (JSON, YAML, CBOR...) with
// dec and adds their encodings to the fuzz corpus. A document that does not
// decode fails the test.
func SeedDocuments[V any](f *testing.F, c arbitrary.Codec[V], dec codec.Codec[V], docs ...[]byte) {
	f.Helper()
	for i, d := range docs {
		b, err := codec.Transcode[V](d, dec, codec.Arbitrary[V]{C: c})
		if err != nil {
			f.Fatalf("seed document %d: %v", i, err)
		}
		f.Add(b)
	}
}

type Options struct {
	Config *arbitrary.Config // decode bounds; nil = defaults
	Logger arbitrary.Logger  // receives a debug record per degraded input; nil = silent

	// SkipDegraded skips inputs whose decode truncated a scalar or clamped a
	// length. Such inputs still exercise the target through their other
	// fields, so leave it off unless the target rejects short values anyway.
	SkipDegraded bool
}

// Fuzz runs target on every fuzz input materialized with c.
func Fuzz[V any](f *testing.F, c arbitrary.Codec[V], target func(*testing.T, V), opts Options) {
	f.Helper()
	log := opts.Logger
	if log == nil {
		log = arbitrary.NopLogger{}
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		v, rep := Materialize(c, data, opts.Config)
		if rep.Degraded() {
			log.Debug("degraded fuzz input", arbitrary.Fields{
				"size":        len(data),
				"consumed":    rep.Consumed,
				"truncations": rep.Truncations,
				"clamps":      rep.Clamps,
			})
			if opts.SkipDegraded {
				t.Skip("degraded input")
			}
		}
		target(t, v)
	})
}
