// Package arbitrary implements a deterministic binary encoding that turns Go
// values into bytes and, more importantly, turns any bytes back into values.
// It is meant for fuzz and test harnesses that materialize structured inputs
// from raw fuzzer-supplied bytes.
//
// Every Codec[V] decodes a prefix of its input and returns the unconsumed
// suffix, so composite codecs thread the suffix through their components
// without knowing their encoded widths in advance. Decoding is total: it never
// panics and never fails. Short input degrades to zero values, and untrusted
// length prefixes are clamped to Config.Ceiling before anything is allocated.
//
// Layout (little-endian, no header, no version tag):
//
//	integer/float    N raw bytes, N = natural width (uint/int: platform width)
//	bool             1 byte: 0xFF = true, anything else = false
//	char (rune)      1 byte, code points 0-255 only
//	string           length (uint, char count) | chars
//	[]T              length (uint, element count) | elements
//	Option[T]        tag (0x00 = absent, else present) | payload if present
//	Result[T, E]     tag (0x00 = Err, else Ok) | payload
//	TupleN           elements in position order
//	struct           fields in declaration order
//
// User-defined product types join the protocol in one of three ways: Product
// with an explicit field list (what a generator emits), Self for types with
// generated AppendArbitrary/DecodeArbitrary methods, or Derive, which builds
// the same encoding by reflection.
//
// Usage:
//
//	c := arbitrary.MustDerive[Order]()
//	b := arbitrary.Encode(c, order)
//	got := arbitrary.DecodeOnly(c, b)
//
//	// in a fuzz target, with a tighter bound for hostile input:
//	in := arbitrary.DecodeOnlyWith(c, data, &arbitrary.Config{Ceiling: 64 << 10})
package arbitrary
