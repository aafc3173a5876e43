package arbitrary

import "reflect"

// Result holds either a success value or a failure value, never both.
// The zero Result is a failure carrying the zero E.
type Result[T, E any] struct {
	Value   T
	Failure E
	OK      bool
}

func Ok[T, E any](v T) Result[T, E]  { return Result[T, E]{Value: v, OK: true} }
func Err[T, E any](e E) Result[T, E] { return Result[T, E]{Failure: e} }

// resultTypes lets Derive recognize Result[T, E] for any T and E.
func (Result[T, E]) resultTypes() (reflect.Type, reflect.Type) {
	return reflect.TypeFor[T](), reflect.TypeFor[E]()
}

type resultCodec[T, E any] struct {
	ok  Codec[T]
	err Codec[E]
}

// ResultOf returns the codec of Result[T, E]: a 0xFF tag followed by the
// success payload, or a 0x00 tag followed by the failure payload. On decode
// exactly 0x00 selects the failure payload and any other tag the success
// payload; either way one payload is consumed.
func ResultOf[T, E any](ok Codec[T], err Codec[E]) Codec[Result[T, E]] {
	return resultCodec[T, E]{ok: ok, err: err}
}

func (c resultCodec[T, E]) Append(dst []byte, r Result[T, E]) []byte {
	if r.OK {
		return c.ok.Append(append(dst, tagPresent), r.Value)
	}
	return c.err.Append(append(dst, tagAbsent), r.Failure)
}

func (c resultCodec[T, E]) Decode(src []byte, cfg *Config) (Result[T, E], []byte) {
	tag, src := Uint8.Decode(src, cfg)
	if tag == tagAbsent {
		e, src := c.err.Decode(src, cfg)
		return Err[T](e), src
	}
	v, src := c.ok.Decode(src, cfg)
	return Ok[T, E](v), src
}
