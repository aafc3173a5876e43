package arbitrary

import "reflect"

type sliceCodec[T any] struct {
	elem  Codec[T]
	width int
}

// Slice returns the codec of []T: a platform-width element count followed by
// each element in order.
//
// Decode never trusts the count. It is clamped to ceiling/width elements, where
// width is the in-memory size of T, before anything is allocated; the same
// byte budget therefore yields fewer elements of a wider type.
func Slice[T any](elem Codec[T]) Codec[[]T] {
	return sliceCodec[T]{elem: elem, width: widthOf(reflect.TypeFor[T]())}
}

func (c sliceCodec[T]) Append(dst []byte, s []T) []byte {
	dst = Uint.Append(dst, uint(len(s)))
	for _, v := range s {
		dst = c.elem.Append(dst, v)
	}
	return dst
}

func (c sliceCodec[T]) Decode(src []byte, cfg *Config) ([]T, []byte) {
	claimed, src := Uint.Decode(src, cfg)
	n := clampLen(uint64(claimed), cfg.ceiling()/c.width, "sequence", cfg)

	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		var v T
		v, src = c.elem.Decode(src, cfg)
		out = append(out, v)
	}
	return out, src
}

// clampLen bounds a claimed length prefix to limit.
func clampLen(claimed uint64, limit int, kind string, cfg *Config) int {
	if claimed > uint64(limit) {
		cfg.hooks().LengthClamped(kind, claimed, limit)
		return limit
	}
	return int(claimed)
}

// widthOf is the in-memory size of t, at least 1 so zero-size types still
// divide the ceiling.
func widthOf(t reflect.Type) int {
	if w := int(t.Size()); w > 0 {
		return w
	}
	return 1
}
