package arbitrary

import "reflect"

const (
	tagAbsent  byte = 0x00
	tagPresent byte = 0xFF
)

// Option holds a value that may be absent. The zero Option is absent.
type Option[T any] struct {
	Value T
	Valid bool
}

func Some[T any](v T) Option[T] { return Option[T]{Value: v, Valid: true} }
func None[T any]() Option[T]    { return Option[T]{} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.Value, o.Valid }

// optionElem lets Derive recognize Option[T] for any T.
func (Option[T]) optionElem() reflect.Type { return reflect.TypeFor[T]() }

type optionCodec[T any] struct{ elem Codec[T] }

// OptionOf returns the codec of Option[T]: a 0x00 tag alone for absent, a
// 0xFF tag followed by the payload for present. On decode only 0x00 means
// absent; every other tag byte is read as present.
func OptionOf[T any](elem Codec[T]) Codec[Option[T]] {
	return optionCodec[T]{elem: elem}
}

func (c optionCodec[T]) Append(dst []byte, o Option[T]) []byte {
	if !o.Valid {
		return append(dst, tagAbsent)
	}
	return c.elem.Append(append(dst, tagPresent), o.Value)
}

func (c optionCodec[T]) Decode(src []byte, cfg *Config) (Option[T], []byte) {
	tag, src := Uint8.Decode(src, cfg)
	if tag == tagAbsent {
		return Option[T]{}, src
	}
	v, src := c.elem.Decode(src, cfg)
	return Some(v), src
}
