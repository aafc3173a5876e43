package codec

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/arbitrary"
)

// ErrTrailingBytes is returned by Arbitrary.Decode when the input holds more
// than one encoded value.
var ErrTrailingBytes = errors.New("codec: trailing bytes after value")

// Arbitrary adapts an arbitrary.Codec to Codec. Encode never fails. Decode is
// stricter than the protocol itself: the whole input must be consumed.
// Config bounds the decode; nil selects the protocol defaults.
type Arbitrary[V any] struct {
	C      arbitrary.Codec[V]
	Config *arbitrary.Config
}

var _ Codec[int] = Arbitrary[int]{}

func (a Arbitrary[V]) Encode(v V) ([]byte, error) {
	return arbitrary.Encode(a.C, v), nil
}

func (a Arbitrary[V]) Decode(b []byte) (V, error) {
	v, rest := arbitrary.DecodeWith(a.C, b, a.Config)
	if len(rest) != 0 {
		var zero V
		return zero, fmt.Errorf("%w: %d of %d bytes unread", ErrTrailingBytes, len(rest), len(b))
	}
	return v, nil
}
