package arbitrary

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// platformWidth is the byte width of uint and int, and of every length prefix.
const platformWidth = bits.UintSize / 8

// fixed is the codec of an N-byte little-endian scalar.
type fixed[V any] struct {
	width int
	put   func(dst []byte, v V) []byte
	get   func(b []byte) V
}

func (f fixed[V]) Append(dst []byte, v V) []byte { return f.put(dst, v) }

func (f fixed[V]) Decode(src []byte, cfg *Config) (V, []byte) {
	if len(src) < f.width {
		cfg.hooks().ScalarTruncated(f.width, len(src))
		var zero V
		return zero, src
	}
	return f.get(src[:f.width]), src[f.width:]
}

var le = binary.LittleEndian

var (
	Uint8 Codec[uint8] = fixed[uint8]{1,
		func(b []byte, v uint8) []byte { return append(b, v) },
		func(b []byte) uint8 { return b[0] }}
	Uint16 Codec[uint16] = fixed[uint16]{2, le.AppendUint16, le.Uint16}
	Uint32 Codec[uint32] = fixed[uint32]{4, le.AppendUint32, le.Uint32}
	Uint64 Codec[uint64] = fixed[uint64]{8, le.AppendUint64, le.Uint64}
	Uint   Codec[uint]   = fixed[uint]{platformWidth,
		func(b []byte, v uint) []byte { return putUintN(b, uint64(v), platformWidth) },
		func(b []byte) uint { return uint(uintN(b, platformWidth)) }}

	Int8 Codec[int8] = fixed[int8]{1,
		func(b []byte, v int8) []byte { return append(b, byte(v)) },
		func(b []byte) int8 { return int8(b[0]) }}
	Int16 Codec[int16] = fixed[int16]{2,
		func(b []byte, v int16) []byte { return le.AppendUint16(b, uint16(v)) },
		func(b []byte) int16 { return int16(le.Uint16(b)) }}
	Int32 Codec[int32] = fixed[int32]{4,
		func(b []byte, v int32) []byte { return le.AppendUint32(b, uint32(v)) },
		func(b []byte) int32 { return int32(le.Uint32(b)) }}
	Int64 Codec[int64] = fixed[int64]{8,
		func(b []byte, v int64) []byte { return le.AppendUint64(b, uint64(v)) },
		func(b []byte) int64 { return int64(le.Uint64(b)) }}
	Int Codec[int] = fixed[int]{platformWidth,
		func(b []byte, v int) []byte { return putUintN(b, uint64(v), platformWidth) },
		func(b []byte) int { return int(intN(b, platformWidth)) }}

	Float32 Codec[float32] = fixed[float32]{4,
		func(b []byte, v float32) []byte { return le.AppendUint32(b, math.Float32bits(v)) },
		func(b []byte) float32 { return math.Float32frombits(le.Uint32(b)) }}
	Float64 Codec[float64] = fixed[float64]{8,
		func(b []byte, v float64) []byte { return le.AppendUint64(b, math.Float64bits(v)) },
		func(b []byte) float64 { return math.Float64frombits(le.Uint64(b)) }}

	// Bool writes 0xFF for true and 0x00 for false. Only 0xFF decodes as true.
	Bool Codec[bool] = fixed[bool]{1,
		func(b []byte, v bool) []byte {
			if v {
				return append(b, 0xFF)
			}
			return append(b, 0x00)
		},
		func(b []byte) bool { return b[0] == 0xFF }}

	// Char writes a rune as a single byte. Only code points 0-255 survive a
	// round trip; wider runes are truncated to their low byte.
	Char Codec[rune] = fixed[rune]{1,
		func(b []byte, v rune) []byte { return append(b, byte(v)) },
		func(b []byte) rune { return rune(b[0]) }}
)

// putUintN appends the low n bytes of x, little-endian.
func putUintN(dst []byte, x uint64, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, byte(x>>(8*i)))
	}
	return dst
}

// uintN reads an n-byte little-endian unsigned integer; len(b) >= n.
func uintN(b []byte, n int) uint64 {
	var x uint64
	for i := 0; i < n; i++ {
		x |= uint64(b[i]) << (8 * i)
	}
	return x
}

// intN is uintN with sign extension from bit 8n-1.
func intN(b []byte, n int) int64 {
	shift := 64 - 8*n
	return int64(uintN(b, n)<<shift) >> shift
}
