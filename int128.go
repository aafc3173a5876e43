package arbitrary

import (
	"math/big"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer. The field order matches the
// little-endian wire layout: Lo is written first.
type Uint128 struct {
	Lo, Hi uint64
}

// Int128 is a two's complement signed 128-bit integer.
type Int128 struct {
	Lo uint64
	Hi int64
}

func Uint128From64(v uint64) Uint128 { return Uint128{Lo: v} }

func Int128From64(v int64) Int128 {
	return Int128{Lo: uint64(v), Hi: v >> 63}
}

// Add returns u+v, wrapping on overflow.
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Lo: lo, Hi: hi}
}

// Add returns i+v, wrapping on overflow.
func (i Int128) Add(v Int128) Int128 {
	lo, carry := bits.Add64(i.Lo, v.Lo, 0)
	hi, _ := bits.Add64(uint64(i.Hi), uint64(v.Hi), carry)
	return Int128{Lo: lo, Hi: int64(hi)}
}

func (u Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

func (i Int128) Big() *big.Int {
	b := big.NewInt(i.Hi)
	b.Lsh(b, 64)
	return b.Add(b, new(big.Int).SetUint64(i.Lo))
}

func (u Uint128) String() string { return u.Big().String() }
func (i Int128) String() string  { return i.Big().String() }

var (
	Uint128Codec Codec[Uint128] = fixed[Uint128]{16,
		func(b []byte, v Uint128) []byte { return le.AppendUint64(le.AppendUint64(b, v.Lo), v.Hi) },
		func(b []byte) Uint128 { return Uint128{Lo: le.Uint64(b), Hi: le.Uint64(b[8:])} }}
	Int128Codec Codec[Int128] = fixed[Int128]{16,
		func(b []byte, v Int128) []byte { return le.AppendUint64(le.AppendUint64(b, v.Lo), uint64(v.Hi)) },
		func(b []byte) Int128 { return Int128{Lo: le.Uint64(b), Hi: int64(le.Uint64(b[8:]))} }}
)
