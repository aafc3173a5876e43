package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version byte = 1

	hdrLen = 4 + 1 + 1 + 1 + 8 + 4
)

// Kind tells seed entries from the per-namespace ID index.
type Kind byte

const (
	KindSeed  Kind = 1
	KindIndex Kind = 2
)

// Flags carry the payload compression algorithm in the low two bits.
// Other bits are reserved and must be zero.
const (
	FlagNone byte = 0
	FlagZstd byte = 1
	FlagLZ4  byte = 2

	flagMask byte = 0x03
)

var (
	ErrCorrupt = errors.New("arbitrary: corrupt corpus entry")
	magic4     = [...]byte{'A', 'R', 'B', 'S'}
)

type Entry struct {
	Kind    Kind
	Flags   byte
	Gen     uint64
	Payload []byte
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// EncodeEntry frames e as
//
//	magic(4) | ver(1) | kind(1) | flags(1) | gen(u64 be) | vlen(u32 be) | payload(vlen)
func EncodeEntry(e Entry) []byte {
	buf := make([]byte, hdrLen, hdrLen+len(e.Payload))
	copy(buf, magic4[:])
	buf[4] = version
	buf[5] = byte(e.Kind)
	buf[6] = e.Flags
	binary.BigEndian.PutUint64(buf[7:15], e.Gen)
	binary.BigEndian.PutUint32(buf[15:19], uint32(len(e.Payload)))
	return append(buf, e.Payload...)
}

// DecodeEntry validates the frame and returns it. Payload aliases b.
// Unknown kinds, reserved flag bits, short payloads and trailing bytes are
// all ErrCorrupt.
func DecodeEntry(b []byte) (Entry, error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return Entry{}, ErrCorrupt
	}
	kind := Kind(b[5])
	if kind != KindSeed && kind != KindIndex {
		return Entry{}, ErrCorrupt
	}
	flags := b[6]
	if flags&^flagMask != 0 || flags == flagMask {
		return Entry{}, ErrCorrupt
	}

	gen := binary.BigEndian.Uint64(b[7:15])
	vlen := uint64(binary.BigEndian.Uint32(b[15:19]))
	if vlen != uint64(len(b)-hdrLen) {
		return Entry{}, ErrCorrupt
	}
	return Entry{Kind: kind, Flags: flags, Gen: gen, Payload: b[hdrLen:]}, nil
}
