package arbitrary

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSliceRoundTrip(t *testing.T) {
	digits := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 0}

	u8 := make([]uint8, len(digits))
	i64 := make([]int64, len(digits))
	f32 := make([]float32, len(digits))
	for i, d := range digits {
		u8[i], i64[i], f32[i] = uint8(d), int64(d), float32(d)
	}

	if got := DecodeOnly(Slice(Uint8), Encode(Slice(Uint8), u8)); !bytes.Equal(got, u8) {
		t.Fatalf("[]uint8: got %v want %v", got, u8)
	}
	if diff := cmp.Diff(i64, DecodeOnly(Slice(Int64), Encode(Slice(Int64), i64))); diff != "" {
		t.Fatalf("[]int64 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(f32, DecodeOnly(Slice(Float32), Encode(Slice(Float32), f32))); diff != "" {
		t.Fatalf("[]float32 mismatch (-want +got):\n%s", diff)
	}
}

func TestSliceLayout(t *testing.T) {
	got := Encode(Slice(Uint16), []uint16{0x0102, 0x0304})
	want := Encode(Uint, 2)
	want = append(want, 0x02, 0x01, 0x04, 0x03)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x want %x", got, want)
	}
}

func TestEmptySliceDecodesNonNil(t *testing.T) {
	got := DecodeOnly(Slice(Uint32), Encode(Slice(Uint32), nil))
	if got == nil || len(got) != 0 {
		t.Fatalf("got %#v want empty non-nil slice", got)
	}
}

func TestNestedSlicesThreadRemainder(t *testing.T) {
	two := [][]int64{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 0}}
	c2 := Slice(Slice(Int64))
	if diff := cmp.Diff(two, DecodeOnly(c2, Encode(c2, two))); diff != "" {
		t.Fatalf("[][]int64 mismatch (-want +got):\n%s", diff)
	}

	three := [][][]int64{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}, {{9, 0}}}
	c3 := Slice(Slice(Slice(Int64)))
	b := Encode(c3, three)
	got, rest := Decode(c3, append(b, 0xEE))
	if diff := cmp.Diff(three, got); diff != "" {
		t.Fatalf("[][][]int64 mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Equal(rest, []byte{0xEE}) {
		t.Fatalf("remainder after nested decode: %x", rest)
	}
}

func TestSliceClampScalesWithElementWidth(t *testing.T) {
	cfg := &Config{Ceiling: 64}

	// 64 bytes of uint64 storage => at most 8 elements.
	vals := make([]uint64, 10)
	for i := range vals {
		vals[i] = uint64(i + 1)
	}
	b := Encode(Slice(Uint64), vals)
	got, rest := DecodeWith(Slice(Uint64), b, cfg)
	if len(got) != 8 {
		t.Fatalf("clamped len: got %d want 8", len(got))
	}
	if diff := cmp.Diff(vals[:8], got); diff != "" {
		t.Fatalf("clamped prefix mismatch (-want +got):\n%s", diff)
	}
	// The two unread elements stay in the remainder.
	if len(rest) != 16 {
		t.Fatalf("remainder: got %d bytes want 16", len(rest))
	}

	// The same budget yields 64 one-byte elements.
	bytesIn := make([]uint8, 100)
	if got := DecodeOnlyWith(Slice(Uint8), Encode(Slice(Uint8), bytesIn), cfg); len(got) != 64 {
		t.Fatalf("clamped []uint8 len: got %d want 64", len(got))
	}

	// Wider than the budget: nothing fits.
	if got := DecodeOnlyWith(Slice(Uint128Codec), Encode(Slice(Uint128Codec), make([]Uint128, 5)), &Config{Ceiling: 8}); len(got) != 0 {
		t.Fatalf("u128 with 8-byte budget: got %d elements", len(got))
	}
}

func TestHugeLengthPrefixIsBounded(t *testing.T) {
	// A claimed count of 2^64-1 with no payload behind it.
	hostile := Encode(Uint, uint(math.MaxUint))

	got, rest := Decode(Slice(Uint64), hostile)
	if want := DefaultCeiling / 8; len(got) != want {
		t.Fatalf("len: got %d want %d", len(got), want)
	}
	if cap(got)*8 > DefaultCeiling {
		t.Fatalf("allocated %d bytes, ceiling is %d", cap(got)*8, DefaultCeiling)
	}
	if len(rest) != 0 {
		t.Fatalf("rest: %x", rest)
	}

	small := &Config{Ceiling: 1024}
	s := DecodeOnlyWith(String, hostile, small)
	if len(s) != 1024 {
		t.Fatalf("text len: got %d want 1024", len(s))
	}
}

func TestZeroSizeElements(t *testing.T) {
	c := Slice(TupleOf0())
	b := Encode(c, make([]Tuple0, 3))
	got := DecodeOnlyWith(c, b, &Config{Ceiling: 2})
	if len(got) != 2 {
		t.Fatalf("zero-size elements: got %d want 2", len(got))
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"RAVIOLI RAVIOLI GIVE ME THE FORMULORI",
		"CARDAMOMO",
		"caffè, crème brûlée", // Latin-1 survives
	} {
		roundTrip(t, String, s)
	}
}

func TestTextCountsCharacters(t *testing.T) {
	b := Encode(String, "brûlée")
	if n := DecodeOnly(Uint, b); n != 6 {
		t.Fatalf("prefix: got %d want 6 characters", n)
	}
	if len(b) != platformWidth+6 {
		t.Fatalf("encoded len: got %d", len(b))
	}
}

func TestTextOutsideLatin1IsTruncated(t *testing.T) {
	got := DecodeOnly(String, Encode(String, "a€"))
	if got != "a¬" { // '€' is U+20AC
		t.Fatalf("got %q", got)
	}
}

func TestTextClampIsFlat(t *testing.T) {
	b := Encode(String, "abcdefghij")
	got, rest := DecodeWith(String, b, &Config{Ceiling: 4})
	if got != "abcd" {
		t.Fatalf("got %q want abcd", got)
	}
	if string(rest) != "efghij" {
		t.Fatalf("rest %q", rest)
	}
}
