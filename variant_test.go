package arbitrary

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOptionRoundTrip(t *testing.T) {
	c := OptionOf(Uint64)
	roundTrip(t, c, None[uint64]())
	roundTrip(t, c, Some[uint64](100))
	roundTrip(t, c, Some[uint64](math.MaxUint64))

	if b := Encode(c, None[uint64]()); !bytes.Equal(b, []byte{0x00}) {
		t.Fatalf("None encodes as %x", b)
	}
	if b := Encode(c, Some[uint64](1)); b[0] != 0xFF || len(b) != 9 {
		t.Fatalf("Some encodes as %x", b)
	}
}

func TestOptionAnyNonZeroTagIsPresent(t *testing.T) {
	c := OptionOf(Uint8)
	got, rest := Decode(c, []byte{0x01, 0x2A, 0x07})
	if !got.Valid || got.Value != 0x2A {
		t.Fatalf("tag 0x01: got %+v", got)
	}
	if !bytes.Equal(rest, []byte{0x07}) {
		t.Fatalf("rest %x", rest)
	}

	// An absent option consumes only its tag.
	got, rest = Decode(c, []byte{0x00, 0x2A})
	if got.Valid || !bytes.Equal(rest, []byte{0x2A}) {
		t.Fatalf("tag 0x00: got %+v rest %x", got, rest)
	}

	// Empty input reads tag 0 => absent.
	if got := DecodeOnly(c, nil); got.Valid {
		t.Fatalf("empty input decoded as present")
	}
}

func TestResultRoundTrip(t *testing.T) {
	c := ResultOf(OptionOf(Uint64), String)
	roundTrip(t, c, Ok[Option[uint64], string](None[uint64]()))
	roundTrip(t, c, Ok[Option[uint64], string](Some[uint64](7)))
	roundTrip(t, c, Err[Option[uint64]]("boom"))

	c2 := ResultOf(OptionOf(Uint64), Uint64)
	roundTrip(t, c2, Err[Option[uint64]](uint64(1)))
}

func TestResultTagRules(t *testing.T) {
	c := ResultOf(Uint8, Bool)

	if b := Encode(c, Err[uint8](true)); !bytes.Equal(b, []byte{0x00, 0xFF}) {
		t.Fatalf("Err(true) encodes as %x", b)
	}
	if b := Encode(c, Ok[uint8, bool](5)); !bytes.Equal(b, []byte{0xFF, 0x05}) {
		t.Fatalf("Ok(5) encodes as %x", b)
	}

	// Both branches always consume a payload; 0x01 selects Ok.
	got, rest := Decode(c, []byte{0x01, 0x09, 0xAB})
	if !got.OK || got.Value != 9 || !bytes.Equal(rest, []byte{0xAB}) {
		t.Fatalf("tag 0x01: got %+v rest %x", got, rest)
	}
	got, rest = Decode(c, []byte{0x00, 0x00, 0xAB})
	if got.OK || got.Failure || !bytes.Equal(rest, []byte{0xAB}) {
		t.Fatalf("tag 0x00: got %+v rest %x", got, rest)
	}
}

func TestTupleRoundTrip(t *testing.T) {
	if b := Encode(TupleOf0(), Tuple0{}); len(b) != 0 {
		t.Fatalf("unit encodes as %x", b)
	}
	roundTrip(t, TupleOf0(), Tuple0{})
	roundTrip(t, TupleOf1(Uint64), Tuple1[uint64]{V0: 1})
	roundTrip(t, TupleOf2(Bool, Bool), Tuple2[bool, bool]{V0: true, V1: false})
	roundTrip(t, TupleOf3(Bool, Bool, Float64), Tuple3[bool, bool, float64]{V0: true, V1: false, V2: 1.0})
	roundTrip(t, TupleOf4(Int8, String, Char, OptionOf(Int32)),
		Tuple4[int8, string, rune, Option[int32]]{V0: -3, V1: "quattro", V2: 'q', V3: Some[int32](4)})

	c5 := TupleOf5(Uint8, Uint16, Uint32, Slice(Uint64), ResultOf(String, Int64))
	v5 := Tuple5[uint8, uint16, uint32, []uint64, Result[string, int64]]{
		V0: 1, V1: 2, V2: 3, V3: []uint64{4, 5}, V4: Ok[string, int64]("six"),
	}
	if diff := cmp.Diff(v5, DecodeOnly(c5, Encode(c5, v5))); diff != "" {
		t.Fatalf("tuple5 mismatch (-want +got):\n%s", diff)
	}
}

func TestTupleIsPositionalConcatenation(t *testing.T) {
	got := Encode(TupleOf3(Uint8, Uint16, Bool), Tuple3[uint8, uint16, bool]{V0: 1, V1: 2, V2: true})
	want := []byte{0x01, 0x02, 0x00, 0xFF}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x want %x", got, want)
	}
}
