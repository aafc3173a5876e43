package arbitrary

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type nested struct {
	Nested Option[uint64]
	Name   string
}

type record struct {
	Nested nested
	Result Result[float64, bool]
	Array  []Int128
}

// nestedCodec and recordCodec are what a generator emits for the two types.
var (
	nestedCodec = Product(
		FieldOf("nested", func(n *nested) *Option[uint64] { return &n.Nested }, OptionOf(Uint64)),
		FieldOf("name", func(n *nested) *string { return &n.Name }, String),
	)
	recordCodec = Product(
		FieldOf("nested", func(r *record) *nested { return &r.Nested }, nestedCodec),
		FieldOf("result", func(r *record) *Result[float64, bool] { return &r.Result }, ResultOf(Float64, Bool)),
		FieldOf("array", func(r *record) *[]Int128 { return &r.Array }, Slice(Int128Codec)),
	)
)

func cardamomo() record {
	return record{
		Nested: nested{
			Nested: Some[uint64](1<<64 - 1),
			Name:   "CARDAMOMO",
		},
		Result: Ok[float64, bool](69.420),
		Array: []Int128{
			Int128From64(1),
			Int128From64(2),
			Int128From64(3),
			{Lo: 2001, Hi: 1}, // 18446744073709553617
		},
	}
}

func TestProductRoundTrip(t *testing.T) {
	in := cardamomo()
	if got := in.Array[3].String(); got != "18446744073709553617" {
		t.Fatalf("fixture: %s", got)
	}
	b := Encode(recordCodec, in)
	got, rest := Decode(recordCodec, b)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("product mismatch (-want +got):\n%s", diff)
	}
	if len(rest) != 0 {
		t.Fatalf("rest: %x", rest)
	}
}

func TestProductIsFieldConcatenation(t *testing.T) {
	in := cardamomo()
	var want []byte
	want = OptionOf(Uint64).Append(want, in.Nested.Nested)
	want = String.Append(want, in.Nested.Name)
	want = ResultOf(Float64, Bool).Append(want, in.Result)
	want = Slice(Int128Codec).Append(want, in.Array)

	if got := Encode(recordCodec, in); !bytes.Equal(got, want) {
		t.Fatalf("got %x\nwant %x", got, want)
	}
}

func TestFieldNames(t *testing.T) {
	if diff := cmp.Diff([]string{"nested", "result", "array"}, FieldNames(recordCodec)); diff != "" {
		t.Fatalf("field names (-want +got):\n%s", diff)
	}
	if FieldNames(Uint8) != nil {
		t.Fatalf("scalar codec reported fields")
	}
}

func TestProductWithoutFieldsIsEmpty(t *testing.T) {
	type empty struct{}
	c := Product[empty]()
	if b := Encode(c, empty{}); len(b) != 0 {
		t.Fatalf("encoded %x", b)
	}
	if _, rest := Decode(c, []byte{1, 2}); len(rest) != 2 {
		t.Fatalf("empty product consumed input")
	}
}

// point implements the protocol itself, as generated methods would.
type point struct {
	X, Y int32
}

func (p point) AppendArbitrary(dst []byte) []byte {
	dst = Int32.Append(dst, p.X)
	return Int32.Append(dst, p.Y)
}

func (p *point) DecodeArbitrary(src []byte, cfg *Config) []byte {
	p.X, src = Int32.Decode(src, cfg)
	p.Y, src = Int32.Decode(src, cfg)
	return src
}

func TestSelfCodec(t *testing.T) {
	c := Self[point]()
	roundTrip(t, c, point{X: -1, Y: 42})

	pts := Slice(c)
	in := []point{{1, 2}, {3, 4}}
	if diff := cmp.Diff(in, DecodeOnly(pts, Encode(pts, in))); diff != "" {
		t.Fatalf("[]point mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveMatchesGeneratedProduct(t *testing.T) {
	c, err := Derive[record]()
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	in := cardamomo()
	b := Encode(c, in)
	if want := Encode(recordCodec, in); !bytes.Equal(b, want) {
		t.Fatalf("derived bytes differ from product bytes:\n got %x\nwant %x", b, want)
	}
	if diff := cmp.Diff(in, DecodeOnly(c, b)); diff != "" {
		t.Fatalf("derived mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveScalarsMatchScalarCodecs(t *testing.T) {
	if got, want := Encode(MustDerive[uint16](), 0xBEEF), Encode(Uint16, 0xBEEF); !bytes.Equal(got, want) {
		t.Fatalf("uint16: got %x want %x", got, want)
	}
	if got, want := Encode(MustDerive[int](), -7), Encode(Int, -7); !bytes.Equal(got, want) {
		t.Fatalf("int: got %x want %x", got, want)
	}
	if got, want := Encode(MustDerive[float32](), 1.5), Encode(Float32, 1.5); !bytes.Equal(got, want) {
		t.Fatalf("float32: got %x want %x", got, want)
	}
	if got := DecodeOnly(MustDerive[int16](), Encode(Int16, -300)); got != -300 {
		t.Fatalf("int16 sign extension: got %d", got)
	}
}

type shapes struct {
	Ptr      *uint32
	NilPtr   *string
	Fixed    [3]uint8
	Tuple    Tuple2[bool, string]
	Skipped  string `arbitrary:"-"`
	internal int
	Point    point
	Deep     [][]Option[int8]
}

func TestDeriveShapes(t *testing.T) {
	c := MustDerive[shapes]()
	n := uint32(77)
	in := shapes{
		Ptr:      &n,
		Fixed:    [3]uint8{7, 8, 9},
		Tuple:    Tuple2[bool, string]{V0: true, V1: "t"},
		Skipped:  "not encoded",
		internal: 5,
		Point:    point{X: 3, Y: 4},
		Deep:     [][]Option[int8]{{Some[int8](-1), None[int8]()}, {}},
	}
	got := DecodeOnly(c, Encode(c, in))

	want := in
	want.Skipped = ""
	want.internal = 0
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(shapes{})); diff != "" {
		t.Fatalf("shapes mismatch (-want +got):\n%s", diff)
	}

	// Pointer layout is Option layout; arrays carry no prefix.
	b := Encode(MustDerive[*uint32](), &n)
	if !bytes.Equal(b, Encode(OptionOf(Uint32), Some(n))) {
		t.Fatalf("pointer layout %x", b)
	}
	if b := Encode(MustDerive[[2]uint16](), [2]uint16{1, 2}); !bytes.Equal(b, []byte{1, 0, 2, 0}) {
		t.Fatalf("array layout %x", b)
	}
}

type tree struct {
	Label    string
	Children []tree
	Parent   *tree
}

func TestDeriveRecursiveType(t *testing.T) {
	c := MustDerive[tree]()
	in := tree{
		Label: "root",
		Children: []tree{
			{Label: "a", Children: []tree{}},
			{Label: "b", Children: []tree{{Label: "b1", Children: []tree{}}}},
		},
	}
	if diff := cmp.Diff(in, DecodeOnly(c, Encode(c, in))); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveUnsupported(t *testing.T) {
	type withMap struct {
		OK   uint8
		Meta map[string]string
	}
	type outer struct {
		Items []withMap
	}

	_, err := Derive[outer]()
	var ute *UnsupportedTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
	if ute.Path != "arbitrary.outer.Items[].Meta" {
		t.Fatalf("path: %q", ute.Path)
	}

	for _, fn := range []func() error{
		func() error { _, err := Derive[chan int](); return err },
		func() error { _, err := Derive[func()](); return err },
		func() error { _, err := Derive[any](); return err },
		func() error { _, err := Derive[complex128](); return err },
		func() error { _, err := Derive[Option[map[int]int]](); return err },
	} {
		if err := fn(); err == nil {
			t.Fatalf("expected error")
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustDerive did not panic")
		}
	}()
	MustDerive[map[string]int]()
}

type labelledOption struct {
	Option[int32]
	Label string
}

type labelledResult struct {
	Result[uint16, string]
	Label string
	Count uint8
}

func TestDeriveEmbeddedVariantsArePlainProducts(t *testing.T) {
	oc, err := Derive[labelledOption]()
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	for _, in := range []labelledOption{
		{Option: Some[int32](-9), Label: "some"},
		{Option: None[int32](), Label: "none"},
	} {
		b := Encode(oc, in)
		want := String.Append(OptionOf(Int32).Append(nil, in.Option), in.Label)
		if !bytes.Equal(b, want) {
			t.Fatalf("got %x want %x", b, want)
		}
		if diff := cmp.Diff(in, DecodeOnly(oc, b)); diff != "" {
			t.Fatalf("option mismatch (-want +got):\n%s", diff)
		}
	}

	rc, err := Derive[labelledResult]()
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	for _, in := range []labelledResult{
		{Result: Ok[uint16, string](7), Label: "ok", Count: 1},
		{Result: Err[uint16]("bad"), Label: "err", Count: 2},
	} {
		if diff := cmp.Diff(in, DecodeOnly(rc, Encode(rc, in))); diff != "" {
			t.Fatalf("result mismatch (-want +got):\n%s", diff)
		}
	}
}

type glyph struct {
	R rune
	B byte
}

func TestDeriveRuneIsInt32(t *testing.T) {
	c := MustDerive[glyph]()
	in := glyph{R: 'é', B: 'x'}
	b := Encode(c, in)
	if len(b) != 5 {
		t.Fatalf("derived rune field: got %d bytes (%x), want 4+1", len(b), b)
	}

	char := Product(
		FieldOf("r", func(g *glyph) *rune { return &g.R }, Char),
		FieldOf("b", func(g *glyph) *byte { return &g.B }, Uint8),
	)
	if b := Encode(char, in); len(b) != 2 {
		t.Fatalf("Char field: got %d bytes (%x), want 1+1", len(b), b)
	}
	if diff := cmp.Diff(in, DecodeOnly(char, Encode(char, in))); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
