package arbitrary

// Tuple0 through Tuple5 are positional aggregates. Each encodes as the
// concatenation of its elements, V0 first; Tuple0 encodes as nothing.
type Tuple0 struct{}

type Tuple1[A any] struct {
	V0 A
}

type Tuple2[A, B any] struct {
	V0 A
	V1 B
}

type Tuple3[A, B, C any] struct {
	V0 A
	V1 B
	V2 C
}

type Tuple4[A, B, C, D any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
}

type Tuple5[A, B, C, D, E any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
	V4 E
}

func TupleOf0() Codec[Tuple0] { return Product[Tuple0]() }

func TupleOf1[A any](a Codec[A]) Codec[Tuple1[A]] {
	return Product(
		FieldOf("0", func(t *Tuple1[A]) *A { return &t.V0 }, a),
	)
}

func TupleOf2[A, B any](a Codec[A], b Codec[B]) Codec[Tuple2[A, B]] {
	return Product(
		FieldOf("0", func(t *Tuple2[A, B]) *A { return &t.V0 }, a),
		FieldOf("1", func(t *Tuple2[A, B]) *B { return &t.V1 }, b),
	)
}

func TupleOf3[A, B, C any](a Codec[A], b Codec[B], c Codec[C]) Codec[Tuple3[A, B, C]] {
	return Product(
		FieldOf("0", func(t *Tuple3[A, B, C]) *A { return &t.V0 }, a),
		FieldOf("1", func(t *Tuple3[A, B, C]) *B { return &t.V1 }, b),
		FieldOf("2", func(t *Tuple3[A, B, C]) *C { return &t.V2 }, c),
	)
}

func TupleOf4[A, B, C, D any](a Codec[A], b Codec[B], c Codec[C], d Codec[D]) Codec[Tuple4[A, B, C, D]] {
	return Product(
		FieldOf("0", func(t *Tuple4[A, B, C, D]) *A { return &t.V0 }, a),
		FieldOf("1", func(t *Tuple4[A, B, C, D]) *B { return &t.V1 }, b),
		FieldOf("2", func(t *Tuple4[A, B, C, D]) *C { return &t.V2 }, c),
		FieldOf("3", func(t *Tuple4[A, B, C, D]) *D { return &t.V3 }, d),
	)
}

func TupleOf5[A, B, C, D, E any](a Codec[A], b Codec[B], c Codec[C], d Codec[D], e Codec[E]) Codec[Tuple5[A, B, C, D, E]] {
	return Product(
		FieldOf("0", func(t *Tuple5[A, B, C, D, E]) *A { return &t.V0 }, a),
		FieldOf("1", func(t *Tuple5[A, B, C, D, E]) *B { return &t.V1 }, b),
		FieldOf("2", func(t *Tuple5[A, B, C, D, E]) *C { return &t.V2 }, c),
		FieldOf("3", func(t *Tuple5[A, B, C, D, E]) *D { return &t.V3 }, d),
		FieldOf("4", func(t *Tuple5[A, B, C, D, E]) *E { return &t.V4 }, e),
	)
}
