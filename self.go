package arbitrary

// Marshaler is implemented by types that encode themselves, typically with
// methods emitted by a code generator from the type's field list.
type Marshaler interface {
	AppendArbitrary(dst []byte) []byte
}

// Unmarshaler is implemented by pointers to types that decode themselves.
// DecodeArbitrary overwrites the receiver from a prefix of src and returns
// the unconsumed suffix. It must be total, like Codec.Decode.
type Unmarshaler interface {
	DecodeArbitrary(src []byte, cfg *Config) []byte
}

type selfCodec[V Marshaler, P interface {
	*V
	Unmarshaler
}] struct{}

// Self returns the codec of a type that implements the protocol itself:
// V must implement Marshaler and *V Unmarshaler.
//
//	c := arbitrary.Self[Point]()
func Self[V Marshaler, P interface {
	*V
	Unmarshaler
}]() Codec[V] {
	return selfCodec[V, P]{}
}

func (selfCodec[V, P]) Append(dst []byte, v V) []byte { return v.AppendArbitrary(dst) }

func (selfCodec[V, P]) Decode(src []byte, cfg *Config) (V, []byte) {
	var v V
	rest := P(&v).DecodeArbitrary(src, cfg)
	return v, rest
}
