package arbitrary

// Field binds one member of the aggregate S to the codec of its type.
// Fields are built with FieldOf and combined with Product.
type Field[S any] interface {
	Name() string
	appendField(dst []byte, s *S) []byte
	decodeField(src []byte, s *S, cfg *Config) []byte
}

type field[S, F any] struct {
	name  string
	get   func(*S) *F
	codec Codec[F]
}

// FieldOf describes the member of S that get points at. get must return a
// pointer into its argument, e.g. func(u *User) *string { return &u.Name }.
func FieldOf[S, F any](name string, get func(*S) *F, c Codec[F]) Field[S] {
	return field[S, F]{name: name, get: get, codec: c}
}

func (f field[S, F]) Name() string { return f.name }

func (f field[S, F]) appendField(dst []byte, s *S) []byte {
	return f.codec.Append(dst, *f.get(s))
}

func (f field[S, F]) decodeField(src []byte, s *S, cfg *Config) []byte {
	v, rest := f.codec.Decode(src, cfg)
	*f.get(s) = v
	return rest
}

type productCodec[S any] struct {
	fields []Field[S]
}

// Product returns the codec of a product type S from its ordered field list.
// The encoding is the concatenation of the field encodings in the given order
// and decode consumes them in the same order, so the order is part of the
// format. With no fields the encoding is empty.
//
// Product is what generated code targets:
//
//	var userCodec = arbitrary.Product(
//	    arbitrary.FieldOf("id", func(u *User) *uint64 { return &u.ID }, arbitrary.Uint64),
//	    arbitrary.FieldOf("name", func(u *User) *string { return &u.Name }, arbitrary.String),
//	)
func Product[S any](fields ...Field[S]) Codec[S] {
	return productCodec[S]{fields: append([]Field[S](nil), fields...)}
}

func (c productCodec[S]) Append(dst []byte, s S) []byte {
	for _, f := range c.fields {
		dst = f.appendField(dst, &s)
	}
	return dst
}

func (c productCodec[S]) Decode(src []byte, cfg *Config) (S, []byte) {
	var s S
	for _, f := range c.fields {
		src = f.decodeField(src, &s, cfg)
	}
	return s, src
}

// FieldNames reports the field names of a codec built by Product, in encoding
// order. It returns nil for any other codec.
func FieldNames[S any](c Codec[S]) []string {
	p, ok := c.(productCodec[S])
	if !ok {
		return nil
	}
	names := make([]string, len(p.fields))
	for i, f := range p.fields {
		names[i] = f.Name()
	}
	return names
}
