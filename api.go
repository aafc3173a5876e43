package arbitrary

// Codec is the encode/decode pair of one participating type V.
//
// Append is total: it appends the encoding of v to dst and returns the
// extended slice. Decode is total as well: it materializes a V from a prefix
// of src and returns the unconsumed suffix. Insufficient input degrades to
// zero values instead of failing, so a successful Decode says nothing about
// whether src was well formed.
//
// The returned suffix aliases src. Decoded values never do.
type Codec[V any] interface {
	Append(dst []byte, v V) []byte
	Decode(src []byte, cfg *Config) (V, []byte)
}

// Config bounds a decode. It is passed unchanged to every nested decode, so a
// caller sets it once at the entry point. A nil *Config is valid and selects
// the defaults.
type Config struct {
	// Ceiling is the number of bytes of element storage a single sequence
	// decode may allocate, and the number of characters a single text decode
	// may materialize. 0 => DefaultCeiling.
	Ceiling int

	// Hooks observes silent degradation. nil => NopHooks.
	Hooks Hooks
}

// Encode returns the encoding of v.
func Encode[V any](c Codec[V], v V) []byte {
	return c.Append(nil, v)
}

// Decode materializes a V from a prefix of src using the default Config and
// returns the unconsumed suffix.
func Decode[V any](c Codec[V], src []byte) (V, []byte) {
	return c.Decode(src, nil)
}

// DecodeWith is Decode with an explicit Config, e.g. a lower Ceiling for
// input from a less trusted source.
func DecodeWith[V any](c Codec[V], src []byte, cfg *Config) (V, []byte) {
	return c.Decode(src, cfg)
}

// DecodeOnly is Decode without the suffix.
func DecodeOnly[V any](c Codec[V], src []byte) V {
	v, _ := c.Decode(src, nil)
	return v
}

// DecodeOnlyWith is DecodeWith without the suffix.
func DecodeOnlyWith[V any](c Codec[V], src []byte, cfg *Config) V {
	v, _ := c.Decode(src, cfg)
	return v
}

func (c *Config) ceiling() int {
	if c == nil || c.Ceiling <= 0 {
		return DefaultCeiling
	}
	return c.Ceiling
}

func (c *Config) hooks() Hooks {
	if c == nil {
		return NopHooks{}
	}
	return coalesce[Hooks](c.Hooks, NopHooks{})
}
