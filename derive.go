package arbitrary

import (
	"math"
	"reflect"
	"strings"
	"sync"
)

// plan is the derived codec of one reflect.Type. dec always receives an
// addressable value holding the zero value of the type.
type plan struct {
	enc func(dst []byte, v reflect.Value) []byte
	dec func(src []byte, v reflect.Value, cfg *Config) []byte
}

var (
	marshalerType   = reflect.TypeFor[Marshaler]()
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
	optionShapeType = reflect.TypeFor[optionShape]()
	resultShapeType = reflect.TypeFor[resultShape]()
	pkgPath         = reflect.TypeFor[Config]().PkgPath()

	// plans caches completed plans by type; entries are immutable once stored.
	plans sync.Map
)

type optionShape interface{ optionElem() reflect.Type }

type resultShape interface {
	resultTypes() (reflect.Type, reflect.Type)
}

type derived[V any] struct{ p *plan }

// Derive builds the codec of V by walking its type with reflection. Structs
// encode their exported fields in declaration order, so a derived struct codec
// matches the Product codec a generator would emit for the same field list.
// Fields tagged `arbitrary:"-"` are skipped. Pointers encode like Option.
// Arrays encode their elements without a length prefix. Types implementing
// Marshaler and Unmarshaler are delegated to; like encoding/json, that
// includes methods promoted from an embedded field.
//
// rune is int32 in Go, so a derived rune field takes 4 bytes. Character
// fields that should use the 1-byte Char layout need a Product codec with
// FieldOf(..., Char).
//
// Derive returns *UnsupportedTypeError when V, or anything reachable from it,
// has no codec. Plans are cached, so deriving the same type twice is cheap.
func Derive[V any]() (Codec[V], error) {
	p, err := planFor(reflect.TypeFor[V]())
	if err != nil {
		return nil, err
	}
	return derived[V]{p: p}, nil
}

// MustDerive is like Derive but panics on error.
// Handy for package-level codec variables.
func MustDerive[V any]() Codec[V] {
	c, err := Derive[V]()
	if err != nil {
		panic(err)
	}
	return c
}

func (d derived[V]) Append(dst []byte, v V) []byte {
	return d.p.enc(dst, reflect.ValueOf(&v).Elem())
}

func (d derived[V]) Decode(src []byte, cfg *Config) (V, []byte) {
	var v V
	rest := d.p.dec(src, reflect.ValueOf(&v).Elem(), cfg)
	return v, rest
}

func planFor(t reflect.Type) (*plan, error) {
	if p, ok := plans.Load(t); ok {
		return p.(*plan), nil
	}
	b := builder{seen: make(map[reflect.Type]*plan)}
	p, err := b.build(t, t.String())
	if err != nil {
		return nil, err
	}
	for bt, bp := range b.seen {
		plans.LoadOrStore(bt, bp)
	}
	return p, nil
}

// builder derives the plans of one type graph. seen holds plans under
// construction so recursive types (e.g. a struct with a slice of itself)
// refer back to their own placeholder.
type builder struct {
	seen map[reflect.Type]*plan
}

func (b *builder) build(t reflect.Type, path string) (*plan, error) {
	if p, ok := b.seen[t]; ok {
		return p, nil
	}
	if p, ok := plans.Load(t); ok {
		return p.(*plan), nil
	}
	p := &plan{}
	b.seen[t] = p
	if err := b.fill(p, t, path); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) fill(p *plan, t reflect.Type, path string) error {
	switch {
	case t.Kind() != reflect.Pointer && t.Implements(marshalerType) && reflect.PointerTo(t).Implements(unmarshalerType):
		p.enc = func(dst []byte, v reflect.Value) []byte {
			return v.Interface().(Marshaler).AppendArbitrary(dst)
		}
		p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
			return v.Addr().Interface().(Unmarshaler).DecodeArbitrary(src, cfg)
		}
		return nil
	case isInstance(t, "Option[", 2) && t.Implements(optionShapeType):
		return b.option(p, t, path)
	case isInstance(t, "Result[", 3) && t.Implements(resultShapeType):
		return b.result(p, t, path)
	}

	switch t.Kind() {
	case reflect.Bool:
		p.enc = func(dst []byte, v reflect.Value) []byte { return Bool.Append(dst, v.Bool()) }
		p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
			x, rest := Bool.Decode(src, cfg)
			v.SetBool(x)
			return rest
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w := int(t.Size())
		p.enc = func(dst []byte, v reflect.Value) []byte { return putUintN(dst, uint64(v.Int()), w) }
		p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
			raw, rest, ok := take(src, w, cfg)
			if ok {
				v.SetInt(intN(raw, w))
			}
			return rest
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		w := int(t.Size())
		p.enc = func(dst []byte, v reflect.Value) []byte { return putUintN(dst, v.Uint(), w) }
		p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
			raw, rest, ok := take(src, w, cfg)
			if ok {
				v.SetUint(uintN(raw, w))
			}
			return rest
		}
	case reflect.Float32:
		p.enc = func(dst []byte, v reflect.Value) []byte {
			return le.AppendUint32(dst, math.Float32bits(float32(v.Float())))
		}
		p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
			raw, rest, ok := take(src, 4, cfg)
			if ok {
				v.SetFloat(float64(math.Float32frombits(le.Uint32(raw))))
			}
			return rest
		}
	case reflect.Float64:
		p.enc = func(dst []byte, v reflect.Value) []byte {
			return le.AppendUint64(dst, math.Float64bits(v.Float()))
		}
		p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
			raw, rest, ok := take(src, 8, cfg)
			if ok {
				v.SetFloat(math.Float64frombits(le.Uint64(raw)))
			}
			return rest
		}
	case reflect.String:
		p.enc = func(dst []byte, v reflect.Value) []byte { return String.Append(dst, v.String()) }
		p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
			s, rest := String.Decode(src, cfg)
			v.SetString(s)
			return rest
		}
	case reflect.Slice:
		return b.slice(p, t, path)
	case reflect.Array:
		return b.array(p, t, path)
	case reflect.Pointer:
		return b.pointer(p, t, path)
	case reflect.Struct:
		return b.structure(p, t, path)
	default:
		return &UnsupportedTypeError{Type: t, Path: path}
	}
	return nil
}

func (b *builder) slice(p *plan, t reflect.Type, path string) error {
	elem, err := b.build(t.Elem(), path+"[]")
	if err != nil {
		return err
	}
	width := widthOf(t.Elem())
	p.enc = func(dst []byte, v reflect.Value) []byte {
		n := v.Len()
		dst = Uint.Append(dst, uint(n))
		for i := 0; i < n; i++ {
			dst = elem.enc(dst, v.Index(i))
		}
		return dst
	}
	p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
		claimed, src := Uint.Decode(src, cfg)
		n := clampLen(uint64(claimed), cfg.ceiling()/width, "sequence", cfg)
		s := reflect.MakeSlice(t, n, n)
		for i := 0; i < n; i++ {
			src = elem.dec(src, s.Index(i), cfg)
		}
		v.Set(s)
		return src
	}
	return nil
}

func (b *builder) array(p *plan, t reflect.Type, path string) error {
	elem, err := b.build(t.Elem(), path+"[]")
	if err != nil {
		return err
	}
	n := t.Len()
	p.enc = func(dst []byte, v reflect.Value) []byte {
		for i := 0; i < n; i++ {
			dst = elem.enc(dst, v.Index(i))
		}
		return dst
	}
	p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
		for i := 0; i < n; i++ {
			src = elem.dec(src, v.Index(i), cfg)
		}
		return src
	}
	return nil
}

func (b *builder) pointer(p *plan, t reflect.Type, path string) error {
	elem, err := b.build(t.Elem(), path)
	if err != nil {
		return err
	}
	p.enc = func(dst []byte, v reflect.Value) []byte {
		if v.IsNil() {
			return append(dst, tagAbsent)
		}
		return elem.enc(append(dst, tagPresent), v.Elem())
	}
	p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
		tag, src := Uint8.Decode(src, cfg)
		if tag == tagAbsent {
			return src
		}
		nv := reflect.New(t.Elem())
		src = elem.dec(src, nv.Elem(), cfg)
		v.Set(nv)
		return src
	}
	return nil
}

func (b *builder) structure(p *plan, t reflect.Type, path string) error {
	type member struct {
		index int
		plan  *plan
	}
	var members []member
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("arbitrary") == "-" {
			continue
		}
		fp, err := b.build(f.Type, path+"."+f.Name)
		if err != nil {
			return err
		}
		members = append(members, member{index: i, plan: fp})
	}
	p.enc = func(dst []byte, v reflect.Value) []byte {
		for _, m := range members {
			dst = m.plan.enc(dst, v.Field(m.index))
		}
		return dst
	}
	p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
		for _, m := range members {
			src = m.plan.dec(src, v.Field(m.index), cfg)
		}
		return src
	}
	return nil
}

// isInstance reports whether t is an instantiation of this package's generic
// struct named by prefix. Structs embedding one get its methods promoted
// but are plain products.
func isInstance(t reflect.Type, prefix string, fields int) bool {
	return t.Kind() == reflect.Struct &&
		t.PkgPath() == pkgPath &&
		strings.HasPrefix(t.Name(), prefix) &&
		t.NumField() == fields
}

// option derives Option[T]: field 0 is Value, field 1 is Valid.
func (b *builder) option(p *plan, t reflect.Type, path string) error {
	et := reflect.Zero(t).Interface().(optionShape).optionElem()
	elem, err := b.build(et, path+".Value")
	if err != nil {
		return err
	}
	p.enc = func(dst []byte, v reflect.Value) []byte {
		if !v.Field(1).Bool() {
			return append(dst, tagAbsent)
		}
		return elem.enc(append(dst, tagPresent), v.Field(0))
	}
	p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
		tag, src := Uint8.Decode(src, cfg)
		if tag == tagAbsent {
			return src
		}
		src = elem.dec(src, v.Field(0), cfg)
		v.Field(1).SetBool(true)
		return src
	}
	return nil
}

// result derives Result[T, E]: fields 0, 1 and 2 are Value, Failure and OK.
func (b *builder) result(p *plan, t reflect.Type, path string) error {
	okT, errT := reflect.Zero(t).Interface().(resultShape).resultTypes()
	okP, err := b.build(okT, path+".Value")
	if err != nil {
		return err
	}
	errP, err := b.build(errT, path+".Failure")
	if err != nil {
		return err
	}
	p.enc = func(dst []byte, v reflect.Value) []byte {
		if v.Field(2).Bool() {
			return okP.enc(append(dst, tagPresent), v.Field(0))
		}
		return errP.enc(append(dst, tagAbsent), v.Field(1))
	}
	p.dec = func(src []byte, v reflect.Value, cfg *Config) []byte {
		tag, src := Uint8.Decode(src, cfg)
		if tag == tagAbsent {
			return errP.dec(src, v.Field(1), cfg)
		}
		src = okP.dec(src, v.Field(0), cfg)
		v.Field(2).SetBool(true)
		return src
	}
	return nil
}

// take splits off a w-byte scalar, reporting truncation like the fixed codecs.
func take(src []byte, w int, cfg *Config) (b, rest []byte, ok bool) {
	if len(src) < w {
		cfg.hooks().ScalarTruncated(w, len(src))
		return nil, src, false
	}
	return src[:w], src[w:], true
}
