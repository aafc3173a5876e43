package arbitrary

import (
	"fmt"
	"reflect"
)

// UnsupportedTypeError is returned by Derive for a type that has no codec:
// maps, channels, funcs, interfaces, complex numbers and uintptr, or a struct
// containing one of them.
type UnsupportedTypeError struct {
	Type reflect.Type
	Path string // field path from the derived root, e.g. "Order.Items[].Meta"
}

func (e *UnsupportedTypeError) Error() string {
	if e.Path == "" || e.Path == e.Type.String() {
		return fmt.Sprintf("arbitrary: cannot derive codec for %s", e.Type)
	}
	return fmt.Sprintf("arbitrary: cannot derive codec for %s at %s", e.Type, e.Path)
}
