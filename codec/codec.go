// Package codec holds storage codecs for values that leave the process: seed
// documents written by hand, triage dumps of decoded fuzz inputs, and corpus
// entries. Unlike arbitrary.Codec these are strict and return errors.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
