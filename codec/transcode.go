package codec

import "fmt"

// Transcode decodes b with from and re-encodes the value with to.
//
// Typical uses: turning a corpus entry into JSON or CBOR for triage
// (from = Arbitrary), and turning a hand-written JSON/YAML seed into
// fuzz input bytes (to = Arbitrary).
func Transcode[V any](b []byte, from, to Codec[V]) ([]byte, error) {
	v, err := from.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("transcode: decode: %w", err)
	}
	out, err := to.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("transcode: encode: %w", err)
	}
	return out, nil
}
