package codec

// Bytes is an identity codec for []byte values, e.g. raw fuzz inputs that
// are stored without being materialized.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

