package codec

import "encoding/json"

// JSON is the readable form used for hand-written seeds and triage output.
type JSON[V any] struct {
	Indent bool
}

func (j JSON[V]) Encode(v V) ([]byte, error) {
	if j.Indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
