package codec

import "gopkg.in/yaml.v3"

// YAML reads and writes seed documents with gopkg.in/yaml.v3.
// Field names follow `yaml:"..."` tags, lowercased field names otherwise.
type YAML[V any] struct{}

func (YAML[V]) Encode(v V) ([]byte, error) { return yaml.Marshal(v) }

func (YAML[V]) Decode(b []byte) (V, error) {
	var v V
	err := yaml.Unmarshal(b, &v)
	return v, err
}
