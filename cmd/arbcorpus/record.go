package main

import (
	"encoding/hex"
	"fmt"

	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/unkn0wn-root/arbitrary"
	"github.com/unkn0wn-root/arbitrary/codec"
	"github.com/unkn0wn-root/arbitrary/harness"
	"github.com/unkn0wn-root/arbitrary/internal/util"
)

// bytesCodec materializes CLI seeds: the corpus stores raw fuzz input for
// targets that take a []byte.
var bytesCodec = arbitrary.Slice(arbitrary.Uint8)

// seedRecord is the document form of a seed, written by `show --format`
// and read back by `add --from`. Byte strings are hex so every format
// carries them the same way.
type seedRecord struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty" cbor:"id,omitempty" msgpack:"id,omitempty"`
	Raw         string `json:"raw,omitempty" yaml:"raw,omitempty" cbor:"raw,omitempty" msgpack:"raw,omitempty"`
	Value       string `json:"value,omitempty" yaml:"value,omitempty" cbor:"value,omitempty" msgpack:"value,omitempty"`
	Consumed    int    `json:"consumed" yaml:"consumed" cbor:"consumed" msgpack:"consumed"`
	Remaining   int    `json:"remaining" yaml:"remaining" cbor:"remaining" msgpack:"remaining"`
	Truncations int    `json:"truncations" yaml:"truncations" cbor:"truncations" msgpack:"truncations"`
	Clamps      int    `json:"clamps" yaml:"clamps" cbor:"clamps" msgpack:"clamps"`
}

// seedBytes converts between stored seeds and records. Decode materializes
// the seed and reports how it was consumed. Encode takes Raw when present,
// otherwise it encodes Value, so a hand-written record only needs "value".
type seedBytes struct {
	cfg *arbitrary.Config
}

func (s seedBytes) Decode(b []byte) (seedRecord, error) {
	v, rep := harness.Materialize(bytesCodec, b, s.cfg)
	return seedRecord{
		ID:          util.EntryID(b),
		Raw:         hex.EncodeToString(b),
		Value:       hex.EncodeToString(v),
		Consumed:    rep.Consumed,
		Remaining:   rep.Remaining,
		Truncations: rep.Truncations,
		Clamps:      rep.Clamps,
	}, nil
}

func (s seedBytes) Encode(r seedRecord) ([]byte, error) {
	var b []byte
	if r.Raw != "" {
		raw, err := hex.DecodeString(r.Raw)
		if err != nil {
			return nil, fmt.Errorf("raw: %w", err)
		}
		b = raw
	} else {
		v, err := hex.DecodeString(r.Value)
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		b = arbitrary.Encode(bytesCodec, v)
	}
	if r.ID != "" && r.ID != util.EntryID(b) {
		return nil, fmt.Errorf("id %s does not match content (%s)", r.ID, util.EntryID(b))
	}
	return b, nil
}

// documentCodec returns the storage codec of a record format.
func documentCodec(format string) (codec.Codec[seedRecord], error) {
	switch format {
	case "json":
		return codec.JSON[seedRecord]{Indent: true}, nil
	case "yaml":
		return codec.YAML[seedRecord]{}, nil
	case "cbor":
		c, err := codec.NewCBOR[seedRecord](true)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "msgpack":
		return codec.Msgpack[seedRecord]{}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

var protoCodec = codec.NewProtobuf(func() *wrapperspb.BytesValue { return &wrapperspb.BytesValue{} })

// toSeed turns a document of the given format into seed bytes. Documents
// larger than limit are rejected before they are parsed.
func toSeed(doc []byte, from string, limit int) ([]byte, error) {
	switch from {
	case "raw":
		return codec.LimitCodec[[]byte]{Inner: codec.Bytes{}, MaxDecode: limit}.Decode(doc)
	case "pb":
		m, err := codec.LimitCodec[*wrapperspb.BytesValue]{Inner: protoCodec, MaxDecode: limit}.Decode(doc)
		if err != nil {
			return nil, err
		}
		return m.GetValue(), nil
	}
	dc, err := documentCodec(from)
	if err != nil {
		return nil, err
	}
	// hex doubles the size of the bytes a record carries
	return codec.Transcode[seedRecord](doc, codec.LimitCodec[seedRecord]{Inner: dc, MaxDecode: 4 * limit}, seedBytes{})
}

// fromSeed renders seed bytes in the given document format.
func fromSeed(seed []byte, format string, cfg *arbitrary.Config) ([]byte, error) {
	if format == "pb" {
		return protoCodec.Encode(wrapperspb.Bytes(seed))
	}
	dc, err := documentCodec(format)
	if err != nil {
		return nil, err
	}
	return codec.Transcode[seedRecord](seed, seedBytes{cfg: cfg}, dc)
}
