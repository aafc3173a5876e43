package corpus

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/unkn0wn-root/arbitrary/internal/wire"
)

// compressor holds one zstd encoder/decoder pair per corpus. Both are safe
// for concurrent EncodeAll/DecodeAll.
type compressor struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newCompressor(maxSize int) (*compressor, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(maxSize)), zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, err
	}
	return &compressor{enc: enc, dec: dec}, nil
}

// pack compresses payload with alg and returns the frame flag to record.
// Falls back to FlagNone when compression does not shrink the payload.
func (c *compressor) pack(alg Compression, payload []byte) ([]byte, byte, error) {
	var (
		out  []byte
		flag byte
	)
	switch alg {
	case CompressionNone:
		return payload, wire.FlagNone, nil
	case CompressionZstd:
		out = c.enc.EncodeAll(payload, nil)
		flag = wire.FlagZstd
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			return nil, 0, err
		}
		if err := zw.Close(); err != nil {
			return nil, 0, err
		}
		out = buf.Bytes()
		flag = wire.FlagLZ4
	default:
		return nil, 0, fmt.Errorf("corpus: unknown compression %d", alg)
	}
	if len(out) >= len(payload) {
		return payload, wire.FlagNone, nil
	}
	return out, flag, nil
}

// unpack reverses pack. Output larger than maxSize is an error.
func (c *compressor) unpack(flag byte, payload []byte, maxSize int) ([]byte, error) {
	switch flag {
	case wire.FlagNone:
		return payload, nil
	case wire.FlagZstd:
		return c.dec.DecodeAll(payload, nil)
	case wire.FlagLZ4:
		r := io.LimitReader(lz4.NewReader(bytes.NewReader(payload)), int64(maxSize)+1)
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if len(out) > maxSize {
			return nil, ErrSeedTooLarge
		}
		return out, nil
	default:
		return nil, wire.ErrCorrupt
	}
}

func (c *compressor) close() {
	_ = c.enc.Close()
	c.dec.Close()
}
